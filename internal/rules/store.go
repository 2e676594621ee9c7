package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// rulesFileVersion is the current serialization version of the rule
// blob. Bump when the Condition/Action encoding changes shape.
const rulesFileVersion = 1

// ruleFile is the on-disk envelope for the persisted rule set.
type ruleFile struct {
	Version int    `json:"version"`
	Rules   []Rule `json:"rules"`
}

// FileStore persists rules as JSON at baseDir/rules.json.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{path: filepath.Join(baseDir, "rules.json")}
}

// Load reads the persisted rule set. A missing file yields an empty
// set (first run); malformed data or an unsupported version yields an
// error so the engine can fall back to the default seed.
func (s *FileStore) Load() ([]Rule, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var file ruleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if file.Version > rulesFileVersion {
		return nil, fmt.Errorf("unsupported rules file version %d", file.Version)
	}
	return file.Rules, nil
}

// Save writes the rule set atomically (temp file + rename).
func (s *FileStore) Save(rules []Rule) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create rules directory: %w", err)
	}

	data, err := json.MarshalIndent(ruleFile{Version: rulesFileVersion, Rules: rules}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write rules file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace rules file: %w", err)
	}
	return nil
}
