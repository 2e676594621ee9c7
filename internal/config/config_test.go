package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ContentMaxChars != 100000 {
		t.Errorf("ContentMaxChars = %d, want 100000", cfg.ContentMaxChars)
	}
	if cfg.CacheCapacity != 500 {
		t.Errorf("CacheCapacity = %d, want 500", cfg.CacheCapacity)
	}
	if cfg.UsageHistorySize != 100 {
		t.Errorf("UsageHistorySize = %d, want 100", cfg.UsageHistorySize)
	}
	if cfg.SuggestionLimit != 5 {
		t.Errorf("SuggestionLimit = %d, want 5", cfg.SuggestionLimit)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load on missing file = %+v, want defaults", cfg)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"cache_capacity": 50, "disabled_tools": ["clip_rule_delete"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CacheCapacity != 50 {
		t.Errorf("CacheCapacity = %d, want 50", cfg.CacheCapacity)
	}
	// Unset fields fall back to defaults
	if cfg.SuggestionLimit != 5 {
		t.Errorf("SuggestionLimit = %d, want 5", cfg.SuggestionLimit)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "clip_rule_delete" {
		t.Errorf("DisabledTools = %v, want [clip_rule_delete]", cfg.DisabledTools)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load on malformed JSON should fail")
	}
}

func TestMerge_ScalarsAndArrays(t *testing.T) {
	base := DefaultConfig()
	base.DisabledTools = []string{"clip_capture"}

	overlay := &Config{
		CacheCapacity: 10,
		DisabledTools: []string{"clip_capture", " clip_suggest "},
	}

	merged := Merge(base, overlay)

	if merged.CacheCapacity != 10 {
		t.Errorf("CacheCapacity = %d, want 10", merged.CacheCapacity)
	}
	if merged.ContentMaxChars != base.ContentMaxChars {
		t.Errorf("ContentMaxChars = %d, want %d", merged.ContentMaxChars, base.ContentMaxChars)
	}

	want := []string{"clip_capture", "clip_suggest"}
	if !reflect.DeepEqual(merged.DisabledTools, want) {
		t.Errorf("DisabledTools = %v, want %v", merged.DisabledTools, want)
	}
}
