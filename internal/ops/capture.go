package ops

import (
	"strings"
	"time"

	"github.com/kordes/clipsense/internal/entry"
	"github.com/kordes/clipsense/internal/errors"
	"github.com/kordes/clipsense/internal/history"
)

// CaptureInput contains parameters for the Capture operation.
type CaptureInput struct {
	Content    string  // required
	SourceApp  *string // optional application identifier
	CapturedAt int64   // optional Unix timestamp; 0 means now
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	ID       string         `json:"id"`
	Category entry.Category `json:"category"`
	Favorite bool           `json:"favorite"`
}

// Capture runs the full intake path for new clipboard content:
// classify (cached), persist, then evaluate automation rules. Rule
// side effects that mutate the entry (auto-favorite) are written back.
func (s *Service) Capture(input CaptureInput) (*CaptureOutput, error) {
	if input.Content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	chars := entry.CountChars(input.Content)
	if chars > s.cfg.ContentMaxChars {
		return nil, errors.NewContentTooLarge(s.cfg.ContentMaxChars, chars)
	}

	input.SourceApp = cleanOptionalString(input.SourceApp)
	if input.SourceApp != nil {
		s.tracker.SetFocus(*input.SourceApp)
	}

	capturedAt := input.CapturedAt
	if capturedAt == 0 {
		capturedAt = time.Now().Unix()
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	category := s.classifier.Categorize(input.Content)

	e := &entry.Entry{
		ID:           id,
		Content:      input.Content,
		ContentChars: chars,
		SourceApp:    input.SourceApp,
		Category:     &category,
		CapturedAt:   capturedAt,
	}

	if err := history.Insert(s.db, e); err != nil {
		return nil, err
	}

	// Rule pass: may favorite the entry, schedule its deletion, notify,
	// or write it out. Mutations are persisted after the pass.
	s.engine.ProcessItem(e)
	if e.Favorite {
		if err := history.SetFavorite(s.db, e.ID, true); err != nil {
			return nil, err
		}
	}

	return &CaptureOutput{
		ID:       e.ID,
		Category: category,
		Favorite: e.Favorite,
	}, nil
}

// Categorize classifies content without persisting anything.
func (s *Service) Categorize(content string) (entry.Category, error) {
	if content == "" {
		return "", errors.NewInvalidRequest("content is required")
	}
	return s.classifier.Categorize(content), nil
}

// CategorizeBatch classifies every entry, returning id → Category.
func (s *Service) CategorizeBatch(entries []*entry.Entry) map[string]entry.Category {
	return s.classifier.CategorizeBatch(entries)
}

// cleanOptionalString trims an optional string, dropping it entirely
// when empty.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
