package ops

import (
	"github.com/kordes/clipsense/internal/history"
	"github.com/kordes/clipsense/internal/suggest"
)

// SuggestInput contains parameters for the Suggest operation.
type SuggestInput struct {
	// Limit caps the suggestion list; 0 uses the configured default.
	Limit int

	// App optionally records a focus switch before ranking, so a
	// caller can say "I'm in chrome, what fits here?".
	App string
}

// SuggestOutput contains the ranked suggestions.
type SuggestOutput struct {
	Suggestions []suggest.Suggestion `json:"suggestions"`
	App         string               `json:"app,omitempty"`
	AppCategory string               `json:"app_category"`
}

// Suggest ranks the stored history against the current application
// context. The ranker reads a snapshot; ranking never mutates state.
func (s *Service) Suggest(input SuggestInput) (*SuggestOutput, error) {
	if input.App != "" {
		s.tracker.SetFocus(input.App)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.SuggestionLimit
	}

	// Rank over a bounded recent window, not the unbounded table.
	entries, err := history.List(s.db, history.ListInput{Limit: MaxListLimit})
	if err != nil {
		return nil, err
	}

	return &SuggestOutput{
		Suggestions: s.ranker.Suggestions(entries, limit),
		App:         s.tracker.CurrentApp(),
		AppCategory: string(s.tracker.CurrentCategory()),
	}, nil
}
