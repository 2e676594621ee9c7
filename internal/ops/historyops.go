package ops

import (
	"strings"

	"github.com/kordes/clipsense/internal/entry"
	"github.com/kordes/clipsense/internal/errors"
	"github.com/kordes/clipsense/internal/history"
)

// HistoryInput filters and pages a history listing.
type HistoryInput struct {
	Category      string
	SourceApp     string
	FavoritesOnly bool
	Limit         int
	Offset        int
}

// HistoryOutput contains a page of history entries.
type HistoryOutput struct {
	Items []*entry.Entry `json:"items"`
	Total int            `json:"total"`
}

// History lists stored entries newest first.
func (s *Service) History(input HistoryInput) (*HistoryOutput, error) {
	listInput := history.ListInput{
		SourceApp:     strings.TrimSpace(input.SourceApp),
		FavoritesOnly: input.FavoritesOnly,
		Limit:         clampLimit(input.Limit),
		Offset:        input.Offset,
	}

	if raw := strings.TrimSpace(input.Category); raw != "" {
		category := entry.Category(raw)
		if !entry.Valid(category) {
			return nil, errors.NewInvalidRequest("unknown category: " + raw)
		}
		listInput.Category = &category
	}

	items, err := history.List(s.db, listInput)
	if err != nil {
		return nil, err
	}

	total, err := history.Count(s.db)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*entry.Entry{}
	}
	return &HistoryOutput{Items: items, Total: total}, nil
}

// Get fetches a single entry by ID.
func (s *Service) Get(id string) (*entry.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return history.GetByID(s.db, id)
}

// Favorite sets or clears an entry's favorite flag.
func (s *Service) Favorite(id string, favorite bool) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewInvalidRequest("id is required")
	}
	return history.SetFavorite(s.db, id, favorite)
}

// DeleteEntry removes an entry and cancels any pending auto-delete
// timer, so an externally triggered delete never races a scheduled one.
func (s *Service) DeleteEntry(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewInvalidRequest("id is required")
	}
	s.engine.CancelScheduledDelete(id)
	return history.Delete(s.db, id)
}
