// Package suggest ranks historical clipboard entries into context-aware
// suggestions.
package suggest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kordes/clipsense/internal/appctx"
	"github.com/kordes/clipsense/internal/entry"
)

// DefaultLimit caps a suggestion list when no limit is given.
const DefaultLimit = 5

// Scoring weights. The total is a heuristic score, not a probability:
// components sum to roughly [0, 1] without strict normalization.
const (
	recencyWeight    = 0.4
	recencyWindow    = 24 * time.Hour
	favoriteScore    = 0.3
	nonFavoriteScore = 0.15
	contextWeight    = 0.3

	// Reason thresholds
	recencyReasonMin = 0.3
	contextReasonMin = 0.5
)

// Suggestion is a ranked recommendation of a past clipboard entry.
// Reason is for UI display only and is not authoritative.
type Suggestion struct {
	Entry  *entry.Entry `json:"entry"`
	Score  float64      `json:"score"`
	Reason string       `json:"reason"`
}

// Ranker scores entries against the current application context.
type Ranker struct {
	tracker *appctx.Tracker

	// clock is swapped in tests for deterministic recency
	clock func() time.Time
}

// NewRanker creates a Ranker reading context from the given tracker.
func NewRanker(tracker *appctx.Tracker) *Ranker {
	return &Ranker{
		tracker: tracker,
		clock:   time.Now,
	}
}

// Suggestions scores the given entries and returns the top limit of
// them, ordered by score descending. Ties retain input order (stable
// sort). Empty input yields an empty, non-nil slice.
func (r *Ranker) Suggestions(entries []*entry.Entry, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}

	now := r.clock()
	appCategory := r.tracker.CurrentCategory()

	result := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		result = append(result, r.score(e, now, appCategory))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// score computes one entry's total and reason string.
func (r *Ranker) score(e *entry.Entry, now time.Time, appCategory appctx.AppCategory) Suggestion {
	// Recency: linear decay over 24h, floor at zero.
	age := now.Sub(time.Unix(e.CapturedAt, 0))
	hoursSince := age.Hours()
	recency := 1 - hoursSince/recencyWindow.Hours()
	if recency < 0 {
		recency = 0
	}
	recency *= recencyWeight

	// Frequency proxy: favorites score higher.
	frequency := nonFavoriteScore
	if e.Favorite {
		frequency = favoriteScore
	}

	// Context: affinity between the entry's category and the current
	// app. Uncategorized entries score as plain text.
	category := entry.CategoryPlainText
	if e.Category != nil {
		category = *e.Category
	}
	match := appctx.ContextMatch(category, appCategory)
	context := match * contextWeight

	var reasons []string
	if recency > recencyReasonMin {
		reasons = append(reasons, "Recently used")
	}
	if e.Favorite {
		reasons = append(reasons, "Favorite")
	}
	if match > contextReasonMin {
		reasons = append(reasons, fmt.Sprintf("Matches %s context", category))
	}

	reason := strings.Join(reasons, ", ")
	if reason == "" {
		reason = "From your clipboard history"
	}

	return Suggestion{
		Entry:  e,
		Score:  recency + frequency + context,
		Reason: reason,
	}
}
