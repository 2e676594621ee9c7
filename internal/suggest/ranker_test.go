package suggest

import (
	"strings"
	"testing"
	"time"

	"github.com/kordes/clipsense/internal/appctx"
	"github.com/kordes/clipsense/internal/entry"
)

func fixedRanker(tracker *appctx.Tracker, now time.Time) *Ranker {
	r := NewRanker(tracker)
	r.clock = func() time.Time { return now }
	return r
}

func catPtr(c entry.Category) *entry.Category { return &c }

func TestSuggestions_EmptyInput(t *testing.T) {
	r := NewRanker(appctx.NewTracker(0))

	got := r.Suggestions(nil, 5)
	if got == nil {
		t.Fatal("Suggestions(nil) should return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestSuggestions_FavoriteRanksFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := appctx.NewTracker(0)
	tracker.SetFocus("chrome") // browser context

	entries := []*entry.Entry{
		{ID: "old", Content: "twenty hours old", CapturedAt: now.Add(-20 * time.Hour).Unix()},
		{ID: "fav", Content: "favorited minute-old", Favorite: true, CapturedAt: now.Add(-time.Minute).Unix()},
		{ID: "recent", Content: "one hour old", CapturedAt: now.Add(-time.Hour).Unix()},
	}

	got := fixedRanker(tracker, now).Suggestions(entries, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Entry.ID != "fav" {
		t.Errorf("top suggestion = %q, want fav", got[0].Entry.ID)
	}
	if !strings.Contains(got[0].Reason, "Favorite") {
		t.Errorf("reason = %q, want it to include Favorite", got[0].Reason)
	}
	if got[1].Entry.ID != "recent" {
		t.Errorf("second suggestion = %q, want recent", got[1].Entry.ID)
	}
}

func TestSuggestions_NonIncreasingAndCapped(t *testing.T) {
	now := time.Now()
	tracker := appctx.NewTracker(0)
	r := fixedRanker(tracker, now)

	var entries []*entry.Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, &entry.Entry{
			ID:         string(rune('a' + i)),
			Content:    "content",
			CapturedAt: now.Add(-time.Duration(i) * time.Hour).Unix(),
		})
	}

	got := r.Suggestions(entries, 4)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("scores increase at %d: %v > %v", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestSuggestions_StableTies(t *testing.T) {
	now := time.Now()
	tracker := appctx.NewTracker(0)
	r := fixedRanker(tracker, now)

	// Identical attributes: scores tie, input order is retained.
	ts := now.Add(-2 * time.Hour).Unix()
	entries := []*entry.Entry{
		{ID: "first", Content: "same", CapturedAt: ts},
		{ID: "second", Content: "same", CapturedAt: ts},
		{ID: "third", Content: "same", CapturedAt: ts},
	}

	got := r.Suggestions(entries, 3)
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Entry.ID != want {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Entry.ID, want)
		}
	}
}

func TestSuggestions_ContextReason(t *testing.T) {
	now := time.Now()
	tracker := appctx.NewTracker(0)
	tracker.SetFocus("chrome")
	r := fixedRanker(tracker, now)

	entries := []*entry.Entry{
		{
			ID:         "u",
			Content:    "https://example.com",
			Category:   catPtr(entry.CategoryURL),
			CapturedAt: now.Add(-30 * time.Hour).Unix(), // recency floored to 0
		},
	}

	got := r.Suggestions(entries, 1)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	// url × browser affinity 1.0 exceeds the context reason threshold.
	if !strings.Contains(got[0].Reason, "Matches url context") {
		t.Errorf("reason = %q, want it to mention url context", got[0].Reason)
	}
}

func TestSuggestions_GenericFallbackReason(t *testing.T) {
	now := time.Now()
	tracker := appctx.NewTracker(0)
	tracker.SetFocus("code") // development context
	r := fixedRanker(tracker, now)

	entries := []*entry.Entry{
		{
			ID:         "x",
			Content:    "stale note",
			Category:   catPtr(entry.CategoryURL), // url × development: 0.2 affinity
			CapturedAt: now.Add(-40 * time.Hour).Unix(),
		},
	}

	got := r.Suggestions(entries, 1)
	if got[0].Reason != "From your clipboard history" {
		t.Errorf("reason = %q, want generic fallback", got[0].Reason)
	}
}

func TestSuggestions_RecencyFloor(t *testing.T) {
	now := time.Now()
	r := fixedRanker(appctx.NewTracker(0), now)

	week := []*entry.Entry{{ID: "w", Content: "x", CapturedAt: now.Add(-7 * 24 * time.Hour).Unix()}}
	day := []*entry.Entry{{ID: "d", Content: "x", CapturedAt: now.Add(-25 * time.Hour).Unix()}}

	// Both beyond the 24h window: recency contributes zero to each, so
	// scores are equal rather than negative-decayed.
	if w, d := r.Suggestions(week, 1)[0].Score, r.Suggestions(day, 1)[0].Score; w != d {
		t.Errorf("scores differ beyond the decay window: %v vs %v", w, d)
	}
}
