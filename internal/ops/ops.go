// Package ops coordinates the classifier, context tracker, suggestion
// ranker, rules engine, and history store behind one service surface
// shared by the CLI and the MCP server.
package ops

import (
	"crypto/rand"
	"database/sql"

	"github.com/oklog/ulid/v2"

	"github.com/kordes/clipsense/internal/appctx"
	"github.com/kordes/clipsense/internal/classify"
	"github.com/kordes/clipsense/internal/config"
	"github.com/kordes/clipsense/internal/history"
	"github.com/kordes/clipsense/internal/rules"
	"github.com/kordes/clipsense/internal/suggest"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service owns the intelligence components and their shared state.
// Construct one per process; all methods are safe for concurrent use.
type Service struct {
	db         *sql.DB
	cfg        *config.Config
	classifier *classify.Classifier
	tracker    *appctx.Tracker
	ranker     *suggest.Ranker
	engine     *rules.Engine
}

// NewService wires a Service over an initialized database. Rules are
// loaded from baseDir/rules.json (seeding defaults on first run), and
// auto-delete timers remove entries through the history store.
func NewService(db *sql.DB, cfg *config.Config, baseDir string, engineOpts ...rules.EngineOption) *Service {
	tracker := appctx.NewTracker(cfg.UsageHistorySize)

	opts := append([]rules.EngineOption{
		rules.WithEntryDeleter(func(id string) error {
			return history.Delete(db, id)
		}),
	}, engineOpts...)

	return &Service{
		db:         db,
		cfg:        cfg,
		classifier: classify.New(classify.WithCacheCapacity(cfg.CacheCapacity)),
		tracker:    tracker,
		ranker:     suggest.NewRanker(tracker),
		engine:     rules.NewEngine(rules.NewFileStore(baseDir), opts...),
	}
}

// Tracker exposes the context tracker for focus events.
func (s *Service) Tracker() *appctx.Tracker {
	return s.tracker
}

// SetFocus records a foreground-application switch.
func (s *Service) SetFocus(identifier string) {
	s.tracker.SetFocus(identifier)
}

// generateULID creates a new ULID for entry identifiers.
func generateULID() (string, error) {
	id, err := ulid.New(ulid.Now(), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// clampLimit applies default and maximum listing limits.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
