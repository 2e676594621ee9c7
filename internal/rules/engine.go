package rules

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kordes/clipsense/internal/entry"
	"github.com/kordes/clipsense/internal/errors"
)

// notifyContentLimit truncates ${content} substitutions in notify
// messages.
const notifyContentLimit = 50

// Notifier dispatches user-visible notifications. Fire-and-forget:
// errors are the dispatcher's problem, never rule evaluation's.
type Notifier interface {
	Send(title, body string)
}

// logNotifier writes notifications to the process log; the default when
// no platform notifier is wired in.
type logNotifier struct{}

func (logNotifier) Send(title, body string) {
	log.Printf("notify: %s: %s", title, body)
}

// Store persists the rule set as an opaque blob.
type Store interface {
	Load() ([]Rule, error)
	Save([]Rule) error
}

// Engine evaluates rules against new entries and executes matching
// actions. Safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	rules  []Rule
	store  Store
	timers map[string]*time.Timer

	notifier Notifier
	clock    func() time.Time

	// deleteEntry removes an entry when an auto_delete timer fires.
	deleteEntry func(id string) error

	// transformSink receives transformed content; applying it is owned
	// by the caller, the engine never rewrites the entry itself.
	transformSink func(entryID, content string)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNotifier wires a notification dispatcher.
func WithNotifier(n Notifier) EngineOption {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithEntryDeleter wires the removal path used by auto_delete timers.
func WithEntryDeleter(fn func(id string) error) EngineOption {
	return func(e *Engine) { e.deleteEntry = fn }
}

// WithTransformSink wires the receiver for transform action output.
func WithTransformSink(fn func(entryID, content string)) EngineOption {
	return func(e *Engine) { e.transformSink = fn }
}

// NewEngine creates an Engine and loads the rule set from the store.
// Malformed persisted data is discarded in favor of the default seed.
func NewEngine(store Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:    store,
		timers:   make(map[string]*time.Timer),
		notifier: logNotifier{},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	loaded, err := store.Load()
	if err != nil {
		log.Printf("rules: failed to load rule set, seeding defaults: %v", err)
		loaded = nil
	}
	if len(loaded) == 0 {
		loaded = seedRules()
		if err := store.Save(loaded); err != nil {
			log.Printf("rules: failed to persist seeded defaults: %v", err)
		}
	}

	e.rules = loaded
	e.sortLocked()
	return e
}

// sortLocked orders rules by priority descending. Callers hold e.mu or
// have exclusive access.
func (e *Engine) sortLocked() {
	sort.SliceStable(e.rules, func(i, j int) bool {
		return e.rules[i].Priority > e.rules[j].Priority
	})
}

// ProcessItem evaluates all enabled rules against the entry in priority
// order and executes the actions of every matching rule. Action
// failures are logged and never abort the remaining actions or rules.
func (e *Engine) ProcessItem(item *entry.Entry) {
	if item == nil {
		return
	}

	e.mu.Lock()
	active := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.Enabled {
			active = append(active, r)
		}
	}
	now := e.clock()
	e.mu.Unlock()

	for _, r := range active {
		if !r.Matches(item, now) {
			continue
		}
		for _, a := range r.Actions {
			if err := e.execute(a, item); err != nil {
				log.Printf("rules: action %s of rule %q failed: %v", a.Type, r.Name, err)
			}
		}
	}
}

// execute runs a single action against an entry.
func (e *Engine) execute(a Action, item *entry.Entry) error {
	switch a.Type {
	case ActionAutoFavorite:
		item.Favorite = true
		return nil

	case ActionAutoDelete:
		e.scheduleDelete(item.ID, time.Duration(a.DelaySeconds)*time.Second)
		return nil

	case ActionAddToCategory:
		// Reserved extension point.
		return nil

	case ActionTransform:
		transformed, err := ApplyTransform(a.Transform, item.Content)
		if err != nil {
			return err
		}
		if e.transformSink != nil {
			e.transformSink(item.ID, transformed)
		} else {
			log.Printf("rules: transform %s produced %d chars for entry %s (no sink wired)",
				a.Transform, entry.CountChars(transformed), item.ID)
		}
		return nil

	case ActionNotify:
		e.notifier.Send(a.Title, expandMessage(a.Message, item.Content))
		return nil

	case ActionCopyToFile:
		return copyToFile(a.Folder, item.Content, e.clock())

	default:
		return fmt.Errorf("unknown action type: %s", a.Type)
	}
}

// expandMessage substitutes ${content} with the entry content truncated
// to notifyContentLimit characters.
func expandMessage(message, content string) string {
	if !strings.Contains(message, "${content}") {
		return message
	}
	runes := []rune(content)
	if len(runes) > notifyContentLimit {
		content = string(runes[:notifyContentLimit]) + "…"
	}
	return strings.ReplaceAll(message, "${content}", content)
}

// copyToFile writes the content to a timestamp-named file in folder,
// creating the directory if absent.
func copyToFile(folder, content string, now time.Time) error {
	if err := os.MkdirAll(folder, 0700); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	name := "clip-" + now.Format("20060102-150405.000000") + ".txt"
	path := filepath.Join(folder, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// scheduleDelete arms (or re-arms) the deferred removal of an entry.
// Timers are keyed by entry identity so an external delete can cancel
// explicitly instead of leaving a dangling timer.
func (e *Engine) scheduleDelete(entryID string, delay time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.timers[entryID]; ok {
		existing.Stop()
	}
	e.timers[entryID] = time.AfterFunc(delay, func() {
		e.mu.Lock()
		delete(e.timers, entryID)
		fn := e.deleteEntry
		e.mu.Unlock()

		if fn == nil {
			return
		}
		if err := fn(entryID); err != nil {
			log.Printf("rules: scheduled delete of entry %s failed: %v", entryID, err)
		}
	})
}

// CancelScheduledDelete stops any pending auto-delete timer for the
// entry. Call when the entry is removed through another path.
func (e *Engine) CancelScheduledDelete(entryID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if timer, ok := e.timers[entryID]; ok {
		timer.Stop()
		delete(e.timers, entryID)
	}
}

// PendingDeletes returns the number of armed auto-delete timers.
func (e *Engine) PendingDeletes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// Rules returns a copy of the active rule set in evaluation order.
func (e *Engine) Rules() []Rule {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// AddRule validates and adds a rule, re-sorts by priority, and persists.
// A missing ID is assigned.
func (e *Engine) AddRule(r Rule) (Rule, error) {
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, existing := range e.rules {
		if existing.ID == r.ID {
			return Rule{}, errors.NewInvalidRule("rule id already exists: " + r.ID)
		}
	}

	e.rules = append(e.rules, r)
	e.sortLocked()
	if err := e.store.Save(e.rules); err != nil {
		return Rule{}, errors.NewInternal(err)
	}
	return r, nil
}

// UpdateRule replaces an existing rule by ID, re-sorts, and persists.
func (e *Engine) UpdateRule(r Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.rules {
		if e.rules[i].ID == r.ID {
			e.rules[i] = r
			e.sortLocked()
			if err := e.store.Save(e.rules); err != nil {
				return errors.NewInternal(err)
			}
			return nil
		}
	}
	return errors.NewRuleNotFound(r.ID)
}

// DeleteRule removes a rule by ID and persists.
func (e *Engine) DeleteRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			if err := e.store.Save(e.rules); err != nil {
				return errors.NewInternal(err)
			}
			return nil
		}
	}
	return errors.NewRuleNotFound(id)
}

// SetEnabled toggles a rule and persists.
func (e *Engine) SetEnabled(id string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules[i].Enabled = enabled
			if err := e.store.Save(e.rules); err != nil {
				return errors.NewInternal(err)
			}
			return nil
		}
	}
	return errors.NewRuleNotFound(id)
}
