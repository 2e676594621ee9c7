package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kordes/clipsense/internal/entry"
	"github.com/kordes/clipsense/internal/errors"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	mu      sync.Mutex
	rules   []Rule
	loadErr error
	saves   int
}

func (m *memStore) Load() ([]Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.rules, nil
}

func (m *memStore) Save(rules []Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append([]Rule(nil), rules...)
	m.saves++
	return nil
}

// recordingNotifier captures dispatched notifications.
type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func (n *recordingNotifier) Send(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
}

func TestNewEngine_SeedsDefaultsOnFirstRun(t *testing.T) {
	store := &memStore{}
	e := NewEngine(store)

	rules := e.Rules()
	if len(rules) == 0 {
		t.Fatal("expected default rule seed on empty store")
	}
	if store.saves == 0 {
		t.Error("seeded defaults should be persisted")
	}
	// Evaluation order is priority descending.
	for i := 1; i < len(rules); i++ {
		if rules[i].Priority > rules[i-1].Priority {
			t.Errorf("rules out of priority order at %d", i)
		}
	}
}

func TestNewEngine_CorruptStoreFallsBackToSeed(t *testing.T) {
	store := &memStore{loadErr: fmt.Errorf("parse rules file: bad blob")}
	e := NewEngine(store)

	if len(e.Rules()) == 0 {
		t.Fatal("expected default seed after load failure")
	}
}

func TestProcessItem_AutoFavoriteGitHubURL(t *testing.T) {
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "favorite github",
		Enabled: true,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContentType, Category: entry.CategoryURL},
			{Type: CondContainsText, Value: "github.com"},
		},
		Actions:  []Action{{Type: ActionAutoFavorite}},
		Priority: 1,
	}}}
	e := NewEngine(store)

	item := &entry.Entry{
		ID:       "e1",
		Content:  "https://github.com/x",
		Category: catPtr(entry.CategoryURL),
	}
	e.ProcessItem(item)

	if !item.Favorite {
		t.Error("entry should be favorited by the matching rule")
	}
}

func TestProcessItem_DisabledRuleSkipped(t *testing.T) {
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "disabled",
		Enabled: false,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "x"},
		},
		Actions: []Action{{Type: ActionAutoFavorite}},
	}}}
	e := NewEngine(store)

	item := &entry.Entry{ID: "e1", Content: "x"}
	e.ProcessItem(item)

	if item.Favorite {
		t.Error("disabled rule must not fire")
	}
}

func TestProcessItem_NotifyExpandsContent(t *testing.T) {
	notifier := &recordingNotifier{}
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "notify",
		Enabled: true,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "secret"},
		},
		Actions: []Action{{
			Type:    ActionNotify,
			Title:   "Heads up",
			Message: "copied: ${content}",
		}},
	}}}
	e := NewEngine(store, WithNotifier(notifier))

	e.ProcessItem(&entry.Entry{ID: "e1", Content: "secret value"})

	if len(notifier.titles) != 1 || notifier.titles[0] != "Heads up" {
		t.Fatalf("titles = %v, want [Heads up]", notifier.titles)
	}
	if notifier.bodies[0] != "copied: secret value" {
		t.Errorf("body = %q, want expanded content", notifier.bodies[0])
	}
}

func TestExpandMessage_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 80; i++ {
		long += "a"
	}
	got := expandMessage("got ${content}", long)

	want := "got " + long[:notifyContentLimit] + "…"
	if got != want {
		t.Errorf("expandMessage = %q, want %q", got, want)
	}
}

func TestProcessItem_ActionFailureDoesNotAbort(t *testing.T) {
	notifier := &recordingNotifier{}
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "mixed",
		Enabled: true,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "x"},
		},
		Actions: []Action{
			// Fails: content is not valid base64.
			{Type: ActionTransform, Transform: TransformBase64Decode},
			// Must still run.
			{Type: ActionNotify, Title: "after failure", Message: "ok"},
		},
	}}}
	e := NewEngine(store, WithNotifier(notifier))

	e.ProcessItem(&entry.Entry{ID: "e1", Content: "x !!!"})

	if len(notifier.titles) != 1 {
		t.Error("action after a failing action should still execute")
	}
}

func TestProcessItem_TransformDoesNotMutateEntry(t *testing.T) {
	var sunk string
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "upper",
		Enabled: true,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "hello"},
		},
		Actions: []Action{{Type: ActionTransform, Transform: TransformUppercase}},
	}}}
	e := NewEngine(store, WithTransformSink(func(id, content string) { sunk = content }))

	item := &entry.Entry{ID: "e1", Content: "hello"}
	e.ProcessItem(item)

	if item.Content != "hello" {
		t.Error("transform must not mutate the entry in place")
	}
	if sunk != "HELLO" {
		t.Errorf("sink received %q, want HELLO", sunk)
	}
}

func TestProcessItem_PriorityOrder(t *testing.T) {
	// Both rules notify; the higher-priority rule's notification must
	// arrive first.
	notifier := &recordingNotifier{}
	mk := func(id, title string, priority int) Rule {
		return Rule{
			ID:      id,
			Name:    title,
			Enabled: true,
			Logic:   LogicAll,
			Conditions: []Condition{
				{Type: CondContainsText, Value: "x"},
			},
			Actions:  []Action{{Type: ActionNotify, Title: title, Message: "m"}},
			Priority: priority,
		}
	}
	store := &memStore{rules: []Rule{mk("low", "low", 1), mk("high", "high", 9)}}
	e := NewEngine(store, WithNotifier(notifier))

	e.ProcessItem(&entry.Entry{ID: "e1", Content: "x"})

	if len(notifier.titles) != 2 || notifier.titles[0] != "high" || notifier.titles[1] != "low" {
		t.Errorf("notification order = %v, want [high low]", notifier.titles)
	}
}

func TestScheduleDelete_FiresAndCancels(t *testing.T) {
	deleted := make(chan string, 1)
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "expire",
		Enabled: true,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "temp"},
		},
		Actions: []Action{{Type: ActionAutoDelete, DelaySeconds: 1}},
	}}}
	e := NewEngine(store, WithEntryDeleter(func(id string) error {
		deleted <- id
		return nil
	}))

	// Short-circuit the 1s delay by rescheduling directly.
	e.ProcessItem(&entry.Entry{ID: "doomed", Content: "temp note"})
	if e.PendingDeletes() != 1 {
		t.Fatalf("pending deletes = %d, want 1", e.PendingDeletes())
	}
	e.scheduleDelete("doomed", 10*time.Millisecond)

	select {
	case id := <-deleted:
		if id != "doomed" {
			t.Errorf("deleted %q, want doomed", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled delete never fired")
	}

	if e.PendingDeletes() != 0 {
		t.Errorf("pending deletes = %d after firing, want 0", e.PendingDeletes())
	}
}

func TestCancelScheduledDelete(t *testing.T) {
	fired := make(chan string, 1)
	store := &memStore{rules: []Rule{}}
	e := NewEngine(store, WithEntryDeleter(func(id string) error {
		fired <- id
		return nil
	}))

	e.scheduleDelete("e1", 50*time.Millisecond)
	e.CancelScheduledDelete("e1")

	if e.PendingDeletes() != 0 {
		t.Errorf("pending deletes = %d after cancel, want 0", e.PendingDeletes())
	}

	select {
	case <-fired:
		t.Error("cancelled timer must not fire")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRuleCRUD(t *testing.T) {
	store := &memStore{}
	e := NewEngine(store)
	baseline := len(e.Rules())

	added, err := e.AddRule(Rule{
		Name:  "mine",
		Logic: LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "todo"},
		},
		Actions:  []Action{{Type: ActionAutoFavorite}},
		Priority: 99,
	})
	if err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if added.ID == "" {
		t.Error("AddRule should assign an ID")
	}

	rules := e.Rules()
	if len(rules) != baseline+1 {
		t.Fatalf("rule count = %d, want %d", len(rules), baseline+1)
	}
	// Highest priority evaluates first.
	if rules[0].ID != added.ID {
		t.Error("new high-priority rule should sort first")
	}

	added.Priority = -5
	if err := e.UpdateRule(added); err != nil {
		t.Fatalf("UpdateRule failed: %v", err)
	}
	rules = e.Rules()
	if rules[len(rules)-1].ID != added.ID {
		t.Error("demoted rule should sort last")
	}

	if err := e.SetEnabled(added.ID, false); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}

	if err := e.DeleteRule(added.ID); err != nil {
		t.Fatalf("DeleteRule failed: %v", err)
	}
	if len(e.Rules()) != baseline {
		t.Error("rule not removed")
	}

	if err := e.DeleteRule("missing"); !errors.Is(err, errors.ErrRuleNotFound) {
		t.Errorf("DeleteRule(missing) = %v, want RULE_NOT_FOUND", err)
	}
	if err := e.UpdateRule(Rule{ID: "missing", Name: "x", Logic: LogicAll}); !errors.Is(err, errors.ErrRuleNotFound) {
		t.Errorf("UpdateRule(missing) = %v, want RULE_NOT_FOUND", err)
	}
}

func TestCopyToFileAction(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store := &memStore{rules: []Rule{{
		ID:      "r1",
		Name:    "archive",
		Enabled: true,
		Logic:   LogicAll,
		Conditions: []Condition{
			{Type: CondContainsText, Value: "keep"},
		},
		Actions: []Action{{Type: ActionCopyToFile, Folder: dir}},
	}}}
	e := NewEngine(store)

	e.ProcessItem(&entry.Entry{ID: "e1", Content: "keep this"})

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("file count = %d, want 1", len(files))
	}
	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "keep this" {
		t.Errorf("file content = %q, want %q", data, "keep this")
	}
}
