// Package appctx tracks the foreground application and scores how well
// a clipboard category fits the current application context.
package appctx

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kordes/clipsense/internal/entry"
)

// AppCategory is the coarse classification of an application.
type AppCategory string

const (
	AppDevelopment   AppCategory = "development"
	AppBrowser       AppCategory = "browser"
	AppEmail         AppCategory = "email"
	AppWriting       AppCategory = "writing"
	AppDesign        AppCategory = "design"
	AppTerminal      AppCategory = "terminal"
	AppSpreadsheet   AppCategory = "spreadsheet"
	AppCommunication AppCategory = "communication"
	AppOther         AppCategory = "other"
)

// DefaultUsageHistorySize bounds the usage event ring.
const DefaultUsageHistorySize = 100

// appTable maps normalized application identifiers to categories.
// Unmapped identifiers yield AppOther.
var appTable = map[string]AppCategory{
	"code":        AppDevelopment,
	"vscode":      AppDevelopment,
	"goland":      AppDevelopment,
	"intellij":    AppDevelopment,
	"xcode":       AppDevelopment,
	"zed":         AppDevelopment,
	"vim":         AppDevelopment,
	"neovim":      AppDevelopment,
	"chrome":      AppBrowser,
	"chromium":    AppBrowser,
	"firefox":     AppBrowser,
	"safari":      AppBrowser,
	"edge":        AppBrowser,
	"arc":         AppBrowser,
	"mail":        AppEmail,
	"thunderbird": AppEmail,
	"outlook":     AppEmail,
	"word":        AppWriting,
	"pages":       AppWriting,
	"notion":      AppWriting,
	"obsidian":    AppWriting,
	"typora":      AppWriting,
	"figma":       AppDesign,
	"sketch":      AppDesign,
	"photoshop":   AppDesign,
	"terminal":    AppTerminal,
	"iterm":       AppTerminal,
	"iterm2":      AppTerminal,
	"alacritty":   AppTerminal,
	"kitty":       AppTerminal,
	"wezterm":     AppTerminal,
	"excel":       AppSpreadsheet,
	"numbers":     AppSpreadsheet,
	"sheets":      AppSpreadsheet,
	"slack":       AppCommunication,
	"discord":     AppCommunication,
	"telegram":    AppCommunication,
	"messages":    AppCommunication,
	"zoom":        AppCommunication,
}

// Affinity scoring constants (weights sum past 1.0 by design; the
// result is clamped).
const (
	contextWeight    = 0.4
	recentBonus      = 0.3
	favoriteBonus    = 0.3
	defaultAffinity  = 0.2
	plainTextDefault = 0.5
)

// affinityTable scores category × AppCategory pairs. Unlisted pairs
// score defaultAffinity; plainText scores plainTextDefault against
// anything.
var affinityTable = map[entry.Category]map[AppCategory]float64{
	entry.CategoryCode: {
		AppDevelopment: 1.0,
		AppTerminal:    0.9,
		AppWriting:     0.4,
	},
	entry.CategoryURL: {
		AppBrowser:       1.0,
		AppCommunication: 0.7,
		AppEmail:         0.6,
	},
	entry.CategoryEmail: {
		AppEmail:         1.0,
		AppCommunication: 0.6,
		AppBrowser:       0.5,
	},
	entry.CategoryAddress: {
		AppBrowser: 0.8,
		AppEmail:   0.6,
		AppWriting: 0.5,
	},
	entry.CategoryPhone: {
		AppCommunication: 0.9,
		AppEmail:         0.5,
	},
	entry.CategoryCredential: {
		AppDevelopment: 0.7,
		AppTerminal:    0.7,
		AppBrowser:     0.6,
	},
	entry.CategoryJSON: {
		AppDevelopment: 1.0,
		AppTerminal:    0.8,
	},
	entry.CategoryMarkdown: {
		AppWriting:     1.0,
		AppDevelopment: 0.6,
	},
}

// usageEvent is one recorded foreground-application activation.
type usageEvent struct {
	identifier string
	at         time.Time
}

// AppCount pairs an application identifier with its usage count.
type AppCount struct {
	Identifier string `json:"identifier"`
	Count      int    `json:"count"`
}

// Tracker maintains the current foreground application and a bounded
// ring of usage events. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	current  string
	ringSize int
	usage    []usageEvent
	clock    func() time.Time
}

// NewTracker creates a Tracker with the given ring capacity
// (DefaultUsageHistorySize when size <= 0).
func NewTracker(size int) *Tracker {
	if size <= 0 {
		size = DefaultUsageHistorySize
	}
	return &Tracker{
		ringSize: size,
		clock:    time.Now,
	}
}

// SetFocus records a foreground-application switch.
func (t *Tracker) SetFocus(identifier string) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = identifier
	t.usage = append(t.usage, usageEvent{identifier: identifier, at: t.clock()})
	if len(t.usage) > t.ringSize {
		t.usage = t.usage[len(t.usage)-t.ringSize:]
	}
}

// CurrentApp returns the current foreground-application identifier,
// empty if none has been recorded.
func (t *Tracker) CurrentApp() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// CurrentCategory returns the AppCategory of the current app.
func (t *Tracker) CurrentCategory() AppCategory {
	return AppCategoryFor(t.CurrentApp())
}

// AppCategoryFor maps an application identifier to its category.
// Unmapped or empty identifiers yield AppOther. Lookup is by normalized
// exact match first, then by substring so bundle-style identifiers
// ("com.google.Chrome") still resolve.
func AppCategoryFor(identifier string) AppCategory {
	norm := strings.ToLower(strings.TrimSpace(identifier))
	if norm == "" {
		return AppOther
	}
	if cat, ok := appTable[norm]; ok {
		return cat
	}
	for key, cat := range appTable {
		if strings.Contains(norm, key) {
			return cat
		}
	}
	return AppOther
}

// FrequentApps returns up to limit distinct identifiers from the usage
// ring ordered by count descending. Ties order by most recent use.
func (t *Tracker) FrequentApps(limit int) []AppCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[string]int)
	lastSeen := make(map[string]int)
	for i, ev := range t.usage {
		counts[ev.identifier]++
		lastSeen[ev.identifier] = i
	}

	result := make([]AppCount, 0, len(counts))
	for id, n := range counts {
		result = append(result, AppCount{Identifier: id, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return lastSeen[result[i].Identifier] > lastSeen[result[j].Identifier]
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// RecentApps returns up to limit distinct identifiers ordered by most
// recent use, newest first.
func (t *Tracker) RecentApps(limit int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]bool)
	result := make([]string, 0, limit)
	for i := len(t.usage) - 1; i >= 0; i-- {
		id := t.usage[i].identifier
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// ContextMatch returns the affinity between a content category and an
// app category, in [0, 1].
func ContextMatch(category entry.Category, app AppCategory) float64 {
	if category == entry.CategoryPlainText {
		return plainTextDefault
	}
	if row, ok := affinityTable[category]; ok {
		if score, ok := row[app]; ok {
			return score
		}
	}
	return defaultAffinity
}

// CalculateRelevance combines context affinity with recency and
// favorite bonuses into a [0, 1] score.
func (t *Tracker) CalculateRelevance(category entry.Category, recentlyUsed, isFavorite bool) float64 {
	score := ContextMatch(category, t.CurrentCategory()) * contextWeight
	if recentlyUsed {
		score += recentBonus
	}
	if isFavorite {
		score += favoriteBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
