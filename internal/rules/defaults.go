package rules

import (
	"github.com/google/uuid"

	"github.com/kordes/clipsense/internal/entry"
)

// seedRules returns the default rule set used when no rules are
// persisted (first run) or the persisted blob is unreadable.
func seedRules() []Rule {
	return []Rule{
		{
			ID:      uuid.NewString(),
			Name:    "Warn on copied credentials",
			Enabled: true,
			Logic:   LogicAll,
			Conditions: []Condition{
				{Type: CondContentType, Category: entry.CategoryCredential},
			},
			Actions: []Action{
				{
					Type:    ActionNotify,
					Title:   "Credential copied",
					Message: "A credential is on your clipboard: ${content}",
				},
			},
			Priority: 20,
		},
		{
			ID:      uuid.NewString(),
			Name:    "Favorite GitHub URLs",
			Enabled: true,
			Logic:   LogicAll,
			Conditions: []Condition{
				{Type: CondContentType, Category: entry.CategoryURL},
				{Type: CondContainsText, Value: "github.com"},
			},
			Actions: []Action{
				{Type: ActionAutoFavorite},
			},
			Priority: 10,
		},
	}
}
