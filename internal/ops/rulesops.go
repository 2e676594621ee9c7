package ops

import (
	"strings"

	"github.com/kordes/clipsense/internal/errors"
	"github.com/kordes/clipsense/internal/rules"
)

// Rules returns the active rule set in evaluation order.
func (s *Service) Rules() []rules.Rule {
	return s.engine.Rules()
}

// AddRule validates, adds, and persists a rule.
func (s *Service) AddRule(r rules.Rule) (rules.Rule, error) {
	return s.engine.AddRule(r)
}

// UpdateRule replaces an existing rule and persists.
func (s *Service) UpdateRule(r rules.Rule) error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.NewInvalidRequest("rule id is required")
	}
	return s.engine.UpdateRule(r)
}

// DeleteRule removes a rule and persists.
func (s *Service) DeleteRule(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewInvalidRequest("rule id is required")
	}
	return s.engine.DeleteRule(id)
}

// SetRuleEnabled toggles a rule and persists.
func (s *Service) SetRuleEnabled(id string, enabled bool) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewInvalidRequest("rule id is required")
	}
	return s.engine.SetEnabled(id, enabled)
}
