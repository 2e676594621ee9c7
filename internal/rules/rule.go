// Package rules implements the declarative condition/action automation
// engine evaluated against new clipboard entries.
package rules

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/kordes/clipsense/internal/entry"
	"github.com/kordes/clipsense/internal/errors"
)

// LogicMode controls how a rule's conditions combine.
type LogicMode string

const (
	LogicAll LogicMode = "all" // every condition must hold
	LogicAny LogicMode = "any" // at least one condition must hold
)

// ConditionType discriminates the Condition variants.
type ConditionType string

const (
	CondSourceApp    ConditionType = "source_app"
	CondContentType  ConditionType = "content_type"
	CondRegex        ConditionType = "regex"
	CondContainsText ConditionType = "contains_text"
	CondLength       ConditionType = "length"
	CondTimeOfDay    ConditionType = "time_of_day"
)

// Comparison operators for length conditions.
const (
	CompareLess    = "lt"
	CompareGreater = "gt"
	CompareEqual   = "eq"
)

// Condition is a tagged variant: Type selects which fields apply.
// Serialization is by explicit field tags, never positional.
type Condition struct {
	Type ConditionType `json:"type"`

	// Value holds the pattern or text for source_app, regex, and
	// contains_text conditions.
	Value string `json:"value,omitempty"`

	// Category applies to content_type conditions.
	Category entry.Category `json:"category,omitempty"`

	// Comparison and Length apply to length conditions.
	Comparison string `json:"comparison,omitempty"`
	Length     int    `json:"length,omitempty"`

	// StartHour and EndHour (0-23) apply to time_of_day conditions.
	// A window with StartHour > EndHour wraps past midnight.
	StartHour int `json:"start_hour,omitempty"`
	EndHour   int `json:"end_hour,omitempty"`
}

// ActionType discriminates the Action variants.
type ActionType string

const (
	ActionAutoFavorite  ActionType = "auto_favorite"
	ActionAutoDelete    ActionType = "auto_delete"
	ActionAddToCategory ActionType = "add_to_category" // reserved, no-op
	ActionTransform     ActionType = "transform"
	ActionNotify        ActionType = "notify"
	ActionCopyToFile    ActionType = "copy_to_file"
)

// Action is a tagged variant: Type selects which fields apply.
type Action struct {
	Type ActionType `json:"type"`

	// DelaySeconds applies to auto_delete actions.
	DelaySeconds int `json:"delay_seconds,omitempty"`

	// Category applies to add_to_category actions (reserved).
	Category string `json:"category,omitempty"`

	// Transform names the text transform for transform actions.
	Transform TransformType `json:"transform,omitempty"`

	// Title and Message apply to notify actions. Message supports a
	// ${content} token substituted with the entry content truncated to
	// 50 characters.
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`

	// Folder applies to copy_to_file actions.
	Folder string `json:"folder,omitempty"`
}

// Rule is a user-authored automation unit.
type Rule struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Enabled    bool        `json:"enabled"`
	Conditions []Condition `json:"conditions"`
	Logic      LogicMode   `json:"logic"`
	Actions    []Action    `json:"actions"`
	Priority   int         `json:"priority"`
}

// Matches reports whether the rule fires for the given entry at the
// given time. A rule with no conditions never matches, regardless of
// logic mode.
func (r *Rule) Matches(e *entry.Entry, now time.Time) bool {
	if len(r.Conditions) == 0 {
		return false
	}

	for _, c := range r.Conditions {
		holds := c.evaluate(e, now)
		if r.Logic == LogicAny && holds {
			return true
		}
		if r.Logic != LogicAny && !holds {
			return false
		}
	}
	return r.Logic != LogicAny
}

// evaluate checks one condition against an entry.
func (c *Condition) evaluate(e *entry.Entry, now time.Time) bool {
	switch c.Type {
	case CondSourceApp:
		if e.SourceApp == nil {
			return false
		}
		return strings.Contains(strings.ToLower(*e.SourceApp), strings.ToLower(c.Value))

	case CondContentType:
		return e.Category != nil && *e.Category == c.Category

	case CondRegex:
		re, err := regexp.Compile(c.Value)
		if err != nil {
			// A malformed pattern degrades to non-match, never a crash.
			log.Printf("rules: regex condition failed to compile: %v", err)
			return false
		}
		return re.MatchString(e.Content)

	case CondContainsText:
		return strings.Contains(strings.ToLower(e.Content), strings.ToLower(c.Value))

	case CondLength:
		n := entry.CountChars(e.Content)
		switch c.Comparison {
		case CompareLess:
			return n < c.Length
		case CompareGreater:
			return n > c.Length
		case CompareEqual:
			return n == c.Length
		}
		return false

	case CondTimeOfDay:
		hour := now.Hour()
		if c.StartHour <= c.EndHour {
			return hour >= c.StartHour && hour < c.EndHour
		}
		// Wraps past midnight, e.g. 22-6 matches 23 and 2 but not 10.
		return hour >= c.StartHour || hour < c.EndHour

	default:
		return false
	}
}

// Validate checks structural validity of a rule before it is accepted.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.NewInvalidRule("rule name must not be empty")
	}
	if r.Logic != LogicAll && r.Logic != LogicAny {
		return errors.NewInvalidRule("logic must be one of: all, any")
	}
	for _, c := range r.Conditions {
		if err := c.validate(); err != nil {
			return err
		}
	}
	for _, a := range r.Actions {
		if err := a.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Condition) validate() error {
	switch c.Type {
	case CondSourceApp, CondRegex, CondContainsText:
		if c.Value == "" {
			return errors.NewInvalidRule("condition value must not be empty")
		}
	case CondContentType:
		if !entry.Valid(c.Category) {
			return errors.NewInvalidRule("unknown content category: " + string(c.Category))
		}
	case CondLength:
		if c.Comparison != CompareLess && c.Comparison != CompareGreater && c.Comparison != CompareEqual {
			return errors.NewInvalidRule("length comparison must be one of: lt, gt, eq")
		}
	case CondTimeOfDay:
		if c.StartHour < 0 || c.StartHour > 23 || c.EndHour < 0 || c.EndHour > 23 {
			return errors.NewInvalidRule("time_of_day hours must be in 0-23")
		}
	default:
		return errors.NewInvalidRule("unknown condition type: " + string(c.Type))
	}
	return nil
}

func (a *Action) validate() error {
	switch a.Type {
	case ActionAutoFavorite, ActionAddToCategory:
		return nil
	case ActionAutoDelete:
		if a.DelaySeconds <= 0 {
			return errors.NewInvalidRule("auto_delete delay_seconds must be positive")
		}
	case ActionTransform:
		if !ValidTransform(a.Transform) {
			return errors.NewInvalidRule("unknown transform: " + string(a.Transform))
		}
	case ActionNotify:
		if a.Title == "" {
			return errors.NewInvalidRule("notify title must not be empty")
		}
	case ActionCopyToFile:
		if a.Folder == "" {
			return errors.NewInvalidRule("copy_to_file folder must not be empty")
		}
	default:
		return errors.NewInvalidRule("unknown action type: " + string(a.Type))
	}
	return nil
}
