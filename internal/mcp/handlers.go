package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kordes/clipsense/internal/errors"
	"github.com/kordes/clipsense/internal/ops"
	"github.com/kordes/clipsense/internal/rules"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *ops.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *ops.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Request types for each tool

// CaptureRequest represents the arguments for clip_capture.
type CaptureRequest struct {
	Content   string  `json:"content"`
	SourceApp *string `json:"source_app,omitempty"`
}

// CategorizeRequest represents the arguments for clip_categorize.
type CategorizeRequest struct {
	Content string `json:"content"`
}

// SuggestRequest represents the arguments for clip_suggest.
type SuggestRequest struct {
	Limit int    `json:"limit,omitempty"`
	App   string `json:"app,omitempty"`
}

// HistoryRequest represents the arguments for clip_history.
type HistoryRequest struct {
	Category      string `json:"category,omitempty"`
	SourceApp     string `json:"source_app,omitempty"`
	FavoritesOnly bool   `json:"favorites_only,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}

// GetRequest represents the arguments for clip_get.
type GetRequest struct {
	ID string `json:"id"`
}

// FavoriteRequest represents the arguments for clip_favorite.
type FavoriteRequest struct {
	ID       string `json:"id"`
	Favorite *bool  `json:"favorite,omitempty"` // nil means true
}

// DeleteRequest represents the arguments for clip_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// RuleAddRequest represents the arguments for rule_add.
type RuleAddRequest struct {
	Name       string            `json:"name"`
	Logic      rules.LogicMode   `json:"logic,omitempty"`
	Conditions []rules.Condition `json:"conditions,omitempty"`
	Actions    []rules.Action    `json:"actions,omitempty"`
	Priority   int               `json:"priority,omitempty"`
	Enabled    *bool             `json:"enabled,omitempty"` // nil means true
}

// RuleUpdateRequest represents the arguments for rule_update.
type RuleUpdateRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Logic      rules.LogicMode   `json:"logic,omitempty"`
	Conditions []rules.Condition `json:"conditions,omitempty"`
	Actions    []rules.Action    `json:"actions,omitempty"`
	Priority   int               `json:"priority,omitempty"`
	Enabled    bool              `json:"enabled,omitempty"`
}

// RuleDeleteRequest represents the arguments for rule_delete.
type RuleDeleteRequest struct {
	ID string `json:"id"`
}

// RuleEnableRequest represents the arguments for rule_enable.
type RuleEnableRequest struct {
	ID      string `json:"id"`
	Enabled *bool  `json:"enabled,omitempty"` // nil means true
}

// AppFocusRequest represents the arguments for app_focus.
type AppFocusRequest struct {
	App string `json:"app"`
}

// Handler implementations

// HandleCapture handles the clip_capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.Capture(ops.CaptureInput{
		Content:   input.Content,
		SourceApp: input.SourceApp,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCategorize handles the clip_categorize tool call.
func (h *Handlers) HandleCategorize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategorizeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	category, err := h.svc.Categorize(input.Content)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"category": category})
}

// HandleSuggest handles the clip_suggest tool call.
func (h *Handlers) HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SuggestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.Suggest(ops.SuggestInput{
		Limit: input.Limit,
		App:   input.App,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the clip_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.History(ops.HistoryInput{
		Category:      input.Category,
		SourceApp:     input.SourceApp,
		FavoritesOnly: input.FavoritesOnly,
		Limit:         input.Limit,
		Offset:        input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the clip_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFavorite handles the clip_favorite tool call.
func (h *Handlers) HandleFavorite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FavoriteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	favorite := true
	if input.Favorite != nil {
		favorite = *input.Favorite
	}

	if err := h.svc.Favorite(input.ID, favorite); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "favorite": favorite})
}

// HandleDelete handles the clip_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.svc.DeleteEntry(input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "deleted": true})
}

// HandleRuleList handles the rule_list tool call.
func (h *Handlers) HandleRuleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"rules": h.svc.Rules()})
}

// HandleRuleAdd handles the rule_add tool call.
func (h *Handlers) HandleRuleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	logic := input.Logic
	if logic == "" {
		logic = rules.LogicAll
	}
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	result, err := h.svc.AddRule(rules.Rule{
		Name:       input.Name,
		Enabled:    enabled,
		Conditions: input.Conditions,
		Logic:      logic,
		Actions:    input.Actions,
		Priority:   input.Priority,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRuleUpdate handles the rule_update tool call.
func (h *Handlers) HandleRuleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	logic := input.Logic
	if logic == "" {
		logic = rules.LogicAll
	}

	r := rules.Rule{
		ID:         input.ID,
		Name:       input.Name,
		Enabled:    input.Enabled,
		Conditions: input.Conditions,
		Logic:      logic,
		Actions:    input.Actions,
		Priority:   input.Priority,
	}
	if err := h.svc.UpdateRule(r); err != nil {
		return errorResult(err), nil
	}

	return successResult(r)
}

// HandleRuleDelete handles the rule_delete tool call.
func (h *Handlers) HandleRuleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.svc.DeleteRule(input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "deleted": true})
}

// HandleRuleEnable handles the rule_enable tool call.
func (h *Handlers) HandleRuleEnable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleEnableRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	if err := h.svc.SetRuleEnabled(input.ID, enabled); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "enabled": enabled})
}

// HandleAppFocus handles the app_focus tool call.
func (h *Handlers) HandleAppFocus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AppFocusRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.App == "" {
		return errorResult(errors.NewInvalidRequest("app is required")), nil
	}

	h.svc.SetFocus(input.App)
	tracker := h.svc.Tracker()

	return successResult(map[string]any{
		"app":          tracker.CurrentApp(),
		"app_category": tracker.CurrentCategory(),
		"recent_apps":  tracker.RecentApps(5),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if clipErr, ok := err.(*errors.ClipError); ok {
		errorObj := map[string]any{
			"code":    clipErr.Code,
			"message": clipErr.Message,
			"status":  clipErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if clipErr.Code != errors.ErrInternal && clipErr.Details != nil {
			errorObj["details"] = clipErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
