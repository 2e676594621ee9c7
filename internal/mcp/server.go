package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kordes/clipsense/internal/config"
	"github.com/kordes/clipsense/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"clip_capture": {
		def:     captureToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCapture },
	},
	"clip_categorize": {
		def:     categorizeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategorize },
	},
	"clip_suggest": {
		def:     suggestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggest },
	},
	"clip_history": {
		def:     historyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
	"clip_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"clip_favorite": {
		def:     favoriteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFavorite },
	},
	"clip_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"rule_list": {
		def:     ruleListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleList },
	},
	"rule_add": {
		def:     ruleAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleAdd },
	},
	"rule_update": {
		def:     ruleUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleUpdate },
	},
	"rule_delete": {
		def:     ruleDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleDelete },
	},
	"rule_enable": {
		def:     ruleEnableToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleEnable },
	},
	"app_focus": {
		def:     appFocusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAppFocus },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with clipsense tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(svc *ops.Service, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"clipsense",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(svc)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(svc *ops.Service, cfg *config.Config, version string) error {
	s := NewServer(svc, cfg, version)
	return server.ServeStdio(s)
}
