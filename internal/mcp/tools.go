package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Each pairs with a handler in handlers.go through
// the registry in server.go.

var captureToolDef = mcp.NewTool("clip_capture",
	mcp.WithDescription("Capture new clipboard content: classify it, store it in history, and run automation rules against it. Returns the entry id, detected category, and favorite state."),
	mcp.WithString("content",
		mcp.Required(),
		mcp.Description("The clipboard text to capture."),
	),
	mcp.WithString("source_app",
		mcp.Description("Identifier of the application the content was copied from (e.g. 'chrome', 'com.microsoft.VSCode'). Also recorded as a focus event."),
	),
)

var categorizeToolDef = mcp.NewTool("clip_categorize",
	mcp.WithDescription("Classify text into a content category (url, email, phone_number, json, credential, code, markdown, address, plain_text) without storing anything."),
	mcp.WithString("content",
		mcp.Required(),
		mcp.Description("The text to classify."),
	),
)

var suggestToolDef = mcp.NewTool("clip_suggest",
	mcp.WithDescription("Rank recent history entries by relevance to the current application context. Returns scored suggestions with human-readable reasons."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of suggestions to return (default from config, normally 5)."),
	),
	mcp.WithString("app",
		mcp.Description("Optionally record a focus switch to this application before ranking."),
	),
)

var historyToolDef = mcp.NewTool("clip_history",
	mcp.WithDescription("List stored clipboard entries, newest first, with optional filters and paging."),
	mcp.WithString("category",
		mcp.Description("Only return entries of this content category."),
	),
	mcp.WithString("source_app",
		mcp.Description("Only return entries captured from this application."),
	),
	mcp.WithBoolean("favorites_only",
		mcp.Description("Only return favorited entries."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum entries to return (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of entries to skip, for paging."),
	),
)

var getToolDef = mcp.NewTool("clip_get",
	mcp.WithDescription("Fetch a single history entry by id, including its full content."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry id (ULID)."),
	),
)

var favoriteToolDef = mcp.NewTool("clip_favorite",
	mcp.WithDescription("Set or clear the favorite flag on a history entry."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry id (ULID)."),
	),
	mcp.WithBoolean("favorite",
		mcp.Description("Desired favorite state (default true)."),
	),
)

var deleteToolDef = mcp.NewTool("clip_delete",
	mcp.WithDescription("Delete a history entry. Cancels any pending auto-delete timer for it first."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry id (ULID)."),
	),
)

var ruleListToolDef = mcp.NewTool("rule_list",
	mcp.WithDescription("List all automation rules in evaluation order (highest priority first)."),
)

var ruleAddToolDef = mcp.NewTool("rule_add",
	mcp.WithDescription("Add an automation rule. Conditions are objects with a 'type' discriminator (source_app, content_type, regex, contains_text, length, time_of_day); actions likewise (auto_favorite, auto_delete, transform, notify, copy_to_file)."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Human-readable rule name."),
	),
	mcp.WithString("logic",
		mcp.Description("How conditions combine: 'all' (default) or 'any'."),
	),
	mcp.WithArray("conditions",
		mcp.Description("Condition objects, each with a 'type' field and the fields that type needs."),
		mcp.Items(map[string]any{"type": "object"}),
	),
	mcp.WithArray("actions",
		mcp.Description("Action objects, each with a 'type' field and the fields that type needs."),
		mcp.Items(map[string]any{"type": "object"}),
	),
	mcp.WithNumber("priority",
		mcp.Description("Evaluation priority; higher runs first."),
	),
	mcp.WithBoolean("enabled",
		mcp.Description("Whether the rule is active (default true)."),
	),
)

var ruleUpdateToolDef = mcp.NewTool("rule_update",
	mcp.WithDescription("Replace an existing automation rule. The full rule is supplied; fields not given fall back to zero values."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Rule id."),
	),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Human-readable rule name."),
	),
	mcp.WithString("logic",
		mcp.Description("How conditions combine: 'all' (default) or 'any'."),
	),
	mcp.WithArray("conditions",
		mcp.Description("Condition objects, each with a 'type' field and the fields that type needs."),
		mcp.Items(map[string]any{"type": "object"}),
	),
	mcp.WithArray("actions",
		mcp.Description("Action objects, each with a 'type' field and the fields that type needs."),
		mcp.Items(map[string]any{"type": "object"}),
	),
	mcp.WithNumber("priority",
		mcp.Description("Evaluation priority; higher runs first."),
	),
	mcp.WithBoolean("enabled",
		mcp.Description("Whether the rule is active."),
	),
)

var ruleDeleteToolDef = mcp.NewTool("rule_delete",
	mcp.WithDescription("Delete an automation rule by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Rule id."),
	),
)

var ruleEnableToolDef = mcp.NewTool("rule_enable",
	mcp.WithDescription("Enable or disable an automation rule without changing its definition."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Rule id."),
	),
	mcp.WithBoolean("enabled",
		mcp.Description("Desired state (default true)."),
	),
)

var appFocusToolDef = mcp.NewTool("app_focus",
	mcp.WithDescription("Record a foreground-application switch so suggestions can weigh the current context. Returns the app's category and recent usage."),
	mcp.WithString("app",
		mcp.Required(),
		mcp.Description("Application identifier (e.g. 'chrome', 'slack', a bundle id)."),
	),
)
