package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kordes/clipsense/internal/config"
	"github.com/kordes/clipsense/internal/errors"
	"github.com/kordes/clipsense/internal/ops"
	"github.com/kordes/clipsense/internal/rules"
)

// ruleJSONMaxBytes bounds rule definitions piped via stdin.
const ruleJSONMaxBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *ops.Service, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "clipsense",
		Usage:   "Clipboard intelligence: classify, suggest, automate",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(svc, cfg),
			categorizeCmd(svc, cfg),
			suggestCmd(svc),
			historyCmd(svc),
			getCmd(svc),
			favoriteCmd(svc),
			deleteCmd(svc),
			rulesCmd(svc),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
func captureCmd(svc *ops.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Capture clipboard content (reads content from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source-app", Aliases: []string{"a"}, Usage: "Application the content was copied from"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("content must be piped via stdin"))
			}

			content, err := readStdin(contentByteLimit(cfg))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			if content == "" {
				return outputError(errors.NewInvalidRequest("content is required"))
			}

			input := ops.CaptureInput{Content: content}
			if app := c.String("source-app"); app != "" {
				input.SourceApp = &app
			}

			output, err := svc.Capture(input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// categorizeCmd creates the categorize command.
func categorizeCmd(svc *ops.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "categorize",
		Usage: "Classify content without storing it (reads content from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("content must be piped via stdin"))
			}

			content, err := readStdin(contentByteLimit(cfg))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			category, err := svc.Categorize(content)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"category": category})
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Rank recent history by relevance to the current app context",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum suggestions to return"},
			&cli.StringFlag{Name: "app", Aliases: []string{"a"}, Usage: "Record a focus switch to this app before ranking"},
		},
		Action: func(c *cli.Context) error {
			output, err := svc.Suggest(ops.SuggestInput{
				Limit: c.Int("limit"),
				App:   c.String("app"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List stored entries, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by content category"},
			&cli.StringFlag{Name: "source-app", Aliases: []string{"a"}, Usage: "Filter by source application"},
			&cli.BoolFlag{Name: "favorites", Usage: "Only show favorited entries"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := svc.History(ops.HistoryInput{
				Category:      c.String("category"),
				SourceApp:     c.String("source-app"),
				FavoritesOnly: c.Bool("favorites"),
				Limit:         c.Int("limit"),
				Offset:        c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a single entry by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := svc.Get(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// favoriteCmd creates the favorite command.
func favoriteCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Set or clear the favorite flag on an entry",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "unset", Usage: "Clear the flag instead of setting it"},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			favorite := !c.Bool("unset")

			if err := svc.Favorite(id, favorite); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"id": id, "favorite": favorite})
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an entry from history",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if err := svc.DeleteEntry(id); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"id": id, "deleted": true})
		},
	}
}

// rulesCmd creates the rules command with its subcommands.
func rulesCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "Manage automation rules",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List rules in evaluation order",
				Action: func(c *cli.Context) error {
					return outputJSON(map[string]any{"rules": svc.Rules()})
				},
			},
			{
				Name:  "add",
				Usage: "Add a rule (reads rule JSON from stdin)",
				Action: func(c *cli.Context) error {
					r, err := readRuleJSON()
					if err != nil {
						return outputError(err)
					}

					output, err := svc.AddRule(r)
					if err != nil {
						return outputError(err)
					}

					return outputJSON(output)
				},
			},
			{
				Name:      "update",
				Usage:     "Replace a rule (reads rule JSON from stdin)",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					r, err := readRuleJSON()
					if err != nil {
						return outputError(err)
					}
					r.ID = c.Args().First()

					if err := svc.UpdateRule(r); err != nil {
						return outputError(err)
					}

					return outputJSON(r)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a rule",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if err := svc.DeleteRule(id); err != nil {
						return outputError(err)
					}

					return outputJSON(map[string]any{"id": id, "deleted": true})
				},
			},
			{
				Name:      "enable",
				Usage:     "Enable a rule",
				ArgsUsage: "<id>",
				Action:    setEnabledAction(svc, true),
			},
			{
				Name:      "disable",
				Usage:     "Disable a rule",
				ArgsUsage: "<id>",
				Action:    setEnabledAction(svc, false),
			},
		},
	}
}

// setEnabledAction builds an action toggling a rule's enabled state.
func setEnabledAction(svc *ops.Service, enabled bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		id := c.Args().First()
		if err := svc.SetRuleEnabled(id, enabled); err != nil {
			return outputError(err)
		}

		return outputJSON(map[string]any{"id": id, "enabled": enabled})
	}
}

// Helper functions

// readRuleJSON reads and decodes a rule definition piped via stdin.
func readRuleJSON() (rules.Rule, error) {
	var r rules.Rule
	if !stdinHasData() {
		return r, errors.NewInvalidRequest("rule JSON must be piped via stdin")
	}

	raw, err := readStdin(ruleJSONMaxBytes)
	if err != nil {
		return r, errors.NewInvalidRequest(err.Error())
	}
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return r, errors.NewInvalidRequest("invalid rule JSON: " + err.Error())
	}
	if r.Logic == "" {
		r.Logic = rules.LogicAll
	}
	return r, nil
}

// contentByteLimit converts the configured character limit to a byte
// bound for stdin reads (UTF-8 runes are at most 4 bytes).
func contentByteLimit(cfg *config.Config) int {
	return cfg.ContentMaxChars * 4
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if clipErr, ok := err.(*errors.ClipError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", clipErr.Code, clipErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads stdin up to maxBytes, erroring when input exceeds it.
// Leading and trailing whitespace is trimmed.
func readStdin(maxBytes int) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, int64(maxBytes)+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxBytes {
		return "", fmt.Errorf("stdin input exceeds %d bytes", maxBytes)
	}
	return strings.TrimSpace(string(data)), nil
}
