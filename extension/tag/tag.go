// Package tag provides the tag extension for entlog.
// It registers command: tag (with subcommands ls, mv, rm, sync) and the
// entlog_tag_sync MCP tool.
package tag

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/tag"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init receives the shared catalog from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the tag command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newTagCmd()}
}

// MCPTools returns entlog_tag_sync. The other tag tools are built into
// internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("entlog_tag_sync",
			mcp.WithDescription("Register every tag used by an entity that is missing from the tag registry"),
		),
		Handler: syncTool,
	}}
}

func syncTool(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := tag.Sync(ctx, io.Discard, extCtx.Service())
	log.Event("mcp:entlog_tag_sync", "sync").Author("mcp").Count(result.Created).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("registered %d tag(s)", result.Created)), nil
}

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage the tag registry",
		Long: `List, rename and delete registered tags.

Entity tags are set with "entlog add --tag" and "entlog edit --add-tag".
Renaming or deleting a registry tag rewrites every entity that carries it.`,
	}
	c.AddCommand(e.newLsCmd(), e.newMvCmd(), e.newRmCmd(), e.newSyncCmd())
	return c
}

func parseTagID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid tag id %q: must be a positive integer", s)
	}
	return id, nil
}

// writer discards text output when JSON is requested.
func writer() io.Writer {
	if cmd.JSON() {
		return io.Discard
	}
	return cmd.Out()
}

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "ls [filter]",
		Aliases: []string{"list"},
		Short:   "List tags (name contains filter, case-insensitive)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			skip, _ := c.Flags().GetInt(extension.FlagSkip)
			limit, _ := c.Flags().GetInt(extension.FlagLimit)
			if !c.Flags().Changed(extension.FlagLimit) {
				limit = e.cfg.TagLimit()
			}

			result, err := tag.List(c.Context(), writer(), e.svc, query, skip, limit)
			log.Event("tag:ls", "list").Author(cmd.Author()).Detail("query", query).Count(len(result.Tags)).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("tag ls: %w", err))
			}
			return cmd.PrintJSON(result.Tags)
		},
	}
	c.Flags().Int(extension.FlagSkip, 0, "Tags to skip")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum tags (default tags.default_limit)")
	return c
}

func (e *Extension) newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <id> <new-name>",
		Short: "Rename a tag everywhere",
		Long: `Rename a registry tag and every entity's copy of it.

Renaming onto an existing tag merges the two.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseTagID(args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			result, err := tag.Rename(c.Context(), writer(), e.svc, id, args[1])
			log.Event("tag:mv", "rename").Author(cmd.Author()).Tag(args[1]).Detail("id", id).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("tag mv: %w", err))
			}
			return cmd.PrintJSON(result)
		},
	}
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a tag everywhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseTagID(args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			result, err := tag.Delete(c.Context(), writer(), e.svc, id)
			b := log.Event("tag:rm", "delete").Author(cmd.Author()).Detail("id", id)
			if result.Tag != nil {
				b = b.Tag(result.Tag.Name)
			}
			b.Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("tag rm: %w", err))
			}
			return cmd.PrintJSON(result)
		},
	}
}

func (e *Extension) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Register tags used by entities but missing from the registry",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			result, err := tag.Sync(c.Context(), writer(), e.svc)
			log.Event("tag:sync", "sync").Author(cmd.Author()).Count(result.Created).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("tag sync: %w", err))
			}
			return cmd.PrintJSON(result)
		},
	}
}
