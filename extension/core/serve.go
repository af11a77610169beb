// serve.go implements "entlog serve", the MCP server over stdio.
//
// Serve is storeless: it opens its own catalog so that it can start before
// one exists and let the client call entlog_init.

package core

import (
	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific database:
  entlog serve --db work    # serve entlog-work.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(cmd.DB())
		},
	}
}
