// Package core provides the core extension for entlog.
// It registers commands: init, config, serve, api, db, guide, version.
package core

import (
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared catalog for the api and db commands.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the catalog management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		e.newAPICmd(),
		newDBCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the MCP server registers init and config tools itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own catalog lifecycle.
// serve: the MCP server starts even without a catalog so entlog_init works.
// db: manages gitignore entries, opens a database only to report stats.
// version: build info only.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "version"}
}
