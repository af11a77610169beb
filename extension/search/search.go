// Package search provides the search extension. Registers command: find.
package search

import (
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared catalog.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the find command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newFindCmd()}
}

// MCPTools returns nil; entlog_search is built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
