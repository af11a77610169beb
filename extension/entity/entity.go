// Package entity provides the entity extension: add, show, edit, rm, ls.
//
// Each command parses flags, calls the matching internal package and writes
// either text or, with -o json, the entity's JSON form.

package entity

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the entity extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "entity".
func (e *Extension) Name() string { return "entity" }

// Init connects to the shared catalog.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the entity lifecycle commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newAddCmd(),
		e.newShowCmd(),
		e.newEditCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
	}
}

// MCPTools returns nil; entity tools are built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// parseID parses a positive entity id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
