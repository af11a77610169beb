// tools_init.go implements the MCP tool for initialising a new catalog.
//
// This tool works without an existing catalog so an LLM can bootstrap one.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore handles entlog_init tool calls.
func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}

	local := getBool(req, "local", false)

	err := catalog.Init(false, h.db, local, "")

	log.Event("mcp:init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := catalog.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalog: " + err.Error()), nil
	}
	h.svc = svc

	slog.Info("catalog initialised", "local", local)

	if local {
		return mcp.NewToolResultText("store initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("store initialised"), nil
}
