// tools_config.go implements MCP tools for configuration management.
//
// Settings are read by the catalog when it opens, so a change made here
// applies to the next server start.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles entlog_config_get tool calls. Tokens are never echoed.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		all := cfg.All()
		if all[config.KeyServerToken] != "" {
			all[config.KeyServerToken] = "(set)"
		}
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(all)
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if key == config.KeyServerToken && v != "" {
		v = "(set)"
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles entlog_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Set(key, value)
	}
	if err == nil {
		err = cfg.Save()
	}

	// value intentionally not logged
	log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s updated (applies on next start)", key)), nil
}
