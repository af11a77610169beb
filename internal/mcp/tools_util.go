// tools_util.go provides helpers for MCP tool parameter extraction.
//
// Design: Optional parameters are extracted permissively (default on a
// missing or mistyped value). LLMs often omit optional parameters or send
// them in an unexpected shape, and a sensible default keeps the tool usable.
// Required parameters are checked by the caller with a clear message.

package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/jpl-au/entlog/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// has reports whether the caller supplied name at all.
func has(req mcp.CallToolRequest, name string) bool {
	_, ok := args(req)[name]
	return ok
}

// getString returns a string parameter or def.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean parameter or def.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// getInt returns a numeric parameter or def. JSON numbers arrive as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := args(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// getID returns the required positive "id" parameter.
func getID(req mcp.CallToolRequest) (int64, error) {
	v, ok := args(req)["id"].(float64)
	if !ok || v < 1 || v != float64(int64(v)) {
		return 0, fmt.Errorf("id is required and must be a positive integer")
	}
	return int64(v), nil
}

// getStrings returns a string array parameter. Non-string elements are
// skipped. Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// decodeArg re-encodes an arbitrary argument into v. Used for nested
// objects such as attributes.
func decodeArg(req mcp.CallToolRequest, name string, v any) error {
	raw, ok := args(req)[name]
	if !ok || raw == nil {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// jsonResult serialises v as indented JSON in a text result. LLMs parse
// formatted output more reliably.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
