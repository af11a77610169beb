// tools_tags.go implements MCP tools for the tag registry.
//
// Rename and delete cascade into every entity holding the tag, so both
// report how the registry looks afterwards rather than echoing the input.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// listTags handles entlog_tags tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	query := getString(req, "query", "")
	skip := getInt(req, "skip", 0)
	limit := getInt(req, "limit", h.svc.Config().TagLimit())

	tags, err := h.svc.ListTags(ctx, query, skip, limit)

	log.Event("mcp:tags", "list_tags").Author("mcp").Detail("query", query).Count(len(tags)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]store.TagJSON, len(tags))
	for i := range tags {
		out[i] = tags[i].ToJSON()
	}
	return jsonResult(out)
}

// renameTag handles entlog_tag_rename tool calls.
func (h *handlers) renameTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	t, err := h.svc.RenameTag(ctx, id, name)

	log.Event("mcp:tag_rename", "rename").Author("mcp").Tag(name).Detail("id", id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(t.ToJSON())
}

// deleteTag handles entlog_tag_delete tool calls.
func (h *handlers) deleteTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	t, err := h.svc.DeleteTag(ctx, id)

	log.Event("mcp:tag_delete", "delete").Author("mcp").Detail("id", id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted tag %q", t.Name)), nil
}
