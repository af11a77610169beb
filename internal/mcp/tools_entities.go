// tools_entities.go implements MCP tools for entity lifecycle and search.
//
// Update differs from the HTTP API on purpose: an LLM will usually send only
// the fields it wants to change, so omitted fields are carried over from the
// stored entity before the replacement is applied.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// scoredEntity is a search hit as returned to the LLM.
type scoredEntity struct {
	store.EntityJSON
	Score int `json:"score"`
}

// applyFields overlays supplied tool arguments onto in.
func applyFields(req mcp.CallToolRequest, in *store.EntityInput) error {
	for name, dst := range map[string]*string{
		"entity_type": &in.EntityType,
		"name":        &in.Name,
		"locator":     &in.Locator,
		"description": &in.Description,
		"image_url":   &in.ImageURL,
	} {
		if has(req, name) {
			*dst = getString(req, name, "")
		}
	}
	if has(req, "tags") {
		in.Tags = getStrings(req, "tags")
	}
	if has(req, "attributes") {
		in.Attributes = nil
		if err := decodeArg(req, "attributes", &in.Attributes); err != nil {
			return err
		}
	}
	return nil
}

func (h *handlers) createEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	var in store.EntityInput
	if err := applyFields(req, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	e, err := h.svc.CreateEntity(ctx, in)
	if err != nil {
		log.Event("mcp:create", "create").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Event("mcp:create", "create").Author("mcp").Entity(e.ID).Write(nil)

	return jsonResult(e.ToJSON())
}

func (h *handlers) getEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	e, err := h.svc.Entity(ctx, id)

	log.Event("mcp:get", "read").Author("mcp").Entity(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

func (h *handlers) updateEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	cur, err := h.svc.Entity(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := cur.Input()
	if err := applyFields(req, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	e, err := h.svc.UpdateEntity(ctx, id, in)

	log.Event("mcp:update", "update").Author("mcp").Entity(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

func (h *handlers) deleteEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	id, err := getID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	e, err := h.svc.DeleteEntity(ctx, id)

	log.Event("mcp:delete", "delete").Author("mcp").Entity(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted entity %d (%s)", e.ID, e.Name)), nil
}

func (h *handlers) listEntities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	skip := getInt(req, "skip", 0)
	limit := getInt(req, "limit", h.svc.Config().SearchLimit())

	entities, err := h.svc.ListEntities(ctx, skip, limit)

	log.Event("mcp:list", "list").Author("mcp").Count(len(entities)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]store.EntityJSON, len(entities))
	for i := range entities {
		out[i] = entities[i].ToJSON()
	}
	return jsonResult(out)
}

func (h *handlers) searchEntities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	q := search.Query{
		Text:       query,
		Scope:      search.Scope(getString(req, "field", "")),
		ExactMatch: getBool(req, "exact_match", false),
		Skip:       getInt(req, "skip", 0),
		Limit:      getInt(req, "limit", h.svc.Config().SearchLimit()),
	}

	results, err := h.svc.Search(ctx, q)

	log.Event("mcp:search", "search").Author("mcp").
		Detail("query", query).Detail("field", string(q.Scope)).Count(len(results)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]scoredEntity, len(results))
	for i := range results {
		out[i] = scoredEntity{EntityJSON: results[i].Entity.ToJSON(), Score: results[i].Score}
	}
	return jsonResult(out)
}
