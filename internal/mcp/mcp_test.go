package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlers(t *testing.T) *handlers {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "mcp.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())

	svc := catalog.NewWithStore(st, &config.Config{}, catalog.WithMediaDir(t.TempDir()))
	t.Cleanup(func() { svc.Close() })
	return &handlers{svc: svc}
}

func call(name string, arguments map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = arguments
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return ""
}

func ok(t *testing.T, res *mcp.CallToolResult, err error) string {
	t.Helper()
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	return text(t, res)
}

type entityOut struct {
	ID         int64                          `json:"id"`
	Name       string                         `json:"name"`
	Locator    string                         `json:"locator"`
	Tags       []string                       `json:"tags"`
	Attributes map[string]store.AttributeJSON `json:"attributes"`
	Score      int                            `json:"score"`
}

func TestUninitialised(t *testing.T) {
	h := &handlers{}
	for _, fn := range []func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		h.createEntity, h.getEntity, h.searchEntities, h.listTags, h.deleteTag,
	} {
		res, err := fn(context.Background(), call("x", nil))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Equal(t, ErrNotInitialised, text(t, res))
	}
}

func TestCreateGetUpdate(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()

	res, err := h.createEntity(ctx, call("entlog_create", map[string]any{
		"entity_type": "service",
		"name":        "grafana",
		"locator":     "http://10.0.0.5:3000",
		"tags":        []any{"monitoring", "monitoring", 7},
		"attributes": map[string]any{
			"port": map[string]any{"description": "3000"},
		},
	}))
	var created entityOut
	require.NoError(t, json.Unmarshal([]byte(ok(t, res, err)), &created))
	assert.Equal(t, []string{"monitoring"}, created.Tags)
	assert.Equal(t, "port", created.Attributes["port"].Key)

	res, err = h.getEntity(ctx, call("entlog_get", map[string]any{"id": float64(created.ID)}))
	assert.Contains(t, ok(t, res, err), "grafana")

	// Omitted fields are kept.
	res, err = h.updateEntity(ctx, call("entlog_update", map[string]any{
		"id":   float64(created.ID),
		"name": "grafana-prod",
	}))
	var updated entityOut
	require.NoError(t, json.Unmarshal([]byte(ok(t, res, err)), &updated))
	assert.Equal(t, "grafana-prod", updated.Name)
	assert.Equal(t, "http://10.0.0.5:3000", updated.Locator)
	assert.Equal(t, []string{"monitoring"}, updated.Tags)
	assert.Contains(t, updated.Attributes, "port")
}

func TestCreate_Invalid(t *testing.T) {
	h := setupHandlers(t)
	res, err := h.createEntity(context.Background(), call("entlog_create", map[string]any{"name": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGet_BadID(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()

	for _, args := range []map[string]any{nil, {"id": "1"}, {"id": float64(0)}, {"id": 1.5}} {
		res, err := h.getEntity(ctx, call("entlog_get", args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}

	res, err := h.getEntity(ctx, call("entlog_get", map[string]any{"id": float64(42)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "not found")
}

func TestSearchAndList(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()
	for _, n := range []string{"alpha", "beta", "gamma"} {
		_, err := h.createEntity(ctx, call("entlog_create", map[string]any{
			"entity_type": "website", "name": n, "locator": "https://" + n, "tags": []any{"web"},
		}))
		require.NoError(t, err)
	}

	res, err := h.searchEntities(ctx, call("entlog_search", map[string]any{"query": "gamma", "field": "name"}))
	var hits []entityOut
	require.NoError(t, json.Unmarshal([]byte(ok(t, res, err)), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, 100, hits[0].Score)

	res, err = h.searchEntities(ctx, call("entlog_search", map[string]any{"query": "web", "field": "tags", "exact_match": true, "limit": float64(2)}))
	require.NoError(t, json.Unmarshal([]byte(ok(t, res, err)), &hits))
	assert.Len(t, hits, 2)

	res, err = h.searchEntities(ctx, call("entlog_search", map[string]any{"query": "x", "field": "bogus"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.listEntities(ctx, call("entlog_list", map[string]any{"skip": float64(1)}))
	var listed []entityOut
	require.NoError(t, json.Unmarshal([]byte(ok(t, res, err)), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "beta", listed[0].Name)
}

func TestTagTools(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()
	res, err := h.createEntity(ctx, call("entlog_create", map[string]any{
		"entity_type": "website", "name": "a", "locator": "l", "tags": []any{"web", "demo"},
	}))
	ok(t, res, err)

	res, err = h.listTags(ctx, call("entlog_tags", map[string]any{"query": "DE"}))
	var tags []store.TagJSON
	require.NoError(t, json.Unmarshal([]byte(ok(t, res, err)), &tags))
	require.Len(t, tags, 1)
	demo := tags[0]

	res, err = h.renameTag(ctx, call("entlog_tag_rename", map[string]any{"id": float64(demo.ID), "name": "sample"}))
	assert.Contains(t, ok(t, res, err), "sample")

	res, err = h.getEntity(ctx, call("entlog_get", map[string]any{"id": float64(1)}))
	assert.Contains(t, ok(t, res, err), "sample")

	res, err = h.deleteTag(ctx, call("entlog_tag_delete", map[string]any{"id": float64(demo.ID)}))
	assert.Contains(t, ok(t, res, err), "sample")

	res, err = h.getEntity(ctx, call("entlog_get", map[string]any{"id": float64(1)}))
	assert.NotContains(t, ok(t, res, err), "sample")
}

func TestDeleteEntity(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()
	res, err := h.createEntity(ctx, call("entlog_create", map[string]any{
		"entity_type": "website", "name": "gone", "locator": "l",
	}))
	ok(t, res, err)

	res, err = h.deleteEntity(ctx, call("entlog_delete", map[string]any{"id": float64(1)}))
	assert.Contains(t, ok(t, res, err), "gone")

	res, err = h.deleteEntity(ctx, call("entlog_delete", map[string]any{"id": float64(1)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestParseEntityURI(t *testing.T) {
	id, err := parseEntityURI("entlog://entities/12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, uri := range []string{"entlog://entities/", "entlog://entities/x", "other://entities/1", "entlog://entities/-3"} {
		_, err := parseEntityURI(uri)
		assert.ErrorIs(t, err, ErrInvalidURI, uri)
	}
}

func TestReadEntityResource(t *testing.T) {
	h := setupHandlers(t)
	ctx := context.Background()
	res, err := h.createEntity(ctx, call("entlog_create", map[string]any{
		"entity_type": "website", "name": "res", "locator": "l",
	}))
	ok(t, res, err)

	contents, err := h.readEntityResource(ctx, "entlog://entities/1")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, isText := contents[0].(mcp.TextResourceContents)
	require.True(t, isText)
	assert.Contains(t, tc.Text, `"name": "res"`)
}
