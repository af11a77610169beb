// Package mcp implements the Model Context Protocol server, exposing the
// entity catalog to LLMs. Assistants can record, look up, search and retag
// entities through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/repo"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the catalog has not been
// initialised. The LLM should call entlog_init first.
const ErrNotInitialised = "store not initialised - call entlog_init first"

// Serve starts the MCP server over stdio.
//
// Design: The server starts even if no catalog exists so an LLM can call
// entlog_init instead of failing with an opaque error. Tools that need the
// catalog return ErrNotInitialised until then.
func Serve(db string) error {
	// stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}

	svc, err := catalog.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open catalog", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
	} else {
		slog.Info("entlog not initialised, starting in uninitialised mode - call entlog_init to create catalog")
	}
	defer h.close()

	s := NewServer(h)
	slog.Info("entlog MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every resource and tool registered.
func NewServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"entlog",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the catalog.
// svc is nil until the catalog has been initialised.
type handlers struct {
	db  string
	svc service.Service
}

// requireInit returns an error result if the catalog is not initialised.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

func (h *handlers) close() {
	if h.svc != nil {
		h.svc.Close()
	}
}

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"entlog://entities/{id}",
			"Entity",
			mcp.WithTemplateDescription("Read an entity as JSON by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readEntity,
	)
}

// entityFields are the optional entity properties shared by create and update.
func entityFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("description", mcp.Description("Free text description")),
		mcp.WithString("image_url", mcp.Description("Image or media URL")),
		mcp.WithArray("tags", mcp.Description("Tag names"), mcp.WithStringItems()),
		mcp.WithObject("attributes", mcp.Description(`Attributes keyed by name: {"port": {"description": "8080", "remarks": "", "url": "", "active": true}}`)),
	}
}

func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without an existing catalog
	s.AddTool(
		mcp.NewTool("entlog_init",
			mcp.WithDescription("Initialise a new entlog catalog. Call this first if other tools return 'store not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initStore,
	)

	create := append([]mcp.ToolOption{
		mcp.WithDescription("Record a new entity (website, service, device, ...). Tags are registered automatically."),
		mcp.WithString("entity_type", mcp.Required(), mcp.Description("Classification label, e.g. website")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		mcp.WithString("locator", mcp.Required(), mcp.Description("URL, address or other external reference")),
	}, entityFields()...)
	s.AddTool(mcp.NewTool("entlog_create", create...), h.createEntity)

	s.AddTool(
		mcp.NewTool("entlog_get",
			mcp.WithDescription("Get an entity by id"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Entity id")),
		),
		h.getEntity,
	)

	update := append([]mcp.ToolOption{
		mcp.WithDescription("Update an entity. Omitted fields keep their current values; attributes, when given, replace the whole set."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Entity id")),
		mcp.WithString("entity_type", mcp.Description("Classification label")),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithString("locator", mcp.Description("External reference")),
	}, entityFields()...)
	s.AddTool(mcp.NewTool("entlog_update", update...), h.updateEntity)

	s.AddTool(
		mcp.NewTool("entlog_delete",
			mcp.WithDescription("Permanently delete an entity"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Entity id")),
		),
		h.deleteEntity,
	)

	s.AddTool(
		mcp.NewTool("entlog_list",
			mcp.WithDescription("List entities, newest first"),
			mcp.WithNumber("skip", mcp.Description("Results to skip")),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default from config)")),
		),
		h.listEntities,
	)

	s.AddTool(
		mcp.NewTool("entlog_search",
			mcp.WithDescription("Fuzzy search entities. Results are ranked by score (0-100); only scores above 60 are returned."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
			mcp.WithString("field", mcp.Description("Field to search"),
				mcp.Enum("all", "name", "description", "tags", "locator", "entity_type")),
			mcp.WithBoolean("exact_match", mcp.Description("With field=tags, return only entities holding exactly this tag")),
			mcp.WithNumber("skip", mcp.Description("Results to skip")),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default from config)")),
		),
		h.searchEntities,
	)

	s.AddTool(
		mcp.NewTool("entlog_tags",
			mcp.WithDescription("List registered tags by name"),
			mcp.WithString("query", mcp.Description("Case-insensitive substring filter")),
			mcp.WithNumber("skip", mcp.Description("Results to skip")),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default from config)")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("entlog_tag_rename",
			mcp.WithDescription("Rename a tag everywhere it is used. Renaming onto an existing tag merges the two."),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Tag id")),
			mcp.WithString("name", mcp.Required(), mcp.Description("New tag name")),
		),
		h.renameTag,
	)

	s.AddTool(
		mcp.NewTool("entlog_tag_delete",
			mcp.WithDescription("Delete a tag and remove it from every entity"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Tag id")),
		),
		h.deleteTag,
	)

	s.AddTool(
		mcp.NewTool("entlog_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. search.default_limit) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("entlog_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}

// registerExtensionTools adds tools contributed by CLI extensions. Each call
// gets an extension context over the current catalog.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if err := h.requireInit(); err != nil {
				return err, nil
			}
			extCtx := extension.NewContext(h.svc, h.svc.DB(), h.svc.Config())
			return handler(ctx, extCtx, req)
		})
	}
}

// readEntity handles entlog://entities/{id} resource requests.
func (h *handlers) readEntity(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readEntityResource(ctx, req.Params.URI)
}
