// context.go defines the Context extensions use to reach the open catalog.
//
// Extensions receive Context in Init and in MCP handlers, never at
// construction: they register in init() before any catalog exists.

package extension

import (
	"database/sql"

	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/service"
)

// Context provides extensions controlled access to entlog internals.
type Context interface {
	// Service returns the catalog service.
	Service() service.Service

	// DB exposes the database for extensions needing their own tables.
	// Core tables (entities, tags, entity_tags) belong to the store.
	DB() *sql.DB

	// Config returns the loaded configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{svc: svc, db: db, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }
func (c *extContext) DB() *sql.DB               { return c.db }
func (c *extContext) Config() *config.Config     { return c.cfg }
