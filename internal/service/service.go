// Package service defines the shared interface for catalog operations.
// Commands, the HTTP API, MCP tools and extensions depend on this interface
// rather than on the concrete catalog, so each can be tested with a stub.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/store"
)

// Service defines all catalog operations.
//
// Use catalog.New() to obtain an implementation, and always Close it:
//
//	svc, err := catalog.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	results, err := svc.Search(ctx, search.Query{Text: "demo", Limit: 10})
type Service interface {
	// Close checkpoints the WAL and releases database resources.
	Close() error

	// CreateEntity validates and stores a new entity, stamps its attributes
	// and registers its tags. Returns an error wrapping a validate sentinel
	// for malformed input.
	CreateEntity(ctx context.Context, in store.EntityInput) (*store.Entity, error)

	// Entity returns one entity. Returns store.ErrNotFound when absent.
	Entity(ctx context.Context, id int64) (*store.Entity, error)

	// UpdateEntity replaces every top-level field of id and merges
	// attributes: keys missing from in are dropped, surviving keys keep
	// their created_at. Returns store.ErrNotFound when absent.
	UpdateEntity(ctx context.Context, id int64, in store.EntityInput) (*store.Entity, error)

	// DeleteEntity removes an entity and returns it as it was.
	// Returns store.ErrNotFound when absent.
	DeleteEntity(ctx context.Context, id int64) (*store.Entity, error)

	// ListEntities returns a newest-first window of entities.
	ListEntities(ctx context.Context, skip, limit int) ([]store.Entity, error)

	// AllEntities returns every entity in storage order.
	AllEntities(ctx context.Context) ([]store.Entity, error)

	// Search ranks every entity against q. Rejects unknown scopes and
	// negative windows.
	Search(ctx context.Context, q search.Query) ([]search.Result, error)

	// SyncTags ensures a registry entry exists for every name. It never
	// fails: conflicts are expected and other errors go to the audit log.
	SyncTags(ctx context.Context, names []string)

	// ListTags returns registry entries ordered by name, optionally filtered
	// by case-insensitive substring.
	ListTags(ctx context.Context, query string, skip, limit int) ([]store.Tag, error)

	// RenameTag renames a tag and rewrites it in every entity. Renaming onto
	// an existing name merges the two tags. Returns store.ErrNotFound when
	// the tag is absent.
	RenameTag(ctx context.Context, id int64, name string) (*store.Tag, error)

	// DeleteTag removes a tag and strips it from every entity, returning the
	// deleted tag. Returns store.ErrNotFound when absent.
	DeleteTag(ctx context.Context, id int64) (*store.Tag, error)

	// ReconcileTags registers every tag present on an entity but missing
	// from the registry, returning how many were created.
	ReconcileTags(ctx context.Context) (int, error)

	// Stats returns aggregate catalog statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// Config returns the configuration the service was built with.
	Config() *config.Config

	// MediaDir returns the absolute directory for uploaded and fetched media.
	MediaDir() string

	// DB exposes the underlying connection for extensions.
	DB() *sql.DB
}
