// interfaces.go defines the storage abstraction for catalog persistence.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (EntityReader,
// EntityWriter, TagRegistry, Maintainer) so consumers only depend on the
// capabilities they need.
//
// Design: Entity tags live in a join table rather than a serialised list, so
// tag cascades are indexed updates instead of substring scans. The tag
// registry is a separate table kept in sync by the catalog service; it is not
// a foreign key of the join table.

package store

import (
	"context"
	"database/sql"
)

// EntityReader defines read-only entity operations.
type EntityReader interface {
	// Entity retrieves one entity. Returns ErrNotFound when absent.
	Entity(ctx context.Context, id int64) (*Entity, error)

	// AllEntities returns every entity in storage order (ID ascending). The
	// ranker relies on this order for its stable tie-break.
	AllEntities(ctx context.Context) ([]Entity, error)

	// ListEntities returns a newest-first window (ID descending).
	ListEntities(ctx context.Context, skip, limit int) ([]Entity, error)

	// CountEntities returns the number of stored entities.
	CountEntities(ctx context.Context) (int64, error)
}

// EntityWriter defines operations that modify entities.
type EntityWriter interface {
	// CreateEntity inserts e and assigns e.ID. Zero timestamps are stamped
	// with the current time.
	CreateEntity(ctx context.Context, e *Entity) error

	// UpdateEntity replaces every stored field of e.ID, including its tag set.
	// Returns ErrNotFound when absent.
	UpdateEntity(ctx context.Context, e *Entity) error

	// DeleteEntity removes an entity and its tag assignments, returning the
	// entity as it was. Returns ErrNotFound when absent.
	DeleteEntity(ctx context.Context, id int64) (*Entity, error)
}

// TagRegistry defines operations on the tag registry and its cascades.
type TagRegistry interface {
	// Tag retrieves a tag by id. Returns ErrNotFound when absent.
	Tag(ctx context.Context, id int64) (*Tag, error)

	// TagByName retrieves a tag by exact name. Returns ErrNotFound when absent.
	TagByName(ctx context.Context, name string) (*Tag, error)

	// CreateTag registers name. Returns ErrAlreadyExists when another writer
	// registered the same name first.
	CreateTag(ctx context.Context, name string) (*Tag, error)

	// ListTags returns registry entries ordered by name. A non-empty query
	// filters by case-insensitive substring.
	ListTags(ctx context.Context, query string, skip, limit int) ([]Tag, error)

	// DistinctEntityTags returns every tag name assigned to any entity.
	DistinctEntityTags(ctx context.Context) ([]string, error)

	// RenameTag renames a tag and rewrites it in every entity tag set in one
	// transaction. When another tag already holds name, the two are merged
	// and the surviving tag is returned. The count is the number of entities
	// whose tag set changed.
	RenameTag(ctx context.Context, id int64, name string) (*Tag, int64, error)

	// DeleteTag removes a tag and strips it from every entity tag set in one
	// transaction, returning the deleted tag and the affected entity count.
	DeleteTag(ctx context.Context, id int64) (*Tag, int64, error)
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection.
	DB() *sql.DB

	// Tx runs fn inside a transaction, committing when fn returns nil.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Stats returns aggregate catalog statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Store defines the persistence interface for the catalog.
type Store interface {
	EntityReader
	EntityWriter
	TagRegistry
	Maintainer
}
