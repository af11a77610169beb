// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration, row scanning) from catalog logic. This is the only
// store file that imports the SQLite driver.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes, which matters when the HTTP
// API and the MCP server share a database. The 5-second busy timeout prevents
// "database is locked" errors without waiting forever on stuck connections.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: concurrent readers while writing. Creates -wal and -shm
	// files alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Synchronous NORMAL is safe against corruption under WAL. The only risk
	// is losing the last transaction on OS crash.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// querier is satisfied by both *sql.DB and *sql.Tx so read helpers can run
// inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// entityColumns is the column list every entity query selects, in scanEntity order.
const entityColumns = `id, entity_type, name, locator, description, image_url, attributes, created_at, updated_at`

// scanEntity extracts an Entity (without tags) from a database row. The
// attributes column is decoded into the fixed Attribute shape here, so a
// malformed column fails at the storage boundary.
func scanEntity(sc scanner) (Entity, error) {
	var e Entity
	var desc, img sql.NullString
	var attrs string

	err := sc.Scan(&e.ID, &e.EntityType, &e.Name, &e.Locator, &desc, &img, &attrs, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	e.Description = desc.String
	e.ImageURL = img.String

	e.Attributes = map[string]Attribute{}
	if attrs != "" {
		if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
			return e, fmt.Errorf("decode attributes of entity %d: %w", e.ID, err)
		}
	}
	return e, nil
}

// scanEntityRows iterates over query results, collecting entities into a slice.
func scanEntityRows(rows *sql.Rows) ([]Entity, error) {
	var out []Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// getEntity loads one entity including its tags.
func getEntity(ctx context.Context, q querier, id int64) (*Entity, error) {
	e, err := scanEntity(q.QueryRowContext(ctx, `SELECT `+entityColumns+` FROM entities WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entity %d: %w", id, err)
	}
	tags, err := loadTags(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	e.Tags = tags[id]
	return &e, nil
}

// loadTags returns tag lists keyed by entity id, each in position order.
// A nil ids slice loads the whole join table.
func loadTags(ctx context.Context, q querier, ids []int64) (map[int64][]string, error) {
	query := `SELECT entity_id, tag FROM entity_tags`
	var args []any
	if ids != nil {
		if len(ids) == 0 {
			return map[int64][]string{}, nil
		}
		query += ` WHERE entity_id IN (` + placeholders(len(ids)) + `)`
		for _, id := range ids {
			args = append(args, id)
		}
	}
	query += ` ORDER BY entity_id, position`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out[id] = append(out[id], tag)
	}
	return out, rows.Err()
}

// attachTags fills in Tags for each entity from a loadTags result.
func attachTags(entities []Entity, tags map[int64][]string) {
	for i := range entities {
		entities[i].Tags = tags[entities[i].ID]
	}
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back;
// otherwise it is committed. Rollback is deferred to handle panics and early
// returns.
//
// For functions that need to return values, use a closure variable:
//
//	var count int64
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    result, err := tx.ExecContext(ctx, `DELETE ...`)
//	    if err != nil {
//	        return err
//	    }
//	    count, _ = result.RowsAffected()
//	    return nil
//	})
//	return count, err
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
