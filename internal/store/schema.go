// schema.go applies the catalog schema. Each table lives in its own file under
// sql/ and files run in name order, so 002_entity_tags.sql can reference
// entities. Every statement uses IF NOT EXISTS; opening an existing catalog
// re-runs them harmlessly.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"slices"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

var (
	// ErrNotFound indicates the requested entity or tag does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a tag-name collision in the registry.
	ErrAlreadyExists = errors.New("already exists")
)

// execSchema creates the entities, entity_tags and tags tables.
func execSchema(db *sql.DB) error {
	names, err := schemaFiles.ReadDir("sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	files := make([]string, 0, len(names))
	for _, n := range names {
		if !n.IsDir() {
			files = append(files, n.Name())
		}
	}
	slices.Sort(files)

	for _, name := range files {
		stmt, err := schemaFiles.ReadFile(path.Join("sql", name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
	}
	return nil
}
