// tags.go implements the tag registry and its cascades into entity tag sets.
//
// Separated from write.go because registry tags have their own lifecycle:
// they are created lazily when first seen on an entity, and renaming or
// deleting one rewrites every entity that references it.
//
// Design: The registry (tags) and the assignments (entity_tags) are joined
// by name, not by id. A cascade is therefore a handful of indexed UPDATE and
// DELETE statements over entity_tags, run in one transaction together with
// the registry change.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Tag returns a registry entry by id.
func (s *SQLiteStore) Tag(ctx context.Context, id int64) (*Tag, error) {
	return getTag(ctx, s.db, `SELECT id, name, created_at FROM tags WHERE id = ?`, id)
}

// TagByName returns a registry entry by exact name.
func (s *SQLiteStore) TagByName(ctx context.Context, name string) (*Tag, error) {
	return getTag(ctx, s.db, `SELECT id, name, created_at FROM tags WHERE name = ?`, name)
}

// CreateTag registers a name. ON CONFLICT DO NOTHING turns a concurrent
// insert of the same name into ErrAlreadyExists instead of a driver error.
func (s *SQLiteStore) CreateTag(ctx context.Context, name string) (*Tag, error) {
	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`, name, now)
	if err != nil {
		return nil, fmt.Errorf("create tag %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("create tag %q: %w", name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("tag %q: %w", name, ErrAlreadyExists)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create tag %q: %w", name, err)
	}
	return &Tag{ID: id, Name: name, CreatedAt: now}, nil
}

// ListTags returns registry entries ordered by name. A non-empty query keeps
// names containing it, ignoring ASCII case. A negative limit means no limit.
func (s *SQLiteStore) ListTags(ctx context.Context, query string, skip, limit int) ([]Tag, error) {
	if limit == 0 {
		return nil, nil
	}
	q := `SELECT id, name, created_at FROM tags`
	var args []any
	if query != "" {
		q += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(query)+"%")
	}
	q += ` ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, skip)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// DistinctEntityTags returns every tag name assigned to at least one entity.
func (s *SQLiteStore) DistinctEntityTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tag FROM entity_tags ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("list entity tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// RenameTag renames tag id to name and rewrites every entity tag set holding
// the old name. If an entity already carries name, the two collapse into one
// entry at the earlier position. If the registry already holds name, the
// renamed tag record is dropped and the existing one returned.
func (s *SQLiteStore) RenameTag(ctx context.Context, id int64, name string) (*Tag, int64, error) {
	var result *Tag
	var affected int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		t, err := getTag(ctx, tx, `SELECT id, name, created_at FROM tags WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if t.Name == name {
			result = t
			return nil
		}
		old := t.Name

		existing, err := getTag(ctx, tx, `SELECT id, name, created_at FROM tags WHERE name = ?`, name)
		switch {
		case errors.Is(err, ErrNotFound):
			if _, err := tx.ExecContext(ctx, `UPDATE tags SET name = ? WHERE id = ?`, name, id); err != nil {
				return fmt.Errorf("rename tag %d: %w", id, err)
			}
			t.Name = name
			result = t
		case err != nil:
			return err
		default:
			if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
				return fmt.Errorf("merge tag %d into %d: %w", id, existing.ID, err)
			}
			result = existing
		}

		affected, err = touchEntitiesWithTag(ctx, tx, old)
		if err != nil {
			return err
		}

		// Entities holding both names keep one entry at the earlier position.
		if _, err := tx.ExecContext(ctx, `
			UPDATE entity_tags SET position = MIN(position, (
				SELECT o.position FROM entity_tags o
				WHERE o.entity_id = entity_tags.entity_id AND o.tag = ?))
			WHERE tag = ? AND entity_id IN (SELECT entity_id FROM entity_tags WHERE tag = ?)`,
			old, name, old); err != nil {
			return fmt.Errorf("rename tag %q: %w", old, err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM entity_tags
			WHERE tag = ? AND entity_id IN (SELECT entity_id FROM entity_tags WHERE tag = ?)`,
			old, name); err != nil {
			return fmt.Errorf("rename tag %q: %w", old, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE entity_tags SET tag = ? WHERE tag = ?`, name, old); err != nil {
			return fmt.Errorf("rename tag %q: %w", old, err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result, affected, nil
}

// DeleteTag removes a registry entry and strips its name from every entity.
func (s *SQLiteStore) DeleteTag(ctx context.Context, id int64) (*Tag, int64, error) {
	var deleted *Tag
	var affected int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		t, err := getTag(ctx, tx, `SELECT id, name, created_at FROM tags WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = touchEntitiesWithTag(ctx, tx, t.Name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entity_tags WHERE tag = ?`, t.Name); err != nil {
			return fmt.Errorf("strip tag %q: %w", t.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete tag %d: %w", id, err)
		}
		deleted = t
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return deleted, affected, nil
}

// touchEntitiesWithTag bumps updated_at on every entity carrying name and
// returns how many there were.
func touchEntitiesWithTag(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	result, err := tx.ExecContext(ctx,
		`UPDATE entities SET updated_at = ? WHERE id IN (SELECT entity_id FROM entity_tags WHERE tag = ?)`,
		time.Now().Unix(), name)
	if err != nil {
		return 0, fmt.Errorf("touch entities tagged %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("touch entities tagged %q: %w", name, err)
	}
	return n, nil
}

// getTag runs a single-row tag query, mapping no rows to ErrNotFound.
func getTag(ctx context.Context, q querier, query string, arg any) (*Tag, error) {
	var t Tag
	err := q.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

// escapeLike escapes LIKE wildcards so a query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
