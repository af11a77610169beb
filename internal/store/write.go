// write.go implements entity creation, replacement and deletion.
//
// Separated from the main store file to isolate mutating operations. Each
// write touches both the entity row and its tag rows, so every operation runs
// in a transaction and a reader never sees an entity with a half-written
// tag set.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// CreateEntity inserts e and its tags, assigning e.ID. Zero timestamps are
// stamped with the current time.
func (s *SQLiteStore) CreateEntity(ctx context.Context, e *Entity) error {
	attrs, err := encodeAttributes(e.Attributes)
	if err != nil {
		return err
	}
	stampEntity(e)

	return s.Tx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `INSERT INTO entities
			(entity_type, name, locator, description, image_url, attributes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.EntityType, e.Name, e.Locator, nilIfEmpty(e.Description), nilIfEmpty(e.ImageURL),
			attrs, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert entity: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert entity: %w", err)
		}
		e.ID = id
		return insertTags(ctx, tx, id, e.Tags)
	})
}

// UpdateEntity replaces every stored field of e.ID. The tag set is rewritten
// wholesale. Returns ErrNotFound when the entity does not exist.
func (s *SQLiteStore) UpdateEntity(ctx context.Context, e *Entity) error {
	attrs, err := encodeAttributes(e.Attributes)
	if err != nil {
		return err
	}
	if e.UpdatedAt == 0 {
		e.UpdatedAt = time.Now().Unix()
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE entities
			SET entity_type = ?, name = ?, locator = ?, description = ?, image_url = ?, attributes = ?, updated_at = ?
			WHERE id = ?`,
			e.EntityType, e.Name, e.Locator, nilIfEmpty(e.Description), nilIfEmpty(e.ImageURL),
			attrs, e.UpdatedAt, e.ID)
		if err != nil {
			return fmt.Errorf("update entity %d: %w", e.ID, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update entity %d: %w", e.ID, err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		// created_at is owned by storage; report the stored value back.
		if err := tx.QueryRowContext(ctx, `SELECT created_at FROM entities WHERE id = ?`, e.ID).Scan(&e.CreatedAt); err != nil {
			return fmt.Errorf("read entity %d: %w", e.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM entity_tags WHERE entity_id = ?`, e.ID); err != nil {
			return fmt.Errorf("clear tags of entity %d: %w", e.ID, err)
		}
		return insertTags(ctx, tx, e.ID, e.Tags)
	})
}

// DeleteEntity removes the entity and its tag rows, returning the entity as
// it was before deletion.
func (s *SQLiteStore) DeleteEntity(ctx context.Context, id int64) (*Entity, error) {
	var deleted *Entity
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		e, err := getEntity(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entity_tags WHERE entity_id = ?`, id); err != nil {
			return fmt.Errorf("delete tags of entity %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete entity %d: %w", id, err)
		}
		deleted = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// insertTags writes tag rows in order. Duplicate names keep their first
// position.
func insertTags(ctx context.Context, tx *sql.Tx, id int64, tags []string) error {
	for i, t := range tags {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entity_tags (entity_id, tag, position) VALUES (?, ?, ?) ON CONFLICT(entity_id, tag) DO NOTHING`,
			id, t, i)
		if err != nil {
			return fmt.Errorf("insert tag %q for entity %d: %w", t, id, err)
		}
	}
	return nil
}

// encodeAttributes serialises attributes for the attributes column.
func encodeAttributes(attrs map[string]Attribute) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encode attributes: %w", err)
	}
	return string(b), nil
}

// stampEntity fills zero timestamps with the current time.
func stampEntity(e *Entity) {
	now := time.Now().Unix()
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	if e.UpdatedAt == 0 {
		e.UpdatedAt = e.CreatedAt
	}
}

// nilIfEmpty stores optional text as NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
