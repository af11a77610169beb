// read.go implements entity retrieval operations for the SQLite store.
//
// Separated from the main store file to isolate read-only query logic. These
// operations never modify data.
//
// Design: Entity rows and tag rows are fetched in two queries and stitched
// together in Go. The join table is ordered by (entity_id, position), so one
// pass over it rebuilds every tag list in caller order.

package store

import (
	"context"
	"fmt"
)

// Entity returns one entity with its tags.
func (s *SQLiteStore) Entity(ctx context.Context, id int64) (*Entity, error) {
	return getEntity(ctx, s.db, id)
}

// AllEntities returns every entity ordered by ID ascending. This is the
// storage order the ranker uses as its tie-break.
func (s *SQLiteStore) AllEntities(ctx context.Context) ([]Entity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entityColumns+` FROM entities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	entities, err := scanEntityRows(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	tags, err := loadTags(ctx, s.db, nil)
	if err != nil {
		return nil, err
	}
	attachTags(entities, tags)
	return entities, nil
}

// ListEntities returns a newest-first window of entities. A negative limit
// means no limit.
func (s *SQLiteStore) ListEntities(ctx context.Context, skip, limit int) ([]Entity, error) {
	if limit == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entityColumns+` FROM entities ORDER BY id DESC LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	entities, err := scanEntityRows(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}
	tags, err := loadTags(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	attachTags(entities, tags)
	return entities, nil
}

// CountEntities returns the number of stored entities.
func (s *SQLiteStore) CountEntities(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entities: %w", err)
	}
	return n, nil
}
