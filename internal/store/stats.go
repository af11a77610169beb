// stats.go implements aggregate catalog queries for operational visibility.
//
// Design: These queries never load entity rows. They use COUNT() and
// MIN()/MAX() directly so they stay cheap on large catalogs.

package store

import (
	"context"
	"fmt"
)

// Stats returns aggregate catalog statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT entity_type),
		COALESCE(MIN(created_at), 0), COALESCE(MAX(updated_at), 0) FROM entities`).
		Scan(&st.Entities, &st.EntityTypes, &st.OldestEntity, &st.NewestUpdate)
	if err != nil {
		return nil, fmt.Errorf("entity stats: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&st.Tags); err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entity_tags`).Scan(&st.TagAssignments); err != nil {
		return nil, fmt.Errorf("tag assignment stats: %w", err)
	}

	return &st, nil
}
