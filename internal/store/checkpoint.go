// checkpoint.go flushes the write-ahead log on shutdown.
//
// The catalog runs behind long-lived servers (HTTP API, MCP) as well as
// one-shot CLI commands. TRUNCATE mode folds the WAL back into the main file
// and removes the -wal/-shm files, so a copied or exported database file is
// always complete after Close.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL frames into the database file and truncates the WAL.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
