// Package sqlite persists sync history in a local SQLite database so
// incremental runs know the last synchronized point.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // database/sql driver

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SyncStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sync_history (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	commit_sha TEXT NOT NULL,
	synced_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sync_history_project
	ON sync_history(project_id, synced_at);
`

// Store is a SQLite-backed sync history.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// LastSynced returns the most recent record for a project.
func (s *Store) LastSynced(ctx context.Context, projectID string) (domain.SyncRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, commit_sha, synced_at
		FROM sync_history
		WHERE project_id = ?
		ORDER BY synced_at DESC
		LIMIT 1`, projectID)

	var rec domain.SyncRecord
	if err := row.Scan(&rec.ID, &rec.ProjectID, &rec.CommitSHA, &rec.SyncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SyncRecord{}, domain.ErrNotFound
		}
		return domain.SyncRecord{}, fmt.Errorf("query sync history: %w", err)
	}
	return rec, nil
}

// RecordSync appends a record to the history. Missing ID and timestamp are
// filled in.
func (s *Store) RecordSync(ctx context.Context, rec domain.SyncRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SyncedAt.IsZero() {
		rec.SyncedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_history (id, project_id, commit_sha, synced_at)
		VALUES (?, ?, ?, ?)`,
		rec.ID, rec.ProjectID, rec.CommitSHA, rec.SyncedAt)
	if err != nil {
		return fmt.Errorf("insert sync record: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
