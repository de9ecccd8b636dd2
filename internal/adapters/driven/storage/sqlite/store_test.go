package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclane/doclane-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLastSynced_NoHistory(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LastSynced(context.Background(), "proj-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordAndLastSynced(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSync(ctx, domain.SyncRecord{
		ProjectID: "proj-1",
		CommitSHA: "aaa111",
	}))

	rec, err := store.LastSynced(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "proj-1", rec.ProjectID)
	assert.Equal(t, "aaa111", rec.CommitSHA)
	assert.NotEmpty(t, rec.ID, "missing ID is filled in")
	assert.False(t, rec.SyncedAt.IsZero())
}

func TestLastSynced_ReturnsLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, sha := range []string{"old", "mid", "new"} {
		require.NoError(t, store.RecordSync(ctx, domain.SyncRecord{
			ProjectID: "proj-1",
			CommitSHA: sha,
			SyncedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	rec, err := store.LastSynced(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.CommitSHA)
}

func TestLastSynced_ScopedByProject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSync(ctx, domain.SyncRecord{ProjectID: "a", CommitSHA: "sha-a"}))
	require.NoError(t, store.RecordSync(ctx, domain.SyncRecord{ProjectID: "b", CommitSHA: "sha-b"}))

	rec, err := store.LastSynced(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "sha-a", rec.CommitSHA)

	_, err = store.LastSynced(ctx, "c")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordSync(ctx, domain.SyncRecord{ProjectID: "p", CommitSHA: "s"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	rec, err := reopened.LastSynced(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "s", rec.CommitSHA)
}
