package leaderboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores", "leaderboard.json")
	return NewFileStore(path, zerolog.Nop())
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	entries := []Entry{
		{PlayerName: "Al", Score: 5, TotalQuestions: 5, RecordedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)},
		{PlayerName: "Bo", Score: 3, TotalQuestions: 5, RecordedAt: time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, store.Save(ctx, entries))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := newFileStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreCorruptTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{not json"), 0o644))
	store := NewFileStore(path, zerolog.Nop())

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreWipe(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []Entry{{PlayerName: "Al", Score: 1, TotalQuestions: 1, RecordedAt: time.Now().UTC()}}))
	require.NoError(t, store.Wipe(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Wiping an already-empty store is fine.
	require.NoError(t, store.Wipe(ctx))
}
