package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store with fault injection.
type memoryStore struct {
	entries  []Entry
	failLoad bool
	failSave bool
}

func (m *memoryStore) Load(ctx context.Context) ([]Entry, error) {
	if m.failLoad {
		return nil, ErrUnavailable
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *memoryStore) Save(ctx context.Context, entries []Entry) error {
	if m.failSave {
		return ErrUnavailable
	}
	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
	return nil
}

func (m *memoryStore) Wipe(ctx context.Context) error {
	if m.failSave {
		return ErrUnavailable
	}
	m.entries = nil
	return nil
}

func entryAt(name string, score int) Entry {
	return Entry{
		PlayerName:     name,
		Score:          score,
		TotalQuestions: 10,
		RecordedAt:     time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}

func TestAppendSingleRoundTrip(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()

	saved := Entry{PlayerName: "Al", Score: 5, TotalQuestions: 5, RecordedAt: time.Now().UTC()}
	require.NoError(t, svc.Append(ctx, saved))

	got := svc.ReadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, saved, got[0])
	assert.False(t, got[0].RecordedAt.IsZero())
}

func TestAppendKeepsTopTenScoreDescending(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()

	scores := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
	for i, score := range scores {
		require.NoError(t, svc.Append(ctx, entryAt(names[i], score)))
	}

	got := svc.ReadAll(ctx)
	require.Len(t, got, MaxEntries)

	wantNames := []string{"F", "H", "E", "I", "K", "C", "A", "J", "G", "B"}
	wantScores := []int{9, 6, 5, 5, 5, 4, 3, 3, 2, 1}
	for i := range got {
		assert.Equal(t, wantNames[i], got[i].PlayerName, "rank %d", i+1)
		assert.Equal(t, wantScores[i], got[i].Score, "rank %d", i+1)
	}
}

func TestAppendTiesKeepInsertionOrder(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, entryAt("first", 7)))
	require.NoError(t, svc.Append(ctx, entryAt("second", 7)))
	require.NoError(t, svc.Append(ctx, entryAt("third", 7)))

	got := svc.ReadAll(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].PlayerName)
	assert.Equal(t, "second", got[1].PlayerName)
	assert.Equal(t, "third", got[2].PlayerName)
}

func TestAppendWithUnreadableHistoryStartsFresh(t *testing.T) {
	store := &memoryStore{failLoad: true}
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, entryAt("Al", 3)))

	store.failLoad = false
	got := svc.ReadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Al", got[0].PlayerName)
}

func TestAppendReportsWriteFailure(t *testing.T) {
	store := &memoryStore{failSave: true}
	svc := NewService(store, zerolog.Nop())

	err := svc.Append(context.Background(), entryAt("Al", 3))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReadAllDegradesToEmpty(t *testing.T) {
	store := &memoryStore{failLoad: true}
	svc := NewService(store, zerolog.Nop())

	got := svc.ReadAll(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClear(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, entryAt("Al", 3)))
	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, svc.ReadAll(ctx))
}

func TestClearReportsFailure(t *testing.T) {
	store := &memoryStore{failSave: true}
	svc := NewService(store, zerolog.Nop())

	assert.ErrorIs(t, svc.Clear(context.Background()), ErrUnavailable)
}
