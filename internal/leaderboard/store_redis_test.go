package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, zerolog.Nop()), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
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

func TestRedisStoreLoadMissing(t *testing.T) {
	store, _ := newRedisStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreCorruptTreatedAsEmpty(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(redisKey, "{{{not json"))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreWipe(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []Entry{{PlayerName: "Al", Score: 1, TotalQuestions: 1, RecordedAt: time.Now().UTC()}}))
	require.NoError(t, store.Wipe(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, store.Save(context.Background(), nil), ErrUnavailable)
}
