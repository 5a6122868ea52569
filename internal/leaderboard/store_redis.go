package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const redisKey = "quiz:leaderboard"

// RedisStore keeps the history as a JSON blob under a single key. The list
// is tiny (at most MaxEntries), so a blob beats a sorted set here: stable
// tie order survives a round trip for free.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger.With().Str("component", "leaderboard_redis").Logger(),
	}
}

func (r *RedisStore) Load(ctx context.Context) ([]Entry, error) {
	data, err := r.client.Get(ctx, redisKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, redisKey, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Warn().Err(err).Str("key", redisKey).Msg("corrupt history, treating as empty")
		return nil, nil
	}
	return entries, nil
}

func (r *RedisStore) Save(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := r.client.Set(ctx, redisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, redisKey, err)
	}
	return nil
}

func (r *RedisStore) Wipe(ctx context.Context) error {
	if err := r.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrUnavailable, redisKey, err)
	}
	return nil
}
