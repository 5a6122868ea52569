package leaderboard

import (
	"context"
	"errors"
)

// ErrUnavailable marks a storage medium that cannot be read or written.
// Callers report it once and move on; session state is never affected.
var ErrUnavailable = errors.New("leaderboard storage unavailable")

// Store persists the raw ranked list. Implementations treat corrupt data as
// absent and return an empty list; ErrUnavailable is reserved for a medium
// that cannot be reached at all.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Wipe(ctx context.Context) error
}
