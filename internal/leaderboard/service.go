package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Service maintains the bounded, score-ordered history on top of a Store.
// Ranking lives here so every backend stays a dumb list.
type Service struct {
	store  Store
	logger zerolog.Logger
	max    int
}

// NewService constructs a leaderboard service instance.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "leaderboard").Logger(),
		max:    MaxEntries,
	}
}

// Append merges entry into the stored history: score descending, stable on
// ties so earlier saves keep their position, truncated to MaxEntries. An
// unreadable history degrades to empty; a failed write is returned to the
// caller and not retried.
func (s *Service) Append(ctx context.Context, entry Entry) error {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history unreadable, starting from empty")
		entries = nil
	}

	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > s.max {
		entries = entries[:s.max]
	}

	if err := s.store.Save(ctx, entries); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}

// ReadAll returns the stored ranking, or an empty list when the history is
// absent, corrupt, or unreachable.
func (s *Service) ReadAll(ctx context.Context) []Entry {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history unreadable, returning empty")
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	return entries
}

// Clear removes all stored entries. The confirmation prompt belongs to the
// presentation layer, not here.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Wipe(ctx); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	return nil
}
