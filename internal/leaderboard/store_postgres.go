package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the history in a single table. Rank position is an
// explicit column so tie order written by the service survives reloads.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store. The leaderboard_entries
// table is created by the migrator (db/migrations).
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Load(ctx context.Context) ([]Entry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT player_name, score, total_questions, recorded_at
		 FROM leaderboard_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query entries: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerName, &e.Score, &e.TotalQuestions, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", ErrUnavailable, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read entries: %v", ErrUnavailable, err)
	}
	return entries, nil
}

// Save replaces the stored list wholesale inside one transaction; the list
// is bounded so this stays cheap.
func (p *PostgresStore) Save(ctx context.Context, entries []Entry) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", ErrUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return fmt.Errorf("%w: clear entries: %v", ErrUnavailable, err)
	}
	for i, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO leaderboard_entries (position, player_name, score, total_questions, recorded_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			i, e.PlayerName, e.Score, e.TotalQuestions, e.RecordedAt); err != nil {
			return fmt.Errorf("%w: insert entry %d: %v", ErrUnavailable, i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrUnavailable, err)
	}
	return nil
}

func (p *PostgresStore) Wipe(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return fmt.Errorf("%w: wipe entries: %v", ErrUnavailable, err)
	}
	return nil
}
