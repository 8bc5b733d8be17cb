// Package postgres persists session transcripts in PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
	"github.com/sandevgo/motivate/pkg/retry"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	return NewStoreWithRetrier(ctx, databaseURL, retry.NewDefaultRetrier())
}

// NewStoreWithRetrier connects and waits for the database to accept pings before
// creating the schema.
func NewStoreWithRetrier(ctx context.Context, databaseURL string, r *retry.Retrier) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	err = r.Do(ctx, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("postgres not ready")
			return err
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS motivate_sessions (
			session_key TEXT PRIMARY KEY,
			history JSONB NOT NULL,
			turn_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) (core.Transcript, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT history FROM motivate_sessions WHERE session_key = $1`, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.NewTranscript(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	var history core.Transcript
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return history, nil
}

func (s *Store) Save(ctx context.Context, key string, transcript core.Transcript) error {
	if transcript == nil {
		transcript = core.Transcript{}
	}
	raw, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO motivate_sessions (session_key, history, turn_count)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_key) DO UPDATE SET
			history = EXCLUDED.history,
			turn_count = EXCLUDED.turn_count,
			updated_at = now()`,
		key, string(raw), len(transcript),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
