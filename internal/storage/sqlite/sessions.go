package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
)

// SessionRepo keeps one row per session key holding the JSON-encoded transcript.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Load(ctx context.Context, key string) (core.Transcript, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT history FROM sessions WHERE session_key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return core.NewTranscript(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	var history core.Transcript
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("session", key).Int("count", len(history)).Msg("loaded session history")
	return history, nil
}

func (r *SessionRepo) Save(ctx context.Context, key string, transcript core.Transcript) error {
	if transcript == nil {
		transcript = core.Transcript{}
	}
	raw, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	query := `
		INSERT INTO sessions (session_key, history, turn_count)
		VALUES (?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET
			history = excluded.history,
			turn_count = excluded.turn_count,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, key, string(raw), len(transcript)); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}
