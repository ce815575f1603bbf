package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const createSessionTable = `
	CREATE TABLE IF NOT EXISTS storefront_sessions (
		session_key TEXT PRIMARY KEY,
		payload     JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// postgresStore implements Store on a row of the storefront_sessions table.
type postgresStore struct {
	pool   *pgxpool.Pool
	key    string
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed session store.
func NewPostgresStore(pool *pgxpool.Pool, key string, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		key:    key,
		logger: logger.With().Str("component", "session-postgres").Logger(),
	}
}

// EnsureSchema creates the sessions table when it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createSessionTable); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}
	return nil
}

// Load reads the session row.
func (s *postgresStore) Load(ctx context.Context) (State, error) {
	query := `
		SELECT payload
		FROM storefront_sessions
		WHERE session_key = $1
	`

	var payload []byte
	err := s.pool.QueryRow(ctx, query, s.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Str("session_key", s.key).Msg("no stored session")
			return State{}, nil
		}
		s.logger.Error().Err(err).Str("session_key", s.key).Msg("failed to query session")
		return State{}, fmt.Errorf("failed to query session: %w", err)
	}

	return Decode(payload)
}

// Save upserts the session row.
func (s *postgresStore) Save(ctx context.Context, state State) error {
	payload, err := Encode(state)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO storefront_sessions (session_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.pool.Exec(ctx, query, s.key, payload); err != nil {
		s.logger.Error().Err(err).Str("session_key", s.key).Msg("failed to save session")
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear deletes the session row.
func (s *postgresStore) Clear(ctx context.Context) error {
	query := `DELETE FROM storefront_sessions WHERE session_key = $1`

	if _, err := s.pool.Exec(ctx, query, s.key); err != nil {
		s.logger.Error().Err(err).Str("session_key", s.key).Msg("failed to clear session")
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}
