package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps collections in a single key/value table. The storage model
// stays one serialized blob per key, so a relational schema per entity would
// change the documented write semantics.
type Postgres struct {
	pool *pgxpool.Pool
}

const createCollectionsTable = `
CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// NewPostgres connects, ensures the collections table exists and returns a
// Postgres-backed store.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("store: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("store: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	if _, err := pool.Exec(ctx, createCollectionsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ensure collections table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Load returns the value stored under key, or ErrAbsent.
func (s *Postgres) Load(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM collections WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrAbsent
	}
	if err != nil {
		return "", fmt.Errorf("store: load %s: %w", key, err)
	}
	return value, nil
}

// Save upserts the value under key.
func (s *Postgres) Save(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO collections (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *Postgres) Close() {
	s.pool.Close()
}
