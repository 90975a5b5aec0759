package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore keeps documents in the kv_store table (see db/ migrations).
type pgStore struct {
	db *pgxpool.Pool
}

// newPGStore creates a connection pool. We use a pool (not a single conn) because
// managed Postgres providers close idle connections after a few minutes.
func newPGStore(ctx context.Context, dbURL string) (*pgStore, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" errors
	// from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &pgStore{db: pool}, nil
}

func (s *pgStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx,
		"SELECT value FROM kv_store WHERE key = @key",
		pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *pgStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at)
		 VALUES (@key, @value::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		pgx.NamedArgs{"key": key, "value": string(value)})
	return err
}

func (s *pgStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM kv_store WHERE key = @key",
		pgx.NamedArgs{"key": key})
	return err
}

func (s *pgStore) Close() error {
	s.db.Close()
	return nil
}
