package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trademind/journal/internal/config"
)

type DB struct {
	pool *pgxpool.Pool
}

func NewDB(cfg *config.Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.DatabaseMaxConns
	poolConfig.MinConns = cfg.DatabaseMinConns
	poolConfig.MaxConnLifetime = cfg.DatabaseMaxConnLife
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Close() {
	db.pool.Close()
}

func (db *DB) HealthCheck(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Stats() *pgxpool.Stat {
	return db.pool.Stat()
}

// EnsureSchema bootstraps the two tables on startup. Trade dates are TEXT
// in ISO form so the inclusive range filters can rely on lexicographic
// comparison, the same rule the pure filter uses.
func (db *DB) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS trades (
		id             UUID PRIMARY KEY,
		user_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date           TEXT NOT NULL,
		instrument     TEXT NOT NULL,
		direction      TEXT NOT NULL,
		outcome        TEXT NOT NULL,
		pnl            NUMERIC NOT NULL,
		entry_price    NUMERIC,
		exit_price     NUMERIC,
		setup          TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT '',
		screenshot_url TEXT NOT NULL DEFAULT '',
		ai_analysis    TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_user_created ON trades (user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_trades_user_date ON trades (user_id, date);
	`

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
