package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/run-expectancy/internal/config"
)

// ResultsTable stores one row per (run, occupancy, outs) cell.
const ResultsTable = "run_expectancy_results"

// SchemaStatements create the results table and its lookup index.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS run_expectancy_results (
		id         UUID PRIMARY KEY,
		run_id     UUID NOT NULL,
		player     TEXT NOT NULL,
		occupancy  SMALLINT NOT NULL CHECK (occupancy BETWEEN 0 AND 7),
		outs       SMALLINT NOT NULL CHECK (outs BETWEEN 0 AND 2),
		mean       DOUBLE PRECISION NOT NULL,
		variance   DOUBLE PRECISION NOT NULL,
		trials     INTEGER NOT NULL,
		seed       BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (run_id, occupancy, outs)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_expectancy_results_player_created
		ON run_expectancy_results (player, created_at DESC)`,
}

// Execer runs statements that return no rows.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates the results table when it does not exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range SchemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Initialize connects to the database and makes sure the results table
// exists.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, db.pool); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
