package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/run-expectancy/internal/models"
)

// RunExpectancyRepository defines the interface for result data access
type RunExpectancyRepository interface {
	InsertBatch(ctx context.Context, cells []*models.RunExpectancyCell) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.RunExpectancyCell, error)
	GetLatestByPlayer(ctx context.Context, player string) ([]*models.RunExpectancyCell, error)
}

// Pool is the subset of *pgxpool.Pool the repositories use.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}
