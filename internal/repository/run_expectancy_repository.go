package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/run-expectancy/internal/database"
	"github.com/yourusername/run-expectancy/internal/experiment"
	"github.com/yourusername/run-expectancy/internal/models"
)

var resultColumns = []string{"id", "run_id", "player", "occupancy", "outs", "mean", "variance", "trials", "seed", "created_at"}

// PostgresRunExpectancyRepository implements RunExpectancyRepository for PostgreSQL
type PostgresRunExpectancyRepository struct {
	pool Pool
}

// NewPostgresRunExpectancyRepository creates a new result repository
func NewPostgresRunExpectancyRepository(pool Pool) RunExpectancyRepository {
	return &PostgresRunExpectancyRepository{pool: pool}
}

// InsertBatch inserts result cells with COPY
func (r *PostgresRunExpectancyRepository) InsertBatch(ctx context.Context, cells []*models.RunExpectancyCell) error {
	if len(cells) == 0 {
		return nil
	}

	rows := make([][]any, len(cells))
	for i, c := range cells {
		rows[i] = []any{c.ID, c.RunID, c.Player, c.Occupancy, c.Outs, c.Mean, c.Variance, c.Trials, c.Seed, c.CreatedAt}
	}

	count, err := r.pool.CopyFrom(ctx, pgx.Identifier{database.ResultsTable}, resultColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to insert result cells: %w", err)
	}
	if count != int64(len(cells)) {
		return fmt.Errorf("expected to insert %d result cells, inserted %d", len(cells), count)
	}
	return nil
}

// GetByRunID retrieves every cell of one run ordered by state
func (r *PostgresRunExpectancyRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.RunExpectancyCell, error) {
	query := `
		SELECT id, run_id, player, occupancy, outs, mean, variance, trials, seed, created_at
		FROM run_expectancy_results
		WHERE run_id = $1
		ORDER BY occupancy, outs
	`
	return r.query(ctx, query, runID)
}

// GetLatestByPlayer retrieves the cells of the most recent run for player
func (r *PostgresRunExpectancyRepository) GetLatestByPlayer(ctx context.Context, player string) ([]*models.RunExpectancyCell, error) {
	query := `
		SELECT id, run_id, player, occupancy, outs, mean, variance, trials, seed, created_at
		FROM run_expectancy_results
		WHERE run_id = (
			SELECT run_id FROM run_expectancy_results
			WHERE player = $1
			ORDER BY created_at DESC
			LIMIT 1
		)
		ORDER BY occupancy, outs
	`
	cells, err := r.query(ctx, query, player)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no stored results for %s", models.ErrPlayerNotFound, player)
	}
	return cells, nil
}

func (r *PostgresRunExpectancyRepository) query(ctx context.Context, query string, args ...any) ([]*models.RunExpectancyCell, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query result cells: %w", err)
	}
	defer rows.Close()

	var cells []*models.RunExpectancyCell
	for rows.Next() {
		c := &models.RunExpectancyCell{}
		if err := rows.Scan(&c.ID, &c.RunID, &c.Player, &c.Occupancy, &c.Outs, &c.Mean, &c.Variance, &c.Trials, &c.Seed, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result cell: %w", err)
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result cells: %w", err)
	}
	return cells, nil
}

// CellsFromResult flattens an experiment result into one cell per state.
func CellsFromResult(result *experiment.Result) []*models.RunExpectancyCell {
	createdAt := result.FinishedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	cells := make([]*models.RunExpectancyCell, 0, len(result.Cells))
	for _, agg := range result.Cells {
		cells = append(cells, &models.RunExpectancyCell{
			ID:        uuid.New(),
			RunID:     result.RunID,
			Player:    result.Player.Name,
			Occupancy: agg.State.Code(),
			Outs:      agg.State.Outs,
			Mean:      agg.Mean,
			Variance:  agg.Variance,
			Trials:    agg.Trials,
			Seed:      agg.Seed,
			CreatedAt: createdAt,
		})
	}
	return cells
}
