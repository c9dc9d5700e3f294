// Package repository persists run expectancy results to PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/run-expectancy/internal/database"
	"github.com/yourusername/run-expectancy/internal/experiment"
)

// Repositories holds all repository implementations
type Repositories struct {
	RunExpectancy RunExpectancyRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return NewRepositoriesFromPool(db.GetPool()), nil
}

// NewRepositoriesFromPool builds the repositories on any Pool.
func NewRepositoriesFromPool(pool Pool) *Repositories {
	return &Repositories{
		RunExpectancy: NewPostgresRunExpectancyRepository(pool),
	}
}

// SaveResults stores every cell of each result.
func (r *Repositories) SaveResults(ctx context.Context, results []*experiment.Result) (int, error) {
	saved := 0
	for _, res := range results {
		cells := CellsFromResult(res)
		if err := r.RunExpectancy.InsertBatch(ctx, cells); err != nil {
			return saved, fmt.Errorf("player %s: %w", res.Player.Name, err)
		}
		saved += len(cells)
	}
	return saved, nil
}
