package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/run-expectancy/internal/baseout"
	"github.com/yourusername/run-expectancy/internal/database"
	"github.com/yourusername/run-expectancy/internal/experiment"
	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/simulation"
)

// fakePool keeps copied rows in memory and returns them from Query.
type fakePool struct {
	table    string
	columns  []string
	rows     [][]any
	queries  []string
	copyErr  error
	queryErr error
}

func (f *fakePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (f *fakePool) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{rows: f.rows, idx: -1}, nil
}

func (f *fakePool) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.table = table.Sanitize()
	f.columns = columns
	var n int64
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return n, err
		}
		f.rows = append(f.rows, values)
		n++
	}
	return n, src.Err()
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func sampleResult(t *testing.T) *experiment.Result {
	t.Helper()
	driver, err := simulation.NewDriver(nil, simulation.Config{Workers: 2}, nil)
	require.NoError(t, err)
	runner, err := experiment.NewRunner(driver, experiment.Options{Trials: 50, Seed: 11}, nil)
	require.NoError(t, err)
	res, err := runner.RunAll(context.Background(), models.DefaultPlayer())
	require.NoError(t, err)
	return res
}

func TestCellsFromResult(t *testing.T) {
	res := sampleResult(t)

	cells := CellsFromResult(res)
	require.Len(t, cells, 24)
	for i, start := range baseout.AllStates() {
		c := cells[i]
		assert.Equal(t, res.RunID, c.RunID)
		assert.Equal(t, "ohtani", c.Player)
		assert.Equal(t, start.Code(), c.Occupancy)
		assert.Equal(t, start.Outs, c.Outs)
		assert.Equal(t, res.Mean[c.Occupancy][c.Outs], c.Mean)
		assert.Equal(t, 50, c.Trials)
		assert.Equal(t, res.FinishedAt, c.CreatedAt)
	}
}

func TestInsertBatchAndReadBack(t *testing.T) {
	pool := &fakePool{}
	repo := NewPostgresRunExpectancyRepository(pool)
	ctx := context.Background()

	runID := uuid.New()
	now := time.Now().UTC()
	cells := []*models.RunExpectancyCell{
		{ID: uuid.New(), RunID: runID, Player: "ohtani", Occupancy: 0, Outs: 0, Mean: 0.12, Variance: 0.4, Trials: 10, Seed: 1, CreatedAt: now},
		{ID: uuid.New(), RunID: runID, Player: "ohtani", Occupancy: 7, Outs: 2, Mean: 0.9, Variance: 1.1, Trials: 10, Seed: 2, CreatedAt: now},
	}
	require.NoError(t, repo.InsertBatch(ctx, cells))
	assert.Equal(t, `"run_expectancy_results"`, pool.table)
	assert.Equal(t, resultColumns, pool.columns)
	require.Len(t, pool.rows, 2)

	got, err := repo.GetByRunID(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, *cells[1], *got[1])
	assert.Contains(t, pool.queries[0], "WHERE run_id = $1")
}

func TestInsertBatchEmptyIsNoop(t *testing.T) {
	pool := &fakePool{copyErr: errors.New("must not be called")}
	repo := NewPostgresRunExpectancyRepository(pool)
	assert.NoError(t, repo.InsertBatch(context.Background(), nil))
}

func TestInsertBatchWrapsCopyError(t *testing.T) {
	pool := &fakePool{copyErr: errors.New("connection reset")}
	repo := NewPostgresRunExpectancyRepository(pool)

	err := repo.InsertBatch(context.Background(), []*models.RunExpectancyCell{{ID: uuid.New()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetLatestByPlayerMissing(t *testing.T) {
	repo := NewPostgresRunExpectancyRepository(&fakePool{})

	_, err := repo.GetLatestByPlayer(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)
}

func TestSaveResults(t *testing.T) {
	pool := &fakePool{}
	repos := NewRepositoriesFromPool(pool)

	saved, err := repos.SaveResults(context.Background(), []*experiment.Result{sampleResult(t)})
	require.NoError(t, err)
	assert.Equal(t, 24, saved)
	assert.Len(t, pool.rows, 24)
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

func TestRunExpectancyRepositoryIntegration(t *testing.T) {
	db := database.SetupTestDB(t)
	const player = "integration-test-batter"
	defer database.TeardownTestDB(t, db, player)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	res := sampleResult(t)
	res.Player.Name = player
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	saved, err := repos.SaveResults(ctx, []*experiment.Result{res})
	require.NoError(t, err)
	assert.Equal(t, 24, saved)

	latest, err := repos.RunExpectancy.GetLatestByPlayer(ctx, player)
	require.NoError(t, err)
	assert.Len(t, latest, 24)
	assert.Equal(t, res.RunID, latest[0].RunID)
}
