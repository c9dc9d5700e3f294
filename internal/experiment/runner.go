// Package experiment sweeps every base-out state for a batter and assembles
// the mean and variance run value tables.
package experiment

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/run-expectancy/internal/baseout"
	"github.com/yourusername/run-expectancy/internal/expectancy"
	"github.com/yourusername/run-expectancy/internal/logger"
	"github.com/yourusername/run-expectancy/internal/metrics"
	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/outcome"
	"github.com/yourusername/run-expectancy/internal/simulation"
)

// stateSeedStride offsets each starting state's seed. It is a prime below the
// 2^31-1 modulus math/rand reduces seeds by and is coprime with the chunk
// stride (7919), so chunk seeds of different states only coincide when a
// state runs more than a million chunks.
const stateSeedStride int64 = 1_000_003

// Result holds the tables produced for one batter.
type Result struct {
	RunID      uuid.UUID                    `json:"run_id"`
	Player     models.Player                `json:"player"`
	Weights    outcome.Weights              `json:"weights"`
	Trials     int                          `json:"trials"`
	Seed       int64                        `json:"seed"`
	Method     simulation.VarianceMethod    `json:"variance_method"`
	Mean       expectancy.Table             `json:"mean"`
	Variance   expectancy.Table             `json:"variance"`
	Cells      []simulation.AggregateResult `json:"-"`
	Cached     bool                         `json:"cached"`
	StartedAt  time.Time                    `json:"started_at"`
	FinishedAt time.Time                    `json:"finished_at"`
}

// Options configures a Runner.
type Options struct {
	Trials   int
	Seed     int64
	CacheTTL time.Duration
}

// Runner runs the 24-state sweep.
type Runner struct {
	driver *simulation.Driver
	opts   Options
	memo   *cache.Cache
	log    *logger.SimulationLogger
}

// NewRunner creates a runner around driver.
func NewRunner(driver *simulation.Driver, opts Options, baseLogger *logrus.Logger) (*Runner, error) {
	if driver == nil {
		return nil, fmt.Errorf("simulation driver is required")
	}
	if err := simulation.ValidateTrials(opts.Trials); err != nil {
		return nil, err
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if baseLogger == nil {
		baseLogger = logrus.New()
		baseLogger.SetLevel(logrus.PanicLevel)
	}
	return &Runner{
		driver: driver,
		opts:   opts,
		memo:   cache.New(opts.CacheTTL, opts.CacheTTL*2),
		log:    logger.NewSimulationLogger(baseLogger),
	}, nil
}

// RunAll estimates every starting state for player. The distribution is
// built once and shared by all states; states run one after another while
// trials within a state run in parallel.
func (r *Runner) RunAll(ctx context.Context, player models.Player) (*Result, error) {
	if err := player.Validate(); err != nil {
		metrics.RecordExperimentRun("failure")
		return nil, err
	}
	weights, err := outcome.FromStatistics(player.Stats)
	if err != nil {
		metrics.RecordExperimentRun("failure")
		return nil, err
	}
	dist, err := outcome.NewDistribution(weights)
	if err != nil {
		metrics.RecordExperimentRun("failure")
		return nil, fmt.Errorf("player %s: %w", player.Name, err)
	}

	seed := r.opts.Seed
	fixedSeed := seed != 0
	if !fixedSeed {
		seed = time.Now().UnixNano()
	}

	result := &Result{
		RunID:     uuid.New(),
		Player:    player,
		Weights:   weights,
		Trials:    r.opts.Trials,
		Seed:      seed,
		Method:    r.driver.Config().Variance,
		Mean:      expectancy.Default,
		Variance:  expectancy.Default,
		StartedAt: time.Now().UTC(),
	}

	key := r.memoKey(weights, seed)
	if fixedSeed {
		if hit, ok := r.memo.Get(key); ok {
			cached := hit.(*Result)
			result.Mean = cached.Mean
			result.Variance = cached.Variance
			result.Cells = slices.Clone(cached.Cells)
			result.Cached = true
			result.FinishedAt = time.Now().UTC()
			metrics.RecordExperimentRun("cached")
			r.log.LogExperimentCompleted(result.RunID.String(), player.Name, r.opts.Trials, true, result.FinishedAt.Sub(result.StartedAt))
			return result, nil
		}
	}

	r.log.LogExperimentStarted(result.RunID.String(), player.Name, r.opts.Trials, seed, string(result.Method))

	states := baseout.AllStates()
	result.Cells = make([]simulation.AggregateResult, 0, len(states))
	for i, start := range states {
		stateSeed := seed + int64(i)*stateSeedStride
		agg, err := r.driver.Estimate(ctx, start, dist, r.opts.Trials, stateSeed)
		if err != nil {
			metrics.RecordExperimentRun("failure")
			r.log.LogExperimentFailed(result.RunID.String(), player.Name, err)
			return nil, fmt.Errorf("estimate %s: %w", start, err)
		}
		if err := result.Mean.Set(start.Code(), start.Outs, agg.Mean); err != nil {
			return nil, err
		}
		if err := result.Variance.Set(start.Code(), start.Outs, agg.Variance); err != nil {
			return nil, err
		}
		result.Cells = append(result.Cells, agg)

		metrics.RecordStateEstimate(player.Name, start.Code(), start.Outs, agg.Trials, agg.Mean, agg.Variance, agg.Duration.Seconds())
		r.log.LogStateEstimate(player.Name, start.Code(), start.Outs, agg.Mean, agg.Variance, agg.Trials)
	}

	result.FinishedAt = time.Now().UTC()
	if fixedSeed {
		memo := *result
		memo.Cells = slices.Clone(result.Cells)
		r.memo.SetDefault(key, &memo)
	}
	metrics.RecordExperimentRun("success")
	metrics.ObserveExperimentDuration(result.FinishedAt.Sub(result.StartedAt).Seconds())
	r.log.LogExperimentCompleted(result.RunID.String(), player.Name, r.opts.Trials, false, result.FinishedAt.Sub(result.StartedAt))
	return result, nil
}

// RunRoster runs RunAll for each player in order and stops at the first
// failure.
func (r *Runner) RunRoster(ctx context.Context, players []models.Player) ([]*Result, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: roster is empty", models.ErrPlayerNotFound)
	}
	results := make([]*Result, 0, len(players))
	for _, p := range players {
		res, err := r.RunAll(ctx, p)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) memoKey(w outcome.Weights, seed int64) string {
	cfg := r.driver.Config()
	return fmt.Sprintf("%s|%d|%d|%s|%d", w.Key(), r.opts.Trials, seed, cfg.Variance, cfg.ChunkSize)
}
