// Package simulation runs Monte Carlo plate appearance trials from a fixed
// base-out state and aggregates their run values.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/run-expectancy/internal/baseout"
	"github.com/yourusername/run-expectancy/internal/expectancy"
	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/outcome"
)

// chunkSeedStride separates the random sequences of adjacent chunks.
const chunkSeedStride = 7919

// Sampler draws a plate appearance outcome.
type Sampler interface {
	Sample(rng outcome.RandomSource) models.Outcome
}

// AggregateResult summarizes the trials run from one starting state.
type AggregateResult struct {
	State        baseout.State  `json:"-"`
	Mean         float64        `json:"mean"`
	Variance     float64        `json:"variance"`
	Trials       int            `json:"trials"`
	InningsEnded int            `json:"innings_ended"`
	Seed         int64          `json:"seed"`
	Method       VarianceMethod `json:"variance_method"`
	Duration     time.Duration  `json:"duration"`
}

// Driver runs trials across a bounded worker pool.
type Driver struct {
	table  *expectancy.Table
	cfg    Config
	logger logrus.FieldLogger
}

// NewDriver creates a driver. A nil table selects expectancy.Default.
func NewDriver(table *expectancy.Table, cfg Config, logger logrus.FieldLogger) (*Driver, error) {
	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = &expectancy.Default
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		logger = discard
	}
	return &Driver{table: table, cfg: normalized, logger: logger}, nil
}

// Config returns the normalized driver configuration.
func (d *Driver) Config() Config {
	return d.cfg
}

// Estimate simulates trials independent plate appearances from start and
// returns the mean and variance of their run values. Each trial samples one
// outcome and applies it once. Results depend only on seed, trials and the
// chunk size, not on the number of workers.
func (d *Driver) Estimate(ctx context.Context, start baseout.State, dist Sampler, trials int, seed int64) (AggregateResult, error) {
	if err := ValidateTrials(trials); err != nil {
		return AggregateResult{}, err
	}
	if _, err := d.table.Lookup(start.Code(), start.Outs); err != nil {
		return AggregateResult{}, err
	}

	began := time.Now()
	chunks := (trials + d.cfg.ChunkSize - 1) / d.cfg.ChunkSize
	partials := make([]moments, chunks)
	ended := make([]int, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for i := 0; i < chunks; i++ {
		i := i
		n := d.cfg.ChunkSize
		if i == chunks-1 {
			n = trials - i*d.cfg.ChunkSize
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed + int64(i)*chunkSeedStride))
			m, e, err := d.runChunk(start, dist, rng, n)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			partials[i] = m
			ended[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AggregateResult{}, err
	}

	var total moments
	inningsEnded := 0
	for i := range partials {
		total.merge(partials[i])
		inningsEnded += ended[i]
	}

	result := AggregateResult{
		State:        start,
		Mean:         total.sum / float64(total.n),
		Variance:     total.variance(d.cfg.Variance),
		Trials:       total.n,
		InningsEnded: inningsEnded,
		Seed:         seed,
		Method:       d.cfg.Variance,
		Duration:     time.Since(began),
	}

	d.logger.WithFields(logrus.Fields{
		"occupancy": start.Code(),
		"outs":      start.Outs,
		"trials":    trials,
		"chunks":    chunks,
		"mean":      result.Mean,
		"variance":  result.Variance,
	}).Debug("State estimate completed")

	return result, nil
}

func (d *Driver) runChunk(start baseout.State, dist Sampler, rng *rand.Rand, n int) (moments, int, error) {
	var m moments
	ended := 0
	for t := 0; t < n; t++ {
		_, tr, err := baseout.Apply(d.table, start, dist.Sample(rng))
		if err != nil {
			return m, ended, err
		}
		if tr.InningEnded {
			ended++
		}
		m.add(tr.RunValue())
	}
	return m, ended, nil
}
