// Package outcome derives a batter's plate appearance outcome distribution
// from counting stats and samples outcomes from it.
package outcome

import (
	"fmt"
	"math"

	"github.com/yourusername/run-expectancy/internal/models"
)

// Weights holds one non-negative count per outcome, indexed by models.Outcome.
type Weights [models.OutcomeCount]int

// FromStatistics validates stats and derives the outcome weights.
func FromStatistics(stats models.BattingStatistics) (Weights, error) {
	if err := stats.Validate(); err != nil {
		return Weights{}, err
	}

	ballsInPlay := stats.BallsInPlay()
	groundShare := stats.GroundOutAirOutRatio / (1.0 + stats.GroundOutAirOutRatio)
	groundOuts := int(math.Round(float64(ballsInPlay) * groundShare))
	airOuts := ballsInPlay - groundOuts

	var w Weights
	w[models.AirOut] = airOuts
	w[models.GroundOut] = groundOuts
	w[models.Strikeout] = stats.Strikeouts
	w[models.Walk] = stats.Walks
	w[models.IntentionalWalk] = stats.IntentionalWalks
	w[models.Single] = stats.Singles()
	w[models.Double] = stats.Doubles
	w[models.Triple] = stats.Triples
	w[models.HomeRun] = stats.HomeRuns
	return w, nil
}

// FromSlice builds weights from a positional slice ordered as
// models.AllOutcomes.
func FromSlice(values []int) (Weights, error) {
	var w Weights
	if len(values) != models.OutcomeCount {
		return w, fmt.Errorf("%w: expected %d weights, got %d", models.ErrInvalidWeights, models.OutcomeCount, len(values))
	}
	copy(w[:], values)
	return w, nil
}

// Only returns weights that put all mass on a single outcome.
func Only(o models.Outcome) Weights {
	var w Weights
	w[o] = 1
	return w
}

// Get returns the weight for an outcome.
func (w Weights) Get(o models.Outcome) int {
	return w[o]
}

// Total returns the sum of all weights.
func (w Weights) Total() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// Probability returns the share of total weight held by o.
func (w Weights) Probability(o models.Outcome) float64 {
	total := w.Total()
	if total <= 0 {
		return 0
	}
	return float64(w[o]) / float64(total)
}

// Key returns a stable string form, used for memoization.
func (w Weights) Key() string {
	return fmt.Sprint([models.OutcomeCount]int(w))
}
