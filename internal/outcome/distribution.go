package outcome

import (
	"fmt"
	"sort"

	"github.com/yourusername/run-expectancy/internal/models"
)

// RandomSource is the subset of *rand.Rand used for sampling.
type RandomSource interface {
	Int63n(n int64) int64
}

// Distribution is an immutable categorical distribution over outcomes.
// It is safe for concurrent use.
type Distribution struct {
	weights    Weights
	cumulative [models.OutcomeCount]int64
	total      int64
}

// NewDistribution builds a distribution from weights. It fails with
// models.ErrInvalidWeights if any weight is negative or all are zero.
func NewDistribution(w Weights) (*Distribution, error) {
	d := &Distribution{weights: w}
	var running int64
	for i, v := range w {
		if v < 0 {
			return nil, fmt.Errorf("%w: %s weight is negative (%d)", models.ErrInvalidWeights, models.Outcome(i), v)
		}
		running += int64(v)
		d.cumulative[i] = running
	}
	if running == 0 {
		return nil, fmt.Errorf("%w: all weights are zero", models.ErrInvalidWeights)
	}
	d.total = running
	return d, nil
}

// Weights returns the weights the distribution was built from.
func (d *Distribution) Weights() Weights {
	return d.weights
}

// Sample draws one outcome with probability proportional to its weight.
func (d *Distribution) Sample(rng RandomSource) models.Outcome {
	x := rng.Int63n(d.total)
	// first index whose cumulative weight exceeds x; zero-weight
	// categories share their predecessor's bound and are never chosen
	idx := sort.Search(models.OutcomeCount, func(i int) bool {
		return d.cumulative[i] > x
	})
	return models.Outcome(idx)
}
