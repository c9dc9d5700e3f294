package outcome

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/run-expectancy/internal/models"
)

func TestNewDistributionRejectsInvalidWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
	}{
		{name: "all zero", weights: Weights{}},
		{name: "negative", weights: Weights{5, -1, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDistribution(tt.weights)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, models.ErrInvalidWeights)
		})
	}
}

func TestSampleIsReproducible(t *testing.T) {
	w, err := FromStatistics(models.DefaultPlayer().Stats)
	require.NoError(t, err)
	d, err := NewDistribution(w)
	require.NoError(t, err)

	first := rand.New(rand.NewSource(42))
	second := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		require.Equal(t, d.Sample(first), d.Sample(second))
	}
}

func TestSampleSingleOutcome(t *testing.T) {
	for _, o := range models.AllOutcomes {
		t.Run(o.String(), func(t *testing.T) {
			d, err := NewDistribution(Only(o))
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 200; i++ {
				require.Equal(t, o, d.Sample(rng))
			}
		})
	}
}

func TestSampleSkipsZeroWeights(t *testing.T) {
	d, err := NewDistribution(Weights{0, 3, 0, 0, 0, 0, 0, 0, 2})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		got := d.Sample(rng)
		require.Contains(t, []models.Outcome{models.GroundOut, models.HomeRun}, got)
	}
}

func TestSampleFrequenciesMatchWeights(t *testing.T) {
	w, err := FromStatistics(models.DefaultPlayer().Stats)
	require.NoError(t, err)
	d, err := NewDistribution(w)
	require.NoError(t, err)

	const draws = 200000
	var counts [models.OutcomeCount]int
	rng := rand.New(rand.NewSource(2024))
	for i := 0; i < draws; i++ {
		counts[d.Sample(rng)]++
	}

	for _, o := range models.AllOutcomes {
		assert.InDelta(t, w.Probability(o), float64(counts[o])/draws, 0.005, o.String())
	}
}
