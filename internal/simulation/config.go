package simulation

import (
	"fmt"
	"runtime"

	"github.com/yourusername/run-expectancy/internal/models"
)

// VarianceMethod selects how the per-state variance is computed.
type VarianceMethod string

const (
	// VarianceLegacy is sum(x²)/(n-1) - mean², kept for compatibility with
	// previously published tables. It is biased: a constant value v yields
	// v²/(n-1) instead of zero.
	VarianceLegacy VarianceMethod = "legacy"
	// VarianceSample is the Bessel-corrected sample variance accumulated
	// with Welford's algorithm.
	VarianceSample VarianceMethod = "sample"
)

// DefaultChunkSize is the number of trials drawn from one random source.
const DefaultChunkSize = 4096

// Config configures a Driver.
type Config struct {
	Workers   int
	ChunkSize int
	Variance  VarianceMethod
}

// Normalize fills defaults and checks the configuration.
func (c Config) Normalize() (Config, error) {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Variance == "" {
		c.Variance = VarianceLegacy
	}
	switch c.Variance {
	case VarianceLegacy, VarianceSample:
	default:
		return c, fmt.Errorf("unknown variance method %q", c.Variance)
	}
	return c, nil
}

// ValidateTrials rejects trial counts that cannot produce an estimate.
func ValidateTrials(trials int) error {
	if trials <= 0 {
		return fmt.Errorf("%w: %d", models.ErrInvalidTrialCount, trials)
	}
	return nil
}
