package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/run-expectancy/internal/experiment"
	"github.com/yourusername/run-expectancy/internal/models"
)

// Export is the JSON document written next to the CSV tables.
type Export struct {
	RunID          uuid.UUID                `json:"run_id"`
	Player         string                   `json:"player"`
	Stats          models.BattingStatistics `json:"stats"`
	Weights        map[string]int           `json:"weights"`
	Trials         int                      `json:"trials"`
	Seed           int64                    `json:"seed"`
	VarianceMethod string                   `json:"variance_method"`
	Cells          []ExportCell             `json:"cells"`
	StartedAt      time.Time                `json:"started_at"`
	FinishedAt     time.Time                `json:"finished_at"`
}

// ExportCell is one state of the exported tables.
type ExportCell struct {
	Occupancy int     `json:"occupancy"`
	Outs      int     `json:"outs"`
	Mean      float64 `json:"mean"`
	Variance  float64 `json:"variance"`
}

// NewExport flattens a result into its export form.
func NewExport(result *experiment.Result) Export {
	weights := make(map[string]int, models.OutcomeCount)
	for _, o := range models.AllOutcomes {
		weights[o.String()] = result.Weights.Get(o)
	}

	cells := make([]ExportCell, 0, len(result.Mean)*len(result.Mean[0]))
	for code := range result.Mean {
		for outs := range result.Mean[code] {
			cells = append(cells, ExportCell{
				Occupancy: code,
				Outs:      outs,
				Mean:      result.Mean[code][outs],
				Variance:  result.Variance[code][outs],
			})
		}
	}

	return Export{
		RunID:          result.RunID,
		Player:         result.Player.Name,
		Stats:          result.Player.Stats,
		Weights:        weights,
		Trials:         result.Trials,
		Seed:           result.Seed,
		VarianceMethod: string(result.Method),
		Cells:          cells,
		StartedAt:      result.StartedAt,
		FinishedAt:     result.FinishedAt,
	}
}

// ExportToJSON writes the export for result to outputPath.
func ExportToJSON(result *experiment.Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(NewExport(result), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
