package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/run-expectancy/internal/expectancy"
	"github.com/yourusername/run-expectancy/internal/experiment"
	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/outcome"
	"github.com/yourusername/run-expectancy/internal/simulation"
)

func sampleResult(t *testing.T) *experiment.Result {
	t.Helper()
	player := models.DefaultPlayer()
	w, err := outcome.FromStatistics(player.Stats)
	require.NoError(t, err)

	variance := expectancy.Table{}
	variance[7][2] = 1.23456
	return &experiment.Result{
		RunID:      uuid.MustParse("12345678-1234-5678-1234-567812345678"),
		Player:     player,
		Weights:    w,
		Trials:     1000,
		Seed:       42,
		Method:     simulation.VarianceLegacy,
		Mean:       expectancy.Default,
		Variance:   variance,
		StartedAt:  time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 4, 1, 12, 0, 5, 0, time.UTC),
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.4886", FormatValue(0.48864, 4))
	assert.Equal(t, "-0.105", FormatValue(-0.10495, 3))
	assert.Equal(t, "2.00", FormatValue(2, 2))
}

func TestWriteTableCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, &expectancy.Default, 4))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, expectancy.StateCount+1)

	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"_ _ _", "0", "0", "0.4886"}, rows[1])
	assert.Equal(t, []string{"1 _ _", "1", "2", "0.2213"}, rows[6])
	assert.Equal(t, []string{"1 2 3", "7", "2", "0.7018"}, rows[24])
}

func TestWriteResultFiles(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult(t)

	meanPath, variancePath := TablePaths(filepath.Join(dir, "nested"), "mean.csv", "variance.csv", result.Player.Name, false)
	require.NoError(t, WriteResultFiles(result, meanPath, variancePath, 4))

	mean, err := os.ReadFile(meanPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mean), "occupancy,code,outs,value\n"))

	variance, err := os.ReadFile(variancePath)
	require.NoError(t, err)
	assert.Contains(t, string(variance), "1 2 3,7,2,1.2346")
}

func TestTablePathsPrefixesPlayerForRosters(t *testing.T) {
	mean, variance := TablePaths("out", "mean.csv", "var.csv", "J.D. Martinez", true)
	assert.Equal(t, filepath.Join("out", "J_D__Martinez_mean.csv"), mean)
	assert.Equal(t, filepath.Join("out", "J_D__Martinez_var.csv"), variance)
}

func TestGenerateConsoleReport(t *testing.T) {
	report := GenerateConsoleReport(sampleResult(t), 3)

	assert.Contains(t, report, "Run Expectancy Report: ohtani")
	assert.Contains(t, report, "Seed: 42")
	assert.Contains(t, report, "Mean run value")
	assert.Contains(t, report, "1 2 3")
	assert.Contains(t, report, "2.262")
	assert.NotContains(t, report, "Source: cache")
}

func TestExportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, ExportToJSON(sampleResult(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export Export
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "ohtani", export.Player)
	assert.Equal(t, 41, export.Weights["HR"])
	assert.Equal(t, 130, export.Weights["AO"])
	require.Len(t, export.Cells, expectancy.StateCount)
	assert.Equal(t, 1.23456, export.Cells[23].Variance)
	assert.Equal(t, "legacy", export.VarianceMethod)
}
