// Package report renders run expectancy tables for terminals and files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/run-expectancy/internal/expectancy"
	"github.com/yourusername/run-expectancy/internal/experiment"
)

// CSVHeader is the header row of exported tables.
var CSVHeader = []string{"occupancy", "code", "outs", "value"}

// FormatValue rounds v to precision decimal places.
func FormatValue(v float64, precision int32) string {
	return decimal.NewFromFloat(v).Round(precision).StringFixed(precision)
}

// WriteTableCSV writes 24 rows ordered by occupancy code, then outs.
func WriteTableCSV(w io.Writer, table *expectancy.Table, precision int32) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for code := 0; code < expectancy.OccupancyStates; code++ {
		for outs := 0; outs < expectancy.OutStates; outs++ {
			row := []string{
				expectancy.Label(code),
				strconv.Itoa(code),
				strconv.Itoa(outs),
				FormatValue(table[code][outs], precision),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableFile writes a table as CSV to path, creating parent directories.
func WriteTableFile(path string, table *expectancy.Table, precision int32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteTableCSV(f, table, precision); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// TablePaths returns the mean and variance file names for a player. With a
// single player the configured names are used as-is; otherwise the player
// name is prefixed.
func TablePaths(dir, meanFile, varianceFile, player string, multiple bool) (string, string) {
	if multiple {
		prefix := sanitize(player) + "_"
		meanFile = prefix + meanFile
		varianceFile = prefix + varianceFile
	}
	return filepath.Join(dir, meanFile), filepath.Join(dir, varianceFile)
}

// WriteResultFiles writes both tables of a result.
func WriteResultFiles(result *experiment.Result, meanPath, variancePath string, precision int32) error {
	if err := WriteTableFile(meanPath, &result.Mean, precision); err != nil {
		return err
	}
	return WriteTableFile(variancePath, &result.Variance, precision)
}

// GenerateConsoleReport formats both tables for terminal output
func GenerateConsoleReport(result *experiment.Result, precision int32) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Run Expectancy Report: %s\n", result.Player.Name))
	builder.WriteString("==========================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", result.RunID))
	builder.WriteString(fmt.Sprintf("Trials per state: %d\n", result.Trials))
	builder.WriteString(fmt.Sprintf("Seed: %d\n", result.Seed))
	builder.WriteString(fmt.Sprintf("Variance: %s\n", result.Method))
	if result.Cached {
		builder.WriteString("Source: cache\n")
	}
	builder.WriteString("\nMean run value\n")
	writeGrid(&builder, &result.Mean, precision)
	builder.WriteString("\nVariance\n")
	writeGrid(&builder, &result.Variance, precision)
	return builder.String()
}

func writeGrid(b *strings.Builder, table *expectancy.Table, precision int32) {
	b.WriteString(fmt.Sprintf("%-7s", "bases"))
	for outs := 0; outs < expectancy.OutStates; outs++ {
		b.WriteString(fmt.Sprintf(" %10s", fmt.Sprintf("%d out", outs)))
	}
	b.WriteString("\n")
	for code := 0; code < expectancy.OccupancyStates; code++ {
		b.WriteString(fmt.Sprintf("%-7s", expectancy.Label(code)))
		for outs := 0; outs < expectancy.OutStates; outs++ {
			b.WriteString(fmt.Sprintf(" %10s", FormatValue(table[code][outs], precision)))
		}
		b.WriteString("\n")
	}
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
