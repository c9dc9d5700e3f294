// Package expectancy holds the league run expectancy matrix indexed by
// base occupancy and outs.
package expectancy

import (
	"fmt"

	"github.com/yourusername/run-expectancy/internal/models"
)

const (
	// OccupancyStates is the number of base occupancy patterns.
	OccupancyStates = 8
	// OutStates is the number of out counts before the inning ends.
	OutStates = 3
	// StateCount is the number of base-out states.
	StateCount = OccupancyStates * OutStates
)

// Table is an 8x3 matrix indexed by occupancy code then outs.
type Table [OccupancyStates][OutStates]float64

// Default is the empirical expected runs for the remainder of the inning.
var Default = Table{
	{0.4886, 0.2630, 0.1008}, // _ _ _
	{0.8577, 0.5115, 0.2213}, // 1 _ _
	{1.0732, 0.6551, 0.3187}, // _ 2 _
	{1.4423, 0.9036, 0.4392}, // 1 2 _
	{1.3081, 0.8977, 0.3634}, // _ _ 3
	{1.6772, 1.1462, 0.4839}, // 1 _ 3
	{1.8927, 1.2898, 0.5813}, // _ 2 3
	{2.2618, 1.5383, 0.7018}, // 1 2 3
}

// Lookup returns the expected runs for an occupancy code and out count.
// Queries for a completed inning (outs=3) fail with models.ErrIndexOutOfRange.
func (t *Table) Lookup(code, outs int) (float64, error) {
	if code < 0 || code >= OccupancyStates || outs < 0 || outs >= OutStates {
		return 0, fmt.Errorf("%w: occupancy=%d outs=%d", models.ErrIndexOutOfRange, code, outs)
	}
	return t[code][outs], nil
}

// Set stores a value, used when assembling result tables.
func (t *Table) Set(code, outs int, value float64) error {
	if code < 0 || code >= OccupancyStates || outs < 0 || outs >= OutStates {
		return fmt.Errorf("%w: occupancy=%d outs=%d", models.ErrIndexOutOfRange, code, outs)
	}
	t[code][outs] = value
	return nil
}

// Code encodes base occupancy as first=bit0, second=bit1, third=bit2.
func Code(first, second, third bool) int {
	code := 0
	if first {
		code |= 1
	}
	if second {
		code |= 2
	}
	if third {
		code |= 4
	}
	return code
}

// Bases decodes an occupancy code.
func Bases(code int) (first, second, third bool) {
	return code&1 != 0, code&2 != 0, code&4 != 0
}

// Label renders an occupancy code the way a scoreboard would, e.g. "1 _ 3".
func Label(code int) string {
	first, second, third := Bases(code)
	mark := func(occupied bool, base string) string {
		if occupied {
			return base
		}
		return "_"
	}
	return fmt.Sprintf("%s %s %s", mark(first, "1"), mark(second, "2"), mark(third, "3"))
}
