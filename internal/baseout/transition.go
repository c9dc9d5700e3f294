package baseout

import (
	"fmt"

	"github.com/yourusername/run-expectancy/internal/expectancy"
	"github.com/yourusername/run-expectancy/internal/models"
)

// Transition is what a single plate appearance did to the inning.
type Transition struct {
	Runs        int
	Before      float64
	After       float64
	InningEnded bool
}

// RunValue is the runs scored plus the change in expected runs remaining.
func (t Transition) RunValue() float64 {
	return float64(t.Runs) + (t.After - t.Before)
}

// Apply resolves outcome against s and returns the resulting state. When the
// third out is recorded the returned state is bases empty, nobody out, and
// the expected runs after the play are zero.
func Apply(table *expectancy.Table, s State, outcome models.Outcome) (State, Transition, error) {
	before, err := table.Lookup(s.Code(), s.Outs)
	if err != nil {
		return s, Transition{}, err
	}

	next, runs, err := advance(s, outcome)
	if err != nil {
		return s, Transition{}, err
	}

	t := Transition{Runs: runs, Before: before}
	if next.Outs >= OutsPerInning {
		t.InningEnded = true
		return State{}, t, nil
	}

	t.After, err = table.Lookup(next.Code(), next.Outs)
	if err != nil {
		return s, Transition{}, err
	}
	return next, t, nil
}

// advance moves runners for outcome. Forced runners are resolved from third
// back to first so nobody is moved twice.
func advance(s State, outcome models.Outcome) (State, int, error) {
	runs := 0
	switch outcome {
	case models.AirOut:
		s.Outs++
		if s.Outs >= OutsPerInning {
			return s, 0, nil
		}
		if s.Third {
			runs++
			s.Third = false
		}
		if s.Second {
			s.Third = true
			s.Second = false
		}
		if s.First {
			s.Second = true
			s.First = false
		}

	case models.GroundOut, models.Strikeout:
		s.Outs++

	case models.Walk, models.IntentionalWalk:
		switch {
		case !s.First:
			s.First = true
		case !s.Second:
			s.Second = true
		case !s.Third:
			s.Third = true
		default:
			runs++
		}

	case models.Single:
		if s.Third {
			runs++
			s.Third = false
		}
		if s.Second {
			s.Third = true
			s.Second = false
		}
		if s.First {
			s.Second = true
		}
		s.First = true

	case models.Double:
		if s.Third {
			runs++
		}
		if s.Second {
			runs++
		}
		s.Third = s.First
		s.Second = true
		s.First = false

	case models.Triple:
		runs = s.Runners()
		s.First, s.Second, s.Third = false, false, true

	case models.HomeRun:
		runs = s.Runners() + 1
		s.First, s.Second, s.Third = false, false, false

	default:
		return s, 0, fmt.Errorf("%w: %d", models.ErrUnknownOutcome, int(outcome))
	}
	return s, runs, nil
}
