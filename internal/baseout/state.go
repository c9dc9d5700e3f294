// Package baseout models the base-out state of a half-inning and the
// transition applied by each plate appearance outcome.
package baseout

import (
	"fmt"

	"github.com/yourusername/run-expectancy/internal/expectancy"
	"github.com/yourusername/run-expectancy/internal/models"
)

// OutsPerInning ends the half-inning.
const OutsPerInning = 3

// State is the occupancy of each base and the outs recorded. The zero value
// is bases empty, nobody out.
type State struct {
	First  bool
	Second bool
	Third  bool
	Outs   int
}

// New builds a state from an occupancy code and out count.
func New(code, outs int) (State, error) {
	if code < 0 || code >= expectancy.OccupancyStates || outs < 0 || outs >= OutsPerInning {
		return State{}, fmt.Errorf("%w: occupancy=%d outs=%d", models.ErrIndexOutOfRange, code, outs)
	}
	first, second, third := expectancy.Bases(code)
	return State{First: first, Second: second, Third: third, Outs: outs}, nil
}

// AllStates returns the 24 starting states ordered by occupancy code, then outs.
func AllStates() []State {
	states := make([]State, 0, expectancy.StateCount)
	for code := 0; code < expectancy.OccupancyStates; code++ {
		for outs := 0; outs < OutsPerInning; outs++ {
			first, second, third := expectancy.Bases(code)
			states = append(states, State{First: first, Second: second, Third: third, Outs: outs})
		}
	}
	return states
}

// Code returns the occupancy code of the state.
func (s State) Code() int {
	return expectancy.Code(s.First, s.Second, s.Third)
}

// Runners returns how many bases are occupied.
func (s State) Runners() int {
	n := 0
	for _, occupied := range [...]bool{s.First, s.Second, s.Third} {
		if occupied {
			n++
		}
	}
	return n
}

func (s State) String() string {
	return fmt.Sprintf("[%s] %d out", expectancy.Label(s.Code()), s.Outs)
}
