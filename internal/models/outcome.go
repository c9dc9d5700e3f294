package models

import (
	"fmt"
	"strings"
)

// Outcome is the result of a single plate appearance.
type Outcome int

// Outcome values in the positional order used by weight vectors.
const (
	AirOut Outcome = iota
	GroundOut
	Strikeout
	Walk
	IntentionalWalk
	Single
	Double
	Triple
	HomeRun
)

// OutcomeCount is the number of distinct plate appearance outcomes.
const OutcomeCount = 9

// AllOutcomes lists every outcome in positional order.
var AllOutcomes = [OutcomeCount]Outcome{
	AirOut,
	GroundOut,
	Strikeout,
	Walk,
	IntentionalWalk,
	Single,
	Double,
	Triple,
	HomeRun,
}

var outcomeCodes = [OutcomeCount]string{"AO", "GO", "SO", "BB", "IBB", "1B", "2B", "3B", "HR"}

// String returns the scorebook abbreviation for the outcome.
func (o Outcome) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeCodes[o]
}

// Valid reports whether o is one of the nine enumerated outcomes.
func (o Outcome) Valid() bool {
	return o >= AirOut && o <= HomeRun
}

// IsOut reports whether the batter is retired on the play.
func (o Outcome) IsOut() bool {
	return o == AirOut || o == GroundOut || o == Strikeout
}

// ParseOutcome converts a scorebook abbreviation into an Outcome.
func ParseOutcome(code string) (Outcome, error) {
	upper := strings.ToUpper(strings.TrimSpace(code))
	for i, c := range outcomeCodes {
		if c == upper {
			return Outcome(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOutcome, code)
}
