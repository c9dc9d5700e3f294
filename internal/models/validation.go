package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var statsValidator = validator.New()

// Validate checks the counting stats are non-negative and internally
// consistent. Failures wrap ErrInvalidStatistics.
func (s BattingStatistics) Validate() error {
	if err := statsValidator.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s=%v", fe.StructField(), fe.Value()))
			}
			return fmt.Errorf("%w: negative values: %s", ErrInvalidStatistics, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidStatistics, err)
	}

	if math.IsInf(s.GroundOutAirOutRatio, 0) || math.IsNaN(s.GroundOutAirOutRatio) {
		return fmt.Errorf("%w: ground_out_to_air_out_ratio must be finite, got %v", ErrInvalidStatistics, s.GroundOutAirOutRatio)
	}

	extraBase := s.Doubles + s.Triples + s.HomeRuns
	if s.Hits < extraBase {
		return fmt.Errorf("%w: hits (%d) less than doubles+triples+home_runs (%d)", ErrInvalidStatistics, s.Hits, extraBase)
	}
	if s.AtBats < s.Hits+s.Strikeouts {
		return fmt.Errorf("%w: at_bats (%d) less than hits+strikeouts (%d)", ErrInvalidStatistics, s.AtBats, s.Hits+s.Strikeouts)
	}
	return nil
}

// Validate checks the player has a name and a consistent batting line.
func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidStatistics)
	}
	if err := p.Stats.Validate(); err != nil {
		return fmt.Errorf("player %s: %w", p.Name, err)
	}
	return nil
}
