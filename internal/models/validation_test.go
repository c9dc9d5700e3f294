package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPlayerIsValid(t *testing.T) {
	p := DefaultPlayer()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 74, p.Stats.Singles())
	assert.Equal(t, 231, p.Stats.BallsInPlay())
	assert.Equal(t, 588, p.Stats.PlateAppearances())
}

func TestBattingStatisticsValidate(t *testing.T) {
	tests := []struct {
		name  string
		stats BattingStatistics
	}{
		{name: "negative walks", stats: BattingStatistics{AtBats: 10, Walks: -1}},
		{name: "negative ratio", stats: BattingStatistics{AtBats: 10, GroundOutAirOutRatio: -0.5}},
		{name: "extra-base hits exceed hits", stats: BattingStatistics{AtBats: 10, Hits: 2, Doubles: 2, HomeRuns: 1}},
		{name: "hits and strikeouts exceed at-bats", stats: BattingStatistics{AtBats: 10, Hits: 6, Strikeouts: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.stats.Validate(), ErrInvalidStatistics)
		})
	}
}

func TestPlayerValidate(t *testing.T) {
	assert.ErrorIs(t, Player{Name: "  "}.Validate(), ErrInvalidStatistics)

	err := Player{Name: "bad", Stats: BattingStatistics{Hits: 1}}.Validate()
	assert.ErrorIs(t, err, ErrInvalidStatistics)
	assert.Contains(t, err.Error(), "player bad")
}
