package models

// BattingStatistics holds the season counting stats used to derive a
// batter's outcome distribution.
type BattingStatistics struct {
	AtBats               int     `mapstructure:"at_bats" json:"at_bats" validate:"gte=0"`
	Hits                 int     `mapstructure:"hits" json:"hits" validate:"gte=0"`
	Doubles              int     `mapstructure:"doubles" json:"doubles" validate:"gte=0"`
	Triples              int     `mapstructure:"triples" json:"triples" validate:"gte=0"`
	HomeRuns             int     `mapstructure:"home_runs" json:"home_runs" validate:"gte=0"`
	Walks                int     `mapstructure:"walks" json:"walks" validate:"gte=0"`
	IntentionalWalks     int     `mapstructure:"intentional_walks" json:"intentional_walks" validate:"gte=0"`
	GroundOutAirOutRatio float64 `mapstructure:"ground_out_to_air_out_ratio" json:"ground_out_to_air_out_ratio" validate:"gte=0"`
	Strikeouts           int     `mapstructure:"strikeouts" json:"strikeouts" validate:"gte=0"`
}

// Player is a named batting line.
type Player struct {
	Name  string            `mapstructure:"name" json:"name" validate:"required"`
	Stats BattingStatistics `mapstructure:"stats" json:"stats"`
}

// BallsInPlay returns at-bats that ended neither in a hit nor a strikeout.
func (s BattingStatistics) BallsInPlay() int {
	return s.AtBats - s.Hits - s.Strikeouts
}

// Singles returns hits that were not extra-base hits.
func (s BattingStatistics) Singles() int {
	return s.Hits - s.Doubles - s.Triples - s.HomeRuns
}

// PlateAppearances returns the number of plate appearances the counting
// stats account for: at-bats plus walks of both kinds.
func (s BattingStatistics) PlateAppearances() int {
	return s.AtBats + s.Walks + s.IntentionalWalks
}

// DefaultPlayer is the batting line used when no roster is configured.
func DefaultPlayer() Player {
	return Player{
		Name: "ohtani",
		Stats: BattingStatistics{
			AtBats:               511,
			Hits:                 150,
			Doubles:              29,
			Triples:              6,
			HomeRuns:             41,
			Walks:                69,
			IntentionalWalks:     8,
			GroundOutAirOutRatio: 0.78,
			Strikeouts:           130,
		},
	}
}
