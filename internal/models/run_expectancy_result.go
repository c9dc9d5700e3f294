package models

import (
	"time"

	"github.com/google/uuid"
)

// RunExpectancyCell is one persisted (occupancy, outs) estimate.
type RunExpectancyCell struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RunID     uuid.UUID `db:"run_id" json:"run_id"`
	Player    string    `db:"player" json:"player"`
	Occupancy int       `db:"occupancy" json:"occupancy"`
	Outs      int       `db:"outs" json:"outs"`
	Mean      float64   `db:"mean" json:"mean"`
	Variance  float64   `db:"variance" json:"variance"`
	Trials    int       `db:"trials" json:"trials"`
	Seed      int64     `db:"seed" json:"seed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
