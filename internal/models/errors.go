package models

import "errors"

// Custom errors
var (
	ErrInvalidWeights    = errors.New("invalid outcome weights")
	ErrIndexOutOfRange   = errors.New("run expectancy index out of range")
	ErrInvalidTrialCount = errors.New("invalid trial count")
	ErrInvalidStatistics = errors.New("invalid batting statistics")
	ErrUnknownOutcome    = errors.New("unknown outcome")
	ErrPlayerNotFound    = errors.New("player not found")
)
