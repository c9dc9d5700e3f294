// Package logger provides simulation-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/run-expectancy/internal/expectancy"
)

// SimulationLogger provides dedicated logging for experiment runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogExperimentStarted logs the start of a 24-state sweep.
func (sl *SimulationLogger) LogExperimentStarted(runID, player string, trials int, seed int64, varianceMethod string) {
	sl.WithFields(logrus.Fields{
		"run_id":          runID,
		"player":          player,
		"trials":          trials,
		"seed":            seed,
		"variance_method": varianceMethod,
		"event_type":      "started",
	}).Info("Experiment started")
}

// LogStateEstimate logs one base-out state estimate.
func (sl *SimulationLogger) LogStateEstimate(player string, occupancy, outs int, mean, variance float64, trials int) {
	sl.WithFields(logrus.Fields{
		"player":    player,
		"occupancy": expectancy.Label(occupancy),
		"code":      occupancy,
		"outs":      outs,
		"mean":      mean,
		"variance":  variance,
		"trials":    trials,
	}).Debug("State estimated")
}

// LogExperimentCompleted logs a finished sweep.
func (sl *SimulationLogger) LogExperimentCompleted(runID, player string, trials int, cached bool, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"run_id":      runID,
		"player":      player,
		"trials":      trials,
		"cached":      cached,
		"duration_ms": float64(duration.Microseconds()) / 1000,
		"event_type":  "completed",
	}).Info("Experiment completed")
}

// LogExperimentFailed logs an aborted sweep.
func (sl *SimulationLogger) LogExperimentFailed(runID, player string, err error) {
	sl.WithFields(logrus.Fields{
		"run_id":     runID,
		"player":     player,
		"event_type": "failed",
	}).WithError(err).Error("Experiment failed")
}
