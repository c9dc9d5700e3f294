// Package metrics provides the Prometheus metrics registry for simulation runs.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	TrialsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "run_expectancy",
		Name:      "trials_total",
		Help:      "Total number of simulated plate appearances",
	}, []string{"player"})
	ExperimentRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "run_expectancy",
		Name:      "experiment_runs_total",
		Help:      "Total number of 24-state experiment runs by status",
	}, []string{"status"})
	ScheduledRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "run_expectancy",
		Name:      "scheduled_runs_total",
		Help:      "Total number of scheduled roster runs by status",
	}, []string{"status"})
)

// Gauge metrics
var (
	StateMeanRunValue = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "run_expectancy",
		Name:      "state_mean_run_value",
		Help:      "Latest mean run value per player and base-out state",
	}, []string{"player", "occupancy", "outs"})
	StateRunValueVariance = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "run_expectancy",
		Name:      "state_run_value_variance",
		Help:      "Latest run value variance per player and base-out state",
	}, []string{"player", "occupancy", "outs"})
)

// Histogram metrics
var (
	StateEstimateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "run_expectancy",
		Name:      "state_estimate_duration_seconds",
		Help:      "Duration of a single base-out state estimate in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	ExperimentDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "run_expectancy",
		Name:      "experiment_duration_seconds",
		Help:      "Duration of a full 24-state experiment in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(TrialsTotal)
		registry.MustRegister(ExperimentRunsTotal)
		registry.MustRegister(ScheduledRunsTotal)

		registry.MustRegister(StateMeanRunValue)
		registry.MustRegister(StateRunValueVariance)

		registry.MustRegister(StateEstimateDuration)
		registry.MustRegister(ExperimentDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// WriteTextfile writes the current registry in the text exposition format,
// for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, GetRegistry())
}

// RecordStateEstimate records the outcome of one base-out state estimate.
func RecordStateEstimate(player string, occupancy, outs, trials int, mean, variance, durationSeconds float64) {
	occ := strconv.Itoa(occupancy)
	o := strconv.Itoa(outs)
	TrialsTotal.WithLabelValues(player).Add(float64(trials))
	StateMeanRunValue.WithLabelValues(player, occ, o).Set(mean)
	StateRunValueVariance.WithLabelValues(player, occ, o).Set(variance)
	StateEstimateDuration.Observe(durationSeconds)
}

// RecordExperimentRun records an experiment run.
// status should be one of: "success", "failure", "cached"
func RecordExperimentRun(status string) {
	ExperimentRunsTotal.WithLabelValues(status).Inc()
}

// ObserveExperimentDuration records how long a full sweep took.
func ObserveExperimentDuration(durationSeconds float64) {
	ExperimentDuration.Observe(durationSeconds)
}

// RecordScheduledRun records a scheduled roster run.
func RecordScheduledRun(status string) {
	ScheduledRunsTotal.WithLabelValues(status).Inc()
}
