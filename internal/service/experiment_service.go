// Package service runs the complete roster pipeline: simulate every player,
// write the tables, and optionally store them.
package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/run-expectancy/internal/config"
	"github.com/yourusername/run-expectancy/internal/experiment"
	"github.com/yourusername/run-expectancy/internal/metrics"
	"github.com/yourusername/run-expectancy/internal/report"
	"github.com/yourusername/run-expectancy/internal/simulation"
	"github.com/yourusername/run-expectancy/internal/tracing"
)

// ResultStore persists finished experiment results.
type ResultStore interface {
	SaveResults(ctx context.Context, results []*experiment.Result) (int, error)
}

// ExperimentService handles the roster workflow
type ExperimentService struct {
	cfg     *config.Config
	runner  *experiment.Runner
	store   ResultStore
	console io.Writer
	tracer  *tracing.Tracer
	logger  *logrus.Logger
}

// NewExperimentService builds the driver and runner described by cfg. store
// and console may be nil.
func NewExperimentService(cfg *config.Config, store ResultStore, console io.Writer, logger *logrus.Logger) (*ExperimentService, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	driver, err := simulation.NewDriver(nil, simulation.Config{
		Workers:   cfg.Simulation.Workers,
		ChunkSize: cfg.Simulation.ChunkSize,
		Variance:  simulation.VarianceMethod(cfg.Simulation.Variance),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation driver: %w", err)
	}

	runner, err := experiment.NewRunner(driver, experiment.Options{
		Trials:   cfg.Simulation.Trials,
		Seed:     cfg.Simulation.Seed,
		CacheTTL: cfg.CacheTTL(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment runner: %w", err)
	}

	return &ExperimentService{
		cfg:     cfg,
		runner:  runner,
		store:   store,
		console: console,
		logger:  logger,
	}, nil
}

// WithTracer records each Execute call as an X-Ray segment.
func (s *ExperimentService) WithTracer(t *tracing.Tracer) *ExperimentService {
	s.tracer = t
	return s
}

// Runner exposes the underlying experiment runner.
func (s *ExperimentService) Runner() *experiment.Runner {
	return s.runner
}

// Execute runs every configured player and writes the outputs.
func (s *ExperimentService) Execute(ctx context.Context) (results []*experiment.Result, summary *RunSummary, err error) {
	summary = NewRunSummary()
	defer summary.Finish()

	ctx, endRun := s.tracer.StartRun(ctx)
	defer func() { endRun(err) }()
	tracing.AddAnnotation(ctx, "players", len(s.cfg.Players))
	tracing.AddAnnotation(ctx, "trials", s.cfg.Simulation.Trials)

	s.logger.WithFields(logrus.Fields{
		"players":  len(s.cfg.Players),
		"trials":   s.cfg.Simulation.Trials,
		"variance": s.cfg.Simulation.Variance,
	}).Info("Starting roster run")

	simCtx, endSim := s.tracer.StartPhase(ctx, "simulate")
	results, err = s.runner.RunRoster(simCtx, s.cfg.Players)
	endSim(err)
	if err != nil {
		summary.RecordError()
		return results, summary, err
	}
	for _, res := range results {
		summary.RecordPlayer(res.Cached)
	}

	_, endWrite := s.tracer.StartPhase(ctx, "write_outputs")
	err = s.writeOutputs(results, summary)
	endWrite(err)
	if err != nil {
		summary.RecordError()
		return results, summary, err
	}

	if s.store != nil {
		storeCtx, endStore := s.tracer.StartPhase(ctx, "persist")
		n, storeErr := s.store.SaveResults(storeCtx, results)
		endStore(storeErr)
		summary.RecordPersisted(n)
		if storeErr != nil {
			summary.RecordError()
			err = fmt.Errorf("failed to persist results: %w", storeErr)
			return results, summary, err
		}
	}

	if path := s.cfg.Metrics.TextfilePath; path != "" {
		if err = metrics.WriteTextfile(path); err != nil {
			summary.RecordError()
			err = fmt.Errorf("failed to write metrics textfile: %w", err)
			return results, summary, err
		}
		summary.RecordFile(path)
	}

	summary.Finish()
	s.logger.WithField("summary", summary.String()).Info("Roster run completed")
	return results, summary, nil
}

func (s *ExperimentService) writeOutputs(results []*experiment.Result, summary *RunSummary) error {
	out := s.cfg.Output
	multiple := len(results) > 1

	for _, res := range results {
		meanPath, variancePath := report.TablePaths(out.Dir, out.MeanFile, out.VarianceFile, res.Player.Name, multiple)
		if err := report.WriteResultFiles(res, meanPath, variancePath, out.Precision); err != nil {
			return fmt.Errorf("failed to write tables for %s: %w", res.Player.Name, err)
		}
		summary.RecordFile(meanPath)
		summary.RecordFile(variancePath)

		if out.JSONExport {
			jsonPath := jsonExportPath(meanPath)
			if err := report.ExportToJSON(res, jsonPath); err != nil {
				return fmt.Errorf("failed to export %s: %w", res.Player.Name, err)
			}
			summary.RecordFile(jsonPath)
		}

		if out.Console && s.console != nil {
			fmt.Fprintln(s.console, report.GenerateConsoleReport(res, out.Precision))
		}
	}
	return nil
}

// jsonExportPath derives "<dir>/<base>_run.json" from the mean table path,
// dropping the "_mean" suffix when present.
func jsonExportPath(meanPath string) string {
	base := strings.TrimSuffix(filepath.Base(meanPath), filepath.Ext(meanPath))
	base = strings.TrimSuffix(base, "_mean")
	return filepath.Join(filepath.Dir(meanPath), base+"_run.json")
}
