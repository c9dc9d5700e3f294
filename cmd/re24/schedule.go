package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/run-expectancy/internal/config"
	"github.com/yourusername/run-expectancy/internal/health"
	"github.com/yourusername/run-expectancy/internal/metrics"
	"github.com/yourusername/run-expectancy/internal/scheduler"
	"github.com/yourusername/run-expectancy/internal/service"
)

var (
	scheduleRunNow  bool
	scheduleTimeout time.Duration
)

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", true, "Run the roster once before waiting for the schedule")
	scheduleCmd.Flags().DurationVar(&scheduleTimeout, "timeout", 4*time.Hour, "Upper bound for a single roster run")
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Recompute the roster tables on the configured cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repos, db, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		tracer, err := newTracer()
		if err != nil {
			return err
		}

		sched := scheduler.NewScheduler(log)
		job := func(jobCtx context.Context) error {
			// Reload so roster edits take effect without a restart.
			latest, err := config.LoadWithDefaults(configFile)
			if err != nil {
				return err
			}
			latest.Database = cfg.Database
			if err := config.Validate(latest); err != nil {
				return err
			}
			var store service.ResultStore
			if repos != nil {
				store = repos
			}
			svc, err := service.NewExperimentService(latest, store, nil, log)
			if err != nil {
				return err
			}
			_, summary, err := svc.WithTracer(tracer).Execute(jobCtx)
			if err == nil {
				log.WithField("summary", summary.String()).Info("Roster tables refreshed")
			}
			return err
		}

		if _, err := sched.ScheduleRosterRun(cfg.Schedule.Cron, scheduleTimeout, job); err != nil {
			return err
		}

		hcfg := health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        cfg.Schedule.HealthPort,
			Logger:      log,
			Runs:        sched,
		}
		if db != nil {
			hcfg.DB = db
		}
		if cfg.Metrics.Enabled {
			hcfg.MetricsPath = cfg.Metrics.Path
			hcfg.MetricsHandler = metrics.Handler()
		}
		srv := health.NewServer(hcfg)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}

		if scheduleRunNow {
			runCtx, cancel := context.WithTimeout(ctx, scheduleTimeout)
			err := sched.RunNow(runCtx, job)
			cancel()
			if err != nil {
				log.WithError(err).Warn("Initial roster run failed")
			}
		}

		if err := sched.Start(); err != nil {
			return err
		}
		srv.SetReady(true)
		log.WithField("next_run", sched.GetNextRun()).Info("Waiting for scheduled runs")

		<-ctx.Done()
		srv.SetReady(false)
		return sched.Stop()
	},
}
