package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/run-expectancy/internal/config"
	"github.com/yourusername/run-expectancy/internal/models"
	"github.com/yourusername/run-expectancy/internal/service"
)

var (
	runPlayer    string
	runTrials    int
	runSeed      int64
	runVariance  string
	runOutputDir string
)

func init() {
	runCmd.Flags().StringVarP(&runPlayer, "player", "p", "", "Run only the named player")
	runCmd.Flags().IntVarP(&runTrials, "trials", "n", 0, "Trials per base-out state")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Random seed (0 picks a time-based seed)")
	runCmd.Flags().StringVar(&runVariance, "variance", "", "Variance method: legacy or sample")
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for the result tables")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Estimate the mean and variance tables for the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyRunFlags(cmd); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repos, _, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		var store service.ResultStore
		if repos != nil {
			store = repos
		}

		tracer, err := newTracer()
		if err != nil {
			return err
		}
		svc, err := service.NewExperimentService(cfg, store, cmd.OutOrStdout(), log)
		if err != nil {
			return err
		}
		_, summary, err := svc.WithTracer(tracer).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d files (%s)\n", len(summary.FilesWritten), summary.String())
		return nil
	},
}

// applyRunFlags overrides configuration with flags the user set and
// re-validates.
func applyRunFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("player") {
		p, err := cfg.Player(runPlayer)
		if err != nil {
			return err
		}
		cfg.Players = []models.Player{p}
	}
	if flags.Changed("trials") {
		cfg.Simulation.Trials = runTrials
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = runSeed
	}
	if flags.Changed("variance") {
		cfg.Simulation.Variance = runVariance
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = runOutputDir
	}
	return config.Validate(cfg)
}
