// Command re24 estimates run expectancy tables by Monte Carlo simulation.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/run-expectancy/internal/config"
	"github.com/yourusername/run-expectancy/internal/database"
	"github.com/yourusername/run-expectancy/internal/logger"
	"github.com/yourusername/run-expectancy/internal/metrics"
	"github.com/yourusername/run-expectancy/internal/repository"
	"github.com/yourusername/run-expectancy/internal/tracing"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	log        *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.AddCommand(runCmd, sampleCmd, weightsCmd, scheduleCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "re24",
	Short: "Monte Carlo run expectancy estimator",
	Long: `re24 simulates plate appearances from each of the 24 base-out states for
one or more batters and writes the mean and variance run value tables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return loadConfig(cmd.Context())
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration, overlays AWS secrets when enabled and
// validates the result.
func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log = logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	if cfg.Secrets.AWSEnabled {
		if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
			return err
		}
		log.WithField("secret", cfg.Secrets.AWSSecretName).Debug("Applied AWS secrets overlay")
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	metrics.InitRegistry()
	return nil
}

// openStore connects to the results database when it is enabled. The
// returned close function is never nil.
func openStore(ctx context.Context) (*repository.Repositories, *database.DB, func(), error) {
	if !cfg.Database.Enabled {
		return nil, nil, func() {}, nil
	}
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, func() {}, err
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, func() {}, err
	}
	log.WithFields(logrus.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	}).Info("Connected to results database")
	return repos, db, db.Close, nil
}

func newTracer() (*tracing.Tracer, error) {
	return tracing.Initialize(tracing.Config{
		ServiceName: cfg.App.Name,
		Enabled:     cfg.Tracing.Enabled,
		DaemonAddr:  cfg.Tracing.DaemonAddr,
		Version:     Version,
	}, log)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "re24 %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}
