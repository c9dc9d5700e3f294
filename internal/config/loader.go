// Package config provides configuration management for the run expectancy simulator.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/run-expectancy/internal/models"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// RE24_SIMULATION_TRIALS.
const EnvPrefix = "RE24"

// DefaultConfigPath is used when no path is given.
const DefaultConfigPath = "config/config.yaml"

// Load reads and parses the configuration file. The file must exist.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := readExpanded(v, data); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// LoadWithDefaults loads configuration, falling back to defaults and
// environment variables when the file does not exist.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := readExpanded(v, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "re24")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")

	v.SetDefault("simulation.trials", 100000)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.chunk_size", 0)
	v.SetDefault("simulation.variance", "legacy")
	v.SetDefault("simulation.cache_ttl_seconds", 3600)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.mean_file", "run_expectancy_mean.csv")
	v.SetDefault("output.variance_file", "run_expectancy_variance.csv")
	v.SetDefault("output.json_export", false)
	v.SetDefault("output.precision", 4)
	v.SetDefault("output.console", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "re24")
	v.SetDefault("database.user", "re24")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 4)

	v.SetDefault("secrets.aws_enabled", false)
	v.SetDefault("secrets.aws_region", "")
	v.SetDefault("secrets.aws_secret_name", "")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.textfile_path", "")

	v.SetDefault("schedule.cron", "@daily")
	v.SetDefault("schedule.health_port", 8080)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.daemon_addr", "127.0.0.1:2000")
}

func readExpanded(v *viper.Viper, data []byte) error {
	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if len(cfg.Players) == 0 {
		cfg.Players = []models.Player{models.DefaultPlayer()}
	}
	return cfg, nil
}
