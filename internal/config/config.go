// Package config provides configuration management for the run expectancy simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/run-expectancy/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Players    []models.Player  `mapstructure:"players" validate:"required,min=1,dive"`
	Output     OutputConfig     `mapstructure:"output" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"required,oneof=text json"`
}

// SimulationConfig represents Monte Carlo settings
type SimulationConfig struct {
	Trials          int    `mapstructure:"trials" validate:"required,gt=0"`
	Seed            int64  `mapstructure:"seed"`
	Workers         int    `mapstructure:"workers" validate:"gte=0"`
	ChunkSize       int    `mapstructure:"chunk_size" validate:"gte=0"`
	Variance        string `mapstructure:"variance" validate:"required,variance"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// OutputConfig represents where result tables are written
type OutputConfig struct {
	Dir          string `mapstructure:"dir" validate:"required"`
	MeanFile     string `mapstructure:"mean_file" validate:"required"`
	VarianceFile string `mapstructure:"variance_file" validate:"required"`
	JSONExport   bool   `mapstructure:"json_export"`
	Precision    int32  `mapstructure:"precision" validate:"gte=0,lte=12"`
	Console      bool   `mapstructure:"console"`
}

// DatabaseConfig represents the optional results database
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// SecretsConfig controls the AWS Secrets Manager overlay
type SecretsConfig struct {
	AWSEnabled    bool   `mapstructure:"aws_enabled"`
	AWSRegion     string `mapstructure:"aws_region" validate:"required_if=AWSEnabled true"`
	AWSSecretName string `mapstructure:"aws_secret_name" validate:"required_if=AWSEnabled true"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Path         string `mapstructure:"path" validate:"required_if=Enabled true"`
	TextfilePath string `mapstructure:"textfile_path"`
}

// ScheduleConfig represents recurring recomputation
type ScheduleConfig struct {
	Cron       string `mapstructure:"cron" validate:"required"`
	HealthPort int    `mapstructure:"health_port" validate:"min=1,max=65535"`
}

// TracingConfig controls AWS X-Ray segments around roster runs
type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	DaemonAddr string `mapstructure:"daemon_addr" validate:"required_if=Enabled true"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the experiment memo lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Simulation.CacheTTLSeconds) * time.Second
}

// Player returns the configured player with the given name.
func (c *Config) Player(name string) (models.Player, error) {
	for _, p := range c.Players {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return models.Player{}, fmt.Errorf("%w: %s", models.ErrPlayerNotFound, name)
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
