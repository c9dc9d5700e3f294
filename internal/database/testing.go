package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/run-expectancy/internal/config"
)

// TestConfigEnv names the config file used by database integration tests.
const TestConfigEnv = "RE24_TEST_CONFIG"

// SetupTestDB connects to the database described by the file in
// RE24_TEST_CONFIG and skips the test when it is unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestConfigEnv)
	if path == "" {
		t.Skipf("Integration test - set %s to a config with a database section", TestConfigEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	return db
}

// TeardownTestDB removes rows written by the test and closes the pool.
func TeardownTestDB(t *testing.T, db *DB, player string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.pool.Exec(ctx, "DELETE FROM run_expectancy_results WHERE player = $1", player); err != nil {
		t.Logf("warning: failed to clean test rows: %v", err)
	}
	db.Close()
}
