package storage

import (
	"context"
	"testing"
	"time"

	"github.com/money-tracker/internal/config"
)

// testContext returns a context with a deadline for test database calls.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// testPostgresConfig returns the connection settings the integration tests
// expect. Matches the local docker-compose defaults.
func testPostgresConfig() *config.PostgresConfig {
	return &config.PostgresConfig{
		Host:           "localhost",
		Port:           "5432",
		Database:       "moneytracker_test",
		User:           "moneytracker",
		Password:       "moneytracker_dev_password",
		MaxConnections: 10,
		MigrationsPath: "../../migrations/postgres",
	}
}

// setupTestDB connects to the test database, applies migrations, and wipes
// all rows so every test starts clean. Skips the test when Postgres is not
// reachable.
func setupTestDB(t *testing.T) *PostgresDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := testPostgresConfig()
	db, err := NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping test - Postgres not available: %v", err)
		return nil
	}
	t.Cleanup(db.Close)

	if err := RunMigrations(cfg.URL(), cfg.MigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := testContext(t)
	// custom_users and assets cascade to everything else.
	if _, err := db.Pool().Exec(ctx, `TRUNCATE custom_users, assets RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return db
}
