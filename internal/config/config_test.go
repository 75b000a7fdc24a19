package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	if err := os.Setenv("SERVER_PORT", "9090"); err != nil {
		t.Fatalf("Failed to set SERVER_PORT: %v", err)
	}
	if err := os.Setenv("POSTGRES_HOST", "testhost"); err != nil {
		t.Fatalf("Failed to set POSTGRES_HOST: %v", err)
	}
	if err := os.Setenv("QUOTE_CACHE_TTL", "30s"); err != nil {
		t.Fatalf("Failed to set QUOTE_CACHE_TTL: %v", err)
	}
	defer func() {
		_ = os.Unsetenv("SERVER_PORT")
		_ = os.Unsetenv("POSTGRES_HOST")
		_ = os.Unsetenv("QUOTE_CACHE_TTL")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %v, want %v", cfg.Server.Port, "9090")
	}

	if cfg.Database.Postgres.Host != "testhost" {
		t.Errorf("Database.Postgres.Host = %v, want %v", cfg.Database.Postgres.Host, "testhost")
	}

	if cfg.Cache.QuoteTTL != 30*time.Second {
		t.Errorf("Cache.QuoteTTL = %v, want %v", cfg.Cache.QuoteTTL, 30*time.Second)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database.Postgres.Database != "moneytracker" {
		t.Errorf("Postgres.Database = %v, want moneytracker", cfg.Database.Postgres.Database)
	}
	if cfg.RateLimit.DefaultRPS <= 0 {
		t.Errorf("RateLimit.DefaultRPS = %v, want > 0", cfg.RateLimit.DefaultRPS)
	}
	if cfg.RateLimit.SubscribedRPS < cfg.RateLimit.DefaultRPS {
		t.Errorf("SubscribedRPS (%v) should not be lower than DefaultRPS (%v)",
			cfg.RateLimit.SubscribedRPS, cfg.RateLimit.DefaultRPS)
	}
}

func TestPostgresConfig_URL(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     "5433",
		Database: "moneytracker",
		User:     "tracker",
		Password: "secret",
	}

	want := "postgres://tracker:secret@db:5433/moneytracker?sslmode=disable"
	if got := cfg.URL(); got != want {
		t.Errorf("URL() = %v, want %v", got, want)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		want         int
	}{
		{name: "valid integer", envValue: "42", defaultValue: 10, want: 42},
		{name: "invalid integer falls back", envValue: "abc", defaultValue: 10, want: 10},
		{name: "unset falls back", envValue: "", defaultValue: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_INT_KEY"
			if tt.envValue != "" {
				if err := os.Setenv(key, tt.envValue); err != nil {
					t.Fatalf("Failed to set env: %v", err)
				}
				defer func() { _ = os.Unsetenv(key) }()
			}

			if got := getEnvAsInt(key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnvAsInt() = %v, want %v", got, tt.want)
			}
		})
	}
}
