// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.CSV.Path != "data/sales_sample.csv" {
		t.Errorf("CSV.Path = %q, want data/sales_sample.csv", cfg.CSV.Path)
	}
	if cfg.Refresh.Hour != 2 {
		t.Errorf("Refresh.Hour = %d, want 2", cfg.Refresh.Hour)
	}
	if cfg.Refresh.Cooldown != 5*time.Minute {
		t.Errorf("Refresh.Cooldown = %v, want 5m", cfg.Refresh.Cooldown)
	}
	if cfg.Ingest.FlushEvery != 500 {
		t.Errorf("Ingest.FlushEvery = %d, want 500", cfg.Ingest.FlushEvery)
	}
	if cfg.Database.ResolvedDriver() != DriverDuckDB {
		t.Errorf("ResolvedDriver() = %q, want duckdb", cfg.Database.ResolvedDriver())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"CSV_PATH", "csv.path"},
		{"REFRESH_HOUR", "refresh.hour"},
		{"DATABASE_DSN", "database.dsn"},
		{"DUCKDB_PATH", "database.path"},
		{"LOG_LEVEL", "logging.level"},
		{"cors_origins", "security.cors_origins"},
		{"HOME", ""},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestResolvedDriver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{"explicit sqlite", DatabaseConfig{Driver: "SQLite"}, DriverSQLite},
		{"libpq dsn", DatabaseConfig{DSN: "host=db user=app dbname=sales"}, DriverPostgres},
		{"url dsn", DatabaseConfig{DSN: "postgres://app@db/sales"}, DriverPostgres},
		{"file path only", DatabaseConfig{Path: "data.db"}, DriverDuckDB},
		{"explicit wins over dsn", DatabaseConfig{Driver: "duckdb", DSN: "host=db"}, DriverDuckDB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.ResolvedDriver(); got != tt.want {
				t.Errorf("ResolvedDriver() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CSV_PATH", "/feeds/sales.csv")
	t.Setenv("REFRESH_HOUR", "5")
	t.Setenv("REFRESH_COOLDOWN", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DISABLE_RATE_LIMIT", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.CSV.Path != "/feeds/sales.csv" {
		t.Errorf("CSV.Path = %q, want /feeds/sales.csv", cfg.CSV.Path)
	}
	if cfg.Refresh.Hour != 5 {
		t.Errorf("Refresh.Hour = %d, want 5", cfg.Refresh.Hour)
	}
	if cfg.Refresh.Cooldown != 90*time.Second {
		t.Errorf("Refresh.Cooldown = %v, want 90s", cfg.Refresh.Cooldown)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled should be true")
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: sqlite
  path: "/var/lib/revenuelens/sales.db"
csv:
  path: "/feeds/nightly.csv"
refresh:
  hour: 23
server:
  port: 9090
logging:
  level: warn
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.ResolvedDriver() != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", cfg.Database.ResolvedDriver())
	}
	if cfg.CSV.Path != "/feeds/nightly.csv" {
		t.Errorf("CSV.Path = %q", cfg.CSV.Path)
	}
	if cfg.Refresh.Hour != 23 {
		t.Errorf("Refresh.Hour = %d, want 23", cfg.Refresh.Hour)
	}
	// env overrides file
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	// default survives
	if cfg.Ingest.FlushEvery != 500 {
		t.Errorf("Ingest.FlushEvery = %d, want 500", cfg.Ingest.FlushEvery)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"hour too large", func(c *Config) { c.Refresh.Hour = 24 }, "REFRESH_HOUR"},
		{"hour negative", func(c *Config) { c.Refresh.Hour = -1 }, "REFRESH_HOUR"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "DATABASE_DSN"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "DATABASE_DRIVER"},
		{"empty csv path", func(c *Config) { c.CSV.Path = " " }, "CSV_PATH"},
		{"zero flush", func(c *Config) { c.Ingest.FlushEvery = 0 }, "INGEST_FLUSH_EVERY"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"boundary hour ok", func(c *Config) { c.Refresh.Hour = 23 }, ""},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
