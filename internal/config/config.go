// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package config

import (
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	CSV       CSVConfig       `koanf:"csv"`
	Refresh   RefreshConfig   `koanf:"refresh"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig selects and tunes the relational store.
type DatabaseConfig struct {
	// Driver is one of duckdb, sqlite, postgres. Empty selects from DSN/Path.
	Driver string `koanf:"driver"`
	// Path is the database file for the embedded drivers. ":memory:" is allowed.
	Path string `koanf:"path"`
	// DSN is the connection string for postgres (e.g. "host=db user=app dbname=sales").
	DSN       string `koanf:"dsn"`
	MaxMemory string `koanf:"max_memory"` // DuckDB memory_limit
	Threads   int    `koanf:"threads"`    // DuckDB threads (0 = NumCPU)
	MaxConns  int    `koanf:"max_conns"`  // postgres pool size
}

// CSVConfig locates the sales feed.
type CSVConfig struct {
	Path string `koanf:"path"`
}

// RefreshConfig drives the nightly incremental load.
type RefreshConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Hour       int           `koanf:"hour"`
	Cooldown   time.Duration `koanf:"cooldown"`
	RunOnStart bool          `koanf:"run_on_start"`
}

// IngestConfig tunes the upsert engine.
type IngestConfig struct {
	FlushEvery int `koanf:"flush_every"`
	// ProgressPath is a badger directory for the last-load summary. Empty keeps it in memory.
	ProgressPath string `koanf:"progress_path"`
}

// AnalyticsConfig tunes the revenue aggregator.
type AnalyticsConfig struct {
	// ForceFallback skips the store aggregate and always reduces in memory.
	ForceFallback          bool          `koanf:"force_fallback"`
	BreakerMaxFailures     uint32        `koanf:"breaker_max_failures"`
	BreakerOpenTimeout     time.Duration `koanf:"breaker_open_timeout"`
	BreakerHalfOpenQueries uint32        `koanf:"breaker_half_open_queries"`
	QueryTimeout           time.Duration `koanf:"query_timeout"`

	// CacheTTL bounds how long a revenue view is served from memory. Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ResolvedDriver returns the configured driver, inferring postgres from a
// libpq-style DSN and falling back to duckdb.
func (d *DatabaseConfig) ResolvedDriver() string {
	if d.Driver != "" {
		return strings.ToLower(d.Driver)
	}
	dsn := strings.ToLower(d.DSN)
	if strings.Contains(dsn, "host=") || strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverDuckDB
}

// Load reads configuration from defaults, an optional YAML file and the environment.
// Later sources override earlier ones. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
