// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/logging"
)

// DB wraps the relational store and provides the sales data access methods.
type DB struct {
	conn    *sql.DB
	cfg     *config.DatabaseConfig
	dialect dialect
}

// New opens the configured backend and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	d, err := lookupDialect(cfg.ResolvedDriver())
	if err != nil {
		return nil, err
	}

	connStr, err := connectionString(cfg, d)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(d.sqlDriver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	db := &DB{
		conn:    conn,
		cfg:     cfg,
		dialect: d,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", d.name).
		Bool("decimal_aggregate", d.decimalAggregate).
		Msg("Database ready")

	return db, nil
}

// connectionString builds the driver-specific DSN. Embedded backends get
// their parent directory created.
func connectionString(cfg *config.DatabaseConfig, d dialect) (string, error) {
	switch d.name {
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return "", fmt.Errorf("postgres driver requires a DSN")
		}
		return cfg.DSN, nil
	case config.DriverSQLite:
		if err := ensureParentDir(cfg.Path); err != nil {
			return "", err
		}
		if cfg.Path == ":memory:" {
			return ":memory:", nil
		}
		return cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	default:
		if err := ensureParentDir(cfg.Path); err != nil {
			return "", err
		}
		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		maxMemory := cfg.MaxMemory
		if maxMemory == "" {
			maxMemory = "1GB"
		}
		return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
			cfg.Path, threads, maxMemory), nil
	}
}

// ensureParentDir creates the directory holding a database file.
// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
func ensureParentDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	switch db.dialect.name {
	case config.DriverSQLite:
		// one writer; an in-memory database lives exactly as long as its connection
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
		db.conn.SetConnMaxIdleTime(0)
		return
	case config.DriverPostgres:
		maxConns := db.cfg.MaxConns
		if maxConns <= 0 {
			maxConns = 10
		}
		db.conn.SetMaxOpenConns(maxConns)
		db.conn.SetMaxIdleConns(2)
	default:
		db.conn.SetMaxOpenConns(runtime.NumCPU())
		db.conn.SetMaxIdleConns(2)
	}
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates tables and applies pending migrations
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	return db.runVersionedMigrations()
}

// Driver returns the active backend name (duckdb, sqlite or postgres).
func (db *DB) Driver() string {
	return db.dialect.name
}

// SupportsDecimalAggregate reports whether the store can SUM the revenue
// expression exactly. Callers use the raw-row queries when it cannot.
func (db *DB) SupportsDecimalAggregate() bool {
	return db.dialect.decimalAggregate
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close flushes the DuckDB WAL and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.dialect.name == config.DriverDuckDB {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// Checkpoint forces a WAL checkpoint. It is a no-op outside DuckDB.
func (db *DB) Checkpoint(ctx context.Context) error {
	if db.dialect.name != config.DriverDuckDB {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}
