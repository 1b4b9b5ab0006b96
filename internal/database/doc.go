// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package database is the relational store behind RevenueLens.
//
// # Backends
//
// Three database/sql drivers are supported, selected by config.DatabaseConfig:
//
//   - duckdb (default): github.com/duckdb/duckdb-go/v2, money as DECIMAL(18,4)
//   - sqlite: modernc.org/sqlite, money as TEXT
//   - postgres: github.com/jackc/pgx/v5/stdlib, money as NUMERIC(18,4)
//
// Statements are written once with "?" placeholders and rebound for
// PostgreSQL. Decimals cross the driver boundary as strings in both
// directions so no value ever passes through float64.
//
// # Files
//
//   - database.go: lifecycle, connection strings, pool settings
//   - dialect.go: per-backend SQL differences
//   - database_schema.go, migrations.go: tables and versioned migrations
//   - crud_sales.go: LoadTx, the transaction used by the ingest engine
//   - analytics_revenue.go: SUM(NetRevenue) aggregates and raw order figures
//   - crud_debug.go: counts and bounded samples
//
// # Aggregate capability
//
// SupportsDecimalAggregate reports whether SumRevenue can run. When it cannot,
// or when DuckDB rejects the decimal arithmetic at run time, SumRevenue returns
// an error wrapping ErrAggregateUnsupported and callers reduce OrderFigures
// themselves.
package database
