// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package main is the entry point for the RevenueLens server.

RevenueLens loads a sales CSV feed into a relational store (DuckDB, SQLite or
PostgreSQL) and serves revenue totals and breakdowns by product, category and
region over an HTTP API.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("revenuelens")
	├── IngestSupervisor ("ingest-layer")
	│   └── Refresh scheduler (daily incremental load)
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Database: driver selected by config, schema created if absent
 4. Progress store: badger directory or in-memory
 5. Loader, cached revenue views (cleared after every load) and refresh scheduler
 6. Supervisor tree and HTTP server

# Configuration

Common environment variables:

	DATABASE_DRIVER=duckdb|sqlite|postgres
	DATABASE_PATH=data/revenuelens.duckdb
	DATABASE_DSN="host=db user=app dbname=sales"
	CSV_PATH=data/sales_sample.csv
	REFRESH_ENABLED=true
	REFRESH_HOUR=2
	HTTP_PORT=8080
	LOG_LEVEL=info

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to 10 seconds, the scheduler stops waiting for its next
window, and the database is closed last.

# Example Usage

	export CSV_PATH=./data/sales.csv
	./revenuelens
	curl -X POST 'http://localhost:8080/api/v1/revenue/refresh?overwrite=true'
	curl 'http://localhost:8080/api/v1/revenue/by_region?startDate=2024-01-01&endDate=2024-03-31'
*/
package main
