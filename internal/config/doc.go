// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package config loads and validates RevenueLens configuration.

Configuration is layered with koanf v2; later sources win:

 1. Built-in defaults (defaultConfig)
 2. YAML file: $CONFIG_PATH, ./config.yaml, /etc/revenuelens/config.yaml
 3. Environment variables

# Environment Variables

Database:
  - DATABASE_DRIVER: duckdb, sqlite or postgres (default: inferred, duckdb)
  - DATABASE_PATH / DUCKDB_PATH: embedded database file (default: data/revenuelens.duckdb)
  - DATABASE_DSN: postgres connection string; a DSN containing host= selects postgres
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS, DATABASE_MAX_CONNS

Feed and refresh:
  - CSV_PATH: sales feed (default: data/sales_sample.csv)
  - REFRESH_ENABLED: run the nightly incremental load (default: true)
  - REFRESH_HOUR: hour of day, 0-23 (default: 2)
  - REFRESH_COOLDOWN: wait after a failed refresh (default: 5m)
  - REFRESH_RUN_ON_START: load once at startup (default: false)
  - INGEST_FLUSH_EVERY: rows between flush checkpoints (default: 500)
  - INGEST_PROGRESS_PATH: badger directory for the last-load summary

Analytics:
  - ANALYTICS_FORCE_FALLBACK: always reduce revenue in memory
  - ANALYTICS_BREAKER_FAILURES, ANALYTICS_BREAKER_TIMEOUT, ANALYTICS_QUERY_TIMEOUT
  - ANALYTICS_CACHE_TTL: how long revenue views are cached, 0 disables (default: 5m)

HTTP:
  - HTTP_HOST, HTTP_PORT (default: 8080), HTTP_TIMEOUT
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
