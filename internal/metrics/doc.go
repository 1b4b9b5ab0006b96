// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry with promauto and exposed at
/metrics by internal/api.

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limited requests (counter)

Load Metrics:
  - sales_load_duration_seconds: CSV load duration (histogram)
  - sales_load_rows_processed_total: Rows processed (counter)
  - sales_load_errors_total: Failed loads (counter)
    Labels: error_type (source_not_found, malformed_row, in_progress, store)
  - sales_load_last_success_timestamp: Unix time of last good load (gauge)
  - sales_load_in_progress: 1 while a load runs (gauge)
  - sales_load_flush_size: Orders per flush checkpoint (histogram)

Aggregation Metrics:
  - revenue_aggregation_duration_seconds: Labels grouping, path (native, fallback)
  - revenue_aggregation_fallbacks_total: Labels grouping, reason (unsupported, forced)
  - revenue_aggregation_errors_total: Labels grouping

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

Scheduler Metrics:
  - refresh_scheduler_next_run_timestamp (gauge)
  - refresh_scheduler_runs_total: Labels result (success, failure)

Example PromQL queries:

	# Share of aggregations answered in memory
	sum(rate(revenue_aggregation_fallbacks_total[1h]))
	/
	sum(rate(revenue_aggregation_duration_seconds_count[1h]))

	# Hours since the last good load
	(time() - sales_load_last_success_timestamp) / 3600

# Cardinality Management

Endpoint labels use chi route patterns, never raw paths. Error types and
grouping names are fixed sets.
*/
package metrics
