// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Load Metrics
	LoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sales_load_duration_seconds",
			Help:    "Duration of CSV loads in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	LoadRowsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_load_rows_processed_total",
			Help: "Total number of CSV rows processed by the loader",
		},
	)

	LoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_load_errors_total",
			Help: "Total number of failed loads",
		},
		[]string{"error_type"}, // "source_not_found", "malformed_row", "in_progress", "store"
	)

	LoadLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sales_load_last_success_timestamp",
			Help: "Unix timestamp of the last successful load",
		},
	)

	LoadInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sales_load_in_progress",
			Help: "1 while a load is running",
		},
	)

	LoadFlushSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sales_load_flush_size",
			Help:    "Orders written per flush checkpoint",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	// Aggregation Metrics
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "revenue_aggregation_duration_seconds",
			Help:    "Duration of revenue aggregations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"grouping", "path"}, // path: "native", "fallback"
	)

	AggregationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_aggregation_fallbacks_total",
			Help: "Total number of aggregations answered by in-memory reduction",
		},
		[]string{"grouping", "reason"}, // reason: "unsupported", "forced"
	)

	AggregationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_aggregation_errors_total",
			Help: "Total number of failed revenue aggregations",
		},
		[]string{"grouping"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_cache_hits_total",
			Help: "Total number of revenue views served from cache",
		},
		[]string{"view"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_cache_misses_total",
			Help: "Total number of revenue views computed on a cache miss",
		},
		[]string{"view"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Scheduler Metrics
	SchedulerNextRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "refresh_scheduler_next_run_timestamp",
			Help: "Unix timestamp of the next scheduled refresh",
		},
	)

	SchedulerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_scheduler_runs_total",
			Help: "Total number of scheduled refresh runs",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application information",
		},
		[]string{"version", "go_version", "driver"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLoad records the outcome of one load. errorType is empty on success
// and otherwise one of the bounded values documented on LoadErrors.
func RecordLoad(duration time.Duration, rowsProcessed int, errorType string) {
	LoadDuration.Observe(duration.Seconds())
	LoadRowsProcessed.Add(float64(rowsProcessed))
	if errorType != "" {
		LoadErrors.WithLabelValues(errorType).Inc()
		return
	}
	LoadLastSuccess.Set(float64(time.Now().Unix()))
}

// SetLoadInProgress flips the in-progress gauge.
func SetLoadInProgress(running bool) {
	if running {
		LoadInProgress.Set(1)
	} else {
		LoadInProgress.Set(0)
	}
}

// RecordFlush records one flush checkpoint.
func RecordFlush(orders int) {
	LoadFlushSize.Observe(float64(orders))
}

// RecordAggregation records a revenue aggregation.
func RecordAggregation(grouping, path string, duration time.Duration, err error) {
	AggregationDuration.WithLabelValues(grouping, path).Observe(duration.Seconds())
	if err != nil {
		AggregationErrors.WithLabelValues(grouping).Inc()
	}
}

// RecordFallback counts an aggregation answered in memory.
func RecordFallback(grouping, reason string) {
	AggregationFallbacks.WithLabelValues(grouping, reason).Inc()
}

// RecordCacheLookup counts a revenue cache hit or miss.
func RecordCacheLookup(view string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(view).Inc()
		return
	}
	CacheMisses.WithLabelValues(view).Inc()
}

// RecordSchedulerRun records the result of a scheduled refresh.
func RecordSchedulerRun(err error) {
	if err != nil {
		SchedulerRuns.WithLabelValues("failure").Inc()
		return
	}
	SchedulerRuns.WithLabelValues("success").Inc()
}

// SetSchedulerNextRun publishes the next fire time.
func SetSchedulerNextRun(next time.Time) {
	SchedulerNextRun.Set(float64(next.Unix()))
}

// SetAppInfo publishes build and runtime information.
func SetAppInfo(version, driver string) {
	AppInfo.WithLabelValues(version, runtime.Version(), driver).Set(1)
}
