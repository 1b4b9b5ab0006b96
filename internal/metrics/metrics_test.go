// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/revenue/total", "200"))

	RecordAPIRequest("GET", "/api/v1/revenue/total", "200", 25*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/revenue/total", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/revenue/total", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
}

func TestRecordLoad(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		errorType string
	}{
		{"success", 1200, ""},
		{"missing source", 0, "source_not_found"},
		{"malformed row", 0, "malformed_row"},
		{"store failure", 500, "store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rowsBefore := testutil.ToFloat64(LoadRowsProcessed)
			var errBefore float64
			if tt.errorType != "" {
				errBefore = testutil.ToFloat64(LoadErrors.WithLabelValues(tt.errorType))
			}

			RecordLoad(2*time.Second, tt.rows, tt.errorType)

			if got := testutil.ToFloat64(LoadRowsProcessed) - rowsBefore; got != float64(tt.rows) {
				t.Errorf("rows delta = %v, want %d", got, tt.rows)
			}
			if tt.errorType == "" {
				if testutil.ToFloat64(LoadLastSuccess) == 0 {
					t.Error("last success timestamp not set")
				}
				return
			}
			if got := testutil.ToFloat64(LoadErrors.WithLabelValues(tt.errorType)) - errBefore; got != 1 {
				t.Errorf("error delta = %v, want 1", got)
			}
		})
	}
}

func TestSetLoadInProgress(t *testing.T) {
	SetLoadInProgress(true)
	if testutil.ToFloat64(LoadInProgress) != 1 {
		t.Error("in-progress gauge should be 1")
	}
	SetLoadInProgress(false)
	if testutil.ToFloat64(LoadInProgress) != 0 {
		t.Error("in-progress gauge should be 0")
	}
}

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(AggregationFallbacks.WithLabelValues("region", "unsupported"))
	RecordFallback("region", "unsupported")
	if got := testutil.ToFloat64(AggregationFallbacks.WithLabelValues("region", "unsupported")) - before; got != 1 {
		t.Errorf("fallback delta = %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("total"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("total"))

	RecordCacheLookup("total", true)
	RecordCacheLookup("total", false)
	RecordCacheLookup("total", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("total")) - hits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("total")) - misses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

func TestRecordSchedulerRun(t *testing.T) {
	ok := testutil.ToFloat64(SchedulerRuns.WithLabelValues("success"))
	RecordSchedulerRun(nil)
	if testutil.ToFloat64(SchedulerRuns.WithLabelValues("success"))-ok != 1 {
		t.Error("success run not counted")
	}

	next := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	SetSchedulerNextRun(next)
	if testutil.ToFloat64(SchedulerNextRun) != float64(next.Unix()) {
		t.Error("next run gauge mismatch")
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates paired inc/dec
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if testutil.ToFloat64(APIActiveRequests) != start {
		t.Error("active requests did not return to baseline")
	}
}

// TestConcurrentMetricRecording tests thread-safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("GET", "/api/v1/health", "200", time.Millisecond)
			RecordAggregation("total", "native", time.Millisecond, nil)
			RecordFlush(500)
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		LoadDuration,
		LoadRowsProcessed,
		LoadErrors,
		LoadLastSuccess,
		LoadInProgress,
		LoadFlushSize,
		AggregationDuration,
		AggregationFallbacks,
		AggregationErrors,
		CacheHits,
		CacheMisses,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		SchedulerNextRun,
		SchedulerRuns,
		AppInfo,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	SetAppInfo("test", "duckdb")
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/revenue/total", "200", 25*time.Millisecond)
	}
}
