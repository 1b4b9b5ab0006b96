// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/ingest"
	"github.com/tomtom215/revenuelens/internal/models"
	"github.com/tomtom215/revenuelens/internal/revenue"
	"github.com/tomtom215/revenuelens/internal/scheduler"
)

type fakeLoader struct {
	loaded    int
	err       error
	running   bool
	summary   *ingest.LoadSummary
	calls     atomic.Int32
	source    string
	overwrite bool
}

func (f *fakeLoader) Load(_ context.Context, source string, overwrite bool) (int, error) {
	f.calls.Add(1)
	f.source, f.overwrite = source, overwrite
	return f.loaded, f.err
}

func (f *fakeLoader) IsRunning() bool { return f.running }

func (f *fakeLoader) Summary(context.Context) (*ingest.LoadSummary, error) { return f.summary, nil }

type fakeAnalytics struct {
	total     decimal.Decimal
	err       error
	calls     atomic.Int32
	lastRange revenue.DateRange
}

func (f *fakeAnalytics) Total(_ context.Context, r revenue.DateRange) (decimal.Decimal, error) {
	f.calls.Add(1)
	f.lastRange = r
	return f.total, f.err
}

func (f *fakeAnalytics) ByProduct(context.Context, revenue.DateRange) ([]models.ProductRevenue, error) {
	f.calls.Add(1)
	return nil, f.err
}

func (f *fakeAnalytics) ByCategory(context.Context, revenue.DateRange) ([]models.CategoryRevenue, error) {
	f.calls.Add(1)
	return nil, f.err
}

func (f *fakeAnalytics) ByRegion(context.Context, revenue.DateRange) ([]models.RegionRevenue, error) {
	f.calls.Add(1)
	return nil, f.err
}

func (f *fakeAnalytics) BreakerState() string { return "closed" }

// cachingAnalytics adds cache counters to fakeAnalytics.
type cachingAnalytics struct {
	fakeAnalytics
	status revenue.CacheStatus
}

func (c *cachingAnalytics) CacheStatus() revenue.CacheStatus { return c.status }

type fakeStore struct {
	pingErr   error
	lastLimit int
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }
func (f *fakeStore) Driver() string             { return "duckdb" }

func (f *fakeStore) CountOrders(context.Context) (int64, error) { return 42, nil }

func (f *fakeStore) GetTableCounts(context.Context) (models.TableCounts, error) {
	return models.TableCounts{Orders: 42, Products: 3, Customers: 2}, nil
}

func (f *fakeStore) SampleOrders(_ context.Context, limit int) ([]models.Order, error) {
	f.lastLimit = limit
	return []models.Order{{ID: 1001, ProductID: "P1"}}, nil
}

func (f *fakeStore) SampleProducts(_ context.Context, limit int) ([]models.Product, error) {
	f.lastLimit = limit
	return nil, nil
}

func (f *fakeStore) SampleCustomers(_ context.Context, limit int) ([]models.Customer, error) {
	f.lastLimit = limit
	return nil, errors.New("connection reset")
}

type fakeStatus struct{}

func (fakeStatus) Status() scheduler.Status {
	return scheduler.Status{State: scheduler.StateWaiting.String(), Enabled: true, Hour: 2}
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func newTestRouter(store *fakeStore, loader *fakeLoader, analytics Analytics) http.Handler {
	h := NewHandler(store, loader, analytics, fakeStatus{}, "data/sales.csv", "test")
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	return NewRouter(h, mw).SetupChi()
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: body is not an envelope: %v\n%s", method, target, err, rec.Body.String())
	}
	return rec, env
}

// wantError checks the status code and error code of a failed request.
func wantError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d: %s", rec.Code, status, rec.Body.String())
	}
	if env.Error == nil {
		t.Fatalf("no error in body: %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %s, want %s", env.Error.Code, code)
	}
	if env.Status != "error" {
		t.Errorf("status field = %q, want error", env.Status)
	}
}

func TestRefresh_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing source", fmt.Errorf("%w: data/sales.csv", ingest.ErrSourceNotFound), http.StatusNotFound, CodeSourceNotFound},
		{"load running", ingest.ErrLoadInProgress, http.StatusConflict, CodeLoadInProgress},
		{"malformed row", &ingest.RowError{Line: 3, Column: "Quantity", Value: "x", Err: errors.New("bad")}, http.StatusInternalServerError, CodeMalformedRow},
		{"merge failure", fmt.Errorf("%w: disk full", ingest.ErrLoadFailed), http.StatusInternalServerError, CodeLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeStore{}, &fakeLoader{err: tt.err}, &fakeAnalytics{})
			rec, env := do(t, router, http.MethodPost, "/api/v1/revenue/refresh")
			wantError(t, rec, env, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestRefresh_Success(t *testing.T) {
	loader := &fakeLoader{loaded: 5}
	router := newTestRouter(&fakeStore{}, loader, &fakeAnalytics{})

	rec, env := do(t, router, http.MethodPost, "/api/v1/revenue/refresh?overwrite=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var result models.RefreshResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Loaded != 5 || !result.Overwrite {
		t.Errorf("result = %+v, want 5 rows with overwrite", result)
	}
	if loader.source != "data/sales.csv" || !loader.overwrite {
		t.Errorf("loader called with %q overwrite=%v", loader.source, loader.overwrite)
	}
}

func TestRefresh_InvalidOverwrite(t *testing.T) {
	loader := &fakeLoader{}
	router := newTestRouter(&fakeStore{}, loader, &fakeAnalytics{})

	rec, env := do(t, router, http.MethodPost, "/api/v1/revenue/refresh?overwrite=maybe")
	wantError(t, rec, env, http.StatusBadRequest, CodeValidation)
	if n := loader.calls.Load(); n != 0 {
		t.Errorf("loader calls = %d, want 0", n)
	}
}

func TestRevenueViews_RangeHandling(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantCalls  int32
	}{
		{"no bounds", "", http.StatusOK, "", 1},
		{"same day", "?startDate=2024-01-05&endDate=2024-01-05", http.StatusOK, "", 1},
		{"rfc3339 bounds", "?startDate=2024-01-01T00:00:00Z&endDate=2024-01-31T12:00:00Z", http.StatusOK, "", 1},
		{"start after end", "?startDate=2024-02-01&endDate=2024-01-01", http.StatusBadRequest, CodeInvalidRange, 0},
		{"unparsable date", "?startDate=Jan%205", http.StatusBadRequest, CodeValidation, 0},
	}

	for _, view := range []string{"total", "by_product", "by_category", "by_region"} {
		for _, tt := range tests {
			t.Run(view+"/"+tt.name, func(t *testing.T) {
				analytics := &fakeAnalytics{total: decimal.RequireFromString("32")}
				router := newTestRouter(&fakeStore{}, &fakeLoader{}, analytics)

				rec, env := do(t, router, http.MethodGet, "/api/v1/revenue/"+view+tt.query)
				if tt.wantCode != "" {
					wantError(t, rec, env, tt.wantStatus, tt.wantCode)
				} else if rec.Code != tt.wantStatus {
					t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
				}
				if n := analytics.calls.Load(); n != tt.wantCalls {
					t.Errorf("analytics calls = %d, want %d", n, tt.wantCalls)
				}
			})
		}
	}
}

func TestRevenueTotal_Body(t *testing.T) {
	analytics := &fakeAnalytics{total: decimal.RequireFromString("76.765")}
	router := newTestRouter(&fakeStore{}, &fakeLoader{}, analytics)

	rec, env := do(t, router, http.MethodGet, "/api/v1/revenue/total?startDate=2024-01-05&endDate=2024-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body models.RevenueTotal
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total.String() != "76.765" {
		t.Errorf("total = %s, want 76.765", body.Total)
	}

	r := analytics.lastRange
	if r.Start == nil || r.End == nil {
		t.Fatalf("range = %+v, want both bounds", r)
	}
	if !r.Start.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) || !r.End.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range = %s..%s", r.Start, r.End)
	}
}

func TestRevenueViews_EmptyListIsArray(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeLoader{}, &fakeAnalytics{})
	for _, view := range []string{"by_product", "by_category", "by_region"} {
		_, env := do(t, router, http.MethodGet, "/api/v1/revenue/"+view)
		if string(env.Data) != "[]" {
			t.Errorf("%s data = %s, want []", view, env.Data)
		}
	}
}

func TestRevenueViews_AggregationFailure(t *testing.T) {
	analytics := &fakeAnalytics{err: fmt.Errorf("%w: region: %w", revenue.ErrAggregationFailed, errors.New("io error"))}
	router := newTestRouter(&fakeStore{}, &fakeLoader{}, analytics)

	rec, env := do(t, router, http.MethodGet, "/api/v1/revenue/by_region")
	wantError(t, rec, env, http.StatusInternalServerError, CodeAggregation)
	if strings.Contains(env.Error.Message, "io error") {
		t.Errorf("message %q leaks the internal error", env.Error.Message)
	}
}

func TestDebugSamples(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantLimit  int
	}{
		{"orders default limit", "/api/v1/revenue/debug/orders/sample", http.StatusOK, 20},
		{"products default limit", "/api/v1/revenue/debug/products/sample", http.StatusOK, 50},
		{"explicit limit", "/api/v1/revenue/debug/orders/sample?limit=5", http.StatusOK, 5},
		{"limit too small", "/api/v1/revenue/debug/orders/sample?limit=0", http.StatusBadRequest, 0},
		{"limit too large", "/api/v1/revenue/debug/orders/sample?limit=1001", http.StatusBadRequest, 0},
		{"limit not a number", "/api/v1/revenue/debug/products/sample?limit=ten", http.StatusBadRequest, 0},
		{"store failure", "/api/v1/revenue/debug/customers/sample", http.StatusInternalServerError, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			router := newTestRouter(store, &fakeLoader{}, &fakeAnalytics{})
			rec, _ := do(t, router, http.MethodGet, tt.target)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if store.lastLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", store.lastLimit, tt.wantLimit)
			}
		})
	}
}

func TestDebugOrderCount(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeLoader{}, &fakeAnalytics{})
	rec, env := do(t, router, http.MethodGet, "/api/v1/revenue/debug/orders/count")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body OrderCountResponse
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 42 {
		t.Errorf("count = %d, want 42", body.Count)
	}
}

func TestRefreshStatus(t *testing.T) {
	loader := &fakeLoader{running: true, summary: &ingest.LoadSummary{LoadID: "load-1", Status: "running", Processed: 10}}

	t.Run("uncached analytics", func(t *testing.T) {
		router := newTestRouter(&fakeStore{}, loader, &fakeAnalytics{})
		rec, env := do(t, router, http.MethodGet, "/api/v1/revenue/refresh/status")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var body RefreshStatusResponse
		if err := json.Unmarshal(env.Data, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body.Running {
			t.Error("running = false")
		}
		if body.LastLoad == nil || body.LastLoad.LoadID != "load-1" {
			t.Errorf("last load = %+v, want load-1", body.LastLoad)
		}
		if body.Scheduler == nil || body.Scheduler.State != "waiting_for_next_window" {
			t.Errorf("scheduler = %+v", body.Scheduler)
		}
		if body.BreakerState != "closed" {
			t.Errorf("breaker = %q, want closed", body.BreakerState)
		}
		if body.Cache != nil {
			t.Errorf("cache = %+v, want omitted for uncached analytics", body.Cache)
		}
	})

	t.Run("cached analytics", func(t *testing.T) {
		analytics := &cachingAnalytics{status: revenue.CacheStatus{Enabled: true, Hits: 3, Misses: 1, Keys: 1, HitRate: 75, Generation: 2}}
		router := newTestRouter(&fakeStore{}, loader, analytics)
		_, env := do(t, router, http.MethodGet, "/api/v1/revenue/refresh/status")

		var body RefreshStatusResponse
		if err := json.Unmarshal(env.Data, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Cache == nil || *body.Cache != analytics.status {
			t.Errorf("cache = %+v, want %+v", body.Cache, analytics.status)
		}
	})
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := newTestRouter(&fakeStore{}, &fakeLoader{}, &fakeAnalytics{})
		rec, env := do(t, router, http.MethodGet, "/api/v1/health")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var body HealthStatus
		if err := json.Unmarshal(env.Data, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != "healthy" || !body.DatabaseConnected {
			t.Errorf("health = %+v, want healthy and connected", body)
		}
		if body.Tables == nil || body.Tables.Orders != 42 {
			t.Errorf("tables = %+v, want 42 orders", body.Tables)
		}
		if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
		}
	})

	t.Run("degraded and not ready", func(t *testing.T) {
		store := &fakeStore{pingErr: errors.New("closed")}
		router := newTestRouter(store, &fakeLoader{}, &fakeAnalytics{})

		_, env := do(t, router, http.MethodGet, "/api/v1/health")
		var body HealthStatus
		if err := json.Unmarshal(env.Data, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != "degraded" {
			t.Errorf("status = %q, want degraded", body.Status)
		}

		rec, _ := do(t, router, http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("ready = %d, want 503", rec.Code)
		}
	})
}

func TestRateLimit_Rejects(t *testing.T) {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute})
	h := NewHandler(&fakeStore{}, &fakeLoader{}, &fakeAnalytics{}, nil, "data/sales.csv", "test")
	router := NewRouter(h, mw).SetupChi()

	rec, _ := do(t, router, http.MethodGet, "/api/v1/revenue/total")
	if rec.Code != http.StatusOK {
		t.Fatalf("first request = %d", rec.Code)
	}

	rec, env := do(t, router, http.MethodGet, "/api/v1/revenue/total")
	wantError(t, rec, env, http.StatusTooManyRequests, CodeRateLimited)
}

func TestSanitizeLogValue(t *testing.T) {
	tests := map[string]string{
		"a\nb\rc": `a\x0ab\x0dc`,
		"plain":   "plain",
	}
	for in, want := range tests {
		if got := sanitizeLogValue(in); got != want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", in, got, want)
		}
	}
}
