// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	_ "github.com/tomtom215/revenuelens/docs"
	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/database"
	"github.com/tomtom215/revenuelens/internal/ingest"
	"github.com/tomtom215/revenuelens/internal/models"
	"github.com/tomtom215/revenuelens/internal/revenue"
)

const feed = "OrderId,ProductId,CustomerId,ProductName,Category,Region,OrderDate,Quantity,UnitPrice,Discount,ShippingCost\n" +
	"1001,P1,C1,Widget,Tools,North,2024-01-05,3,10.00,0.10,5.00\n" +
	"1002,P2,C2,Gadget,Toys,South,2024-01-06,1,19.99,0,0\n" +
	"1003,P1,,Widget,Tools,North,2024-02-01,2,10.00,0.5,3.25\n"

// decodeData unmarshals an envelope's data into v.
func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
}

func TestRouter_LoadThenQuery(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{
		Driver:    config.DriverDuckDB,
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	source := filepath.Join(t.TempDir(), "sales.csv")
	loader := ingest.NewLoader(ingest.DatabaseStore(db), nil, nil)
	views := revenue.NewCachedAggregator(revenue.NewAggregator(db, nil), time.Minute)
	t.Cleanup(views.Close)
	loader.SetOnLoadCompleted(func(int, time.Duration) { views.Invalidate() })
	h := NewHandler(db, loader, views, nil, source, "test")
	router := NewRouter(h, NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})).SetupChi()

	rec, env := do(t, router, http.MethodPost, "/api/v1/revenue/refresh")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != CodeSourceNotFound {
		t.Fatalf("refresh without source = %d %s, want 404 %s", rec.Code, rec.Body.String(), CodeSourceNotFound)
	}

	writeSource(t, source, feed)

	for range 2 {
		rec, env = do(t, router, http.MethodPost, "/api/v1/revenue/refresh")
		if rec.Code != http.StatusOK {
			t.Fatalf("refresh = %d: %s", rec.Code, rec.Body.String())
		}
		var result models.RefreshResult
		decodeData(t, env, &result)
		if result.Loaded != 3 {
			t.Errorf("Loaded = %d, want 3", result.Loaded)
		}
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/revenue/total")
	if rec.Code != http.StatusOK {
		t.Fatalf("total = %d: %s", rec.Code, rec.Body.String())
	}
	var total models.RevenueTotal
	decodeData(t, env, &total)
	if total.Total.String() != "65.24" {
		t.Errorf("total = %s, want 65.24", total.Total)
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/revenue/by_region?startDate=2024-01-01&endDate=2024-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("by_region = %d: %s", rec.Code, rec.Body.String())
	}
	var regions []models.RegionRevenue
	decodeData(t, env, &regions)
	if len(regions) != 2 {
		t.Fatalf("len(regions) = %d, want 2", len(regions))
	}
	if models.StringValue(regions[0].Region) != "North" || regions[0].Revenue.String() != "32" {
		t.Errorf("regions[0] = %s %s, want North 32", models.StringValue(regions[0].Region), regions[0].Revenue)
	}
	if models.StringValue(regions[1].Region) != "South" || regions[1].Revenue.String() != "19.99" {
		t.Errorf("regions[1] = %s %s, want South 19.99", models.StringValue(regions[1].Region), regions[1].Revenue)
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/revenue/debug/orders/count")
	if rec.Code != http.StatusOK {
		t.Fatalf("orders/count = %d", rec.Code)
	}
	var count OrderCountResponse
	decodeData(t, env, &count)
	if count.Count != 3 {
		t.Errorf("order count = %d, want 3", count.Count)
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/revenue/debug/products/sample?limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("products/sample = %d", rec.Code)
	}
	var products models.Sample[models.Product]
	decodeData(t, env, &products)
	if products.Count != 1 || products.Sample[0].ID != "P1" {
		t.Errorf("products sample = %+v, want one row P1", products)
	}

	// A completed load must not leave the cached total behind.
	writeSource(t, source, feed+"1004,P2,C1,Gadget,Toys,South,2024-01-07,1,1.00,0,0\n")
	rec, _ = do(t, router, http.MethodPost, "/api/v1/revenue/refresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh = %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/revenue/total")
	if rec.Code != http.StatusOK {
		t.Fatalf("total = %d", rec.Code)
	}
	decodeData(t, env, &total)
	if total.Total.String() != "66.24" {
		t.Errorf("total after reload = %s, want 66.24", total.Total)
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/revenue/refresh/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh/status = %d", rec.Code)
	}
	var status RefreshStatusResponse
	decodeData(t, env, &status)
	if status.Cache == nil || !status.Cache.Enabled {
		t.Fatalf("cache status = %+v, want an enabled cache", status.Cache)
	}
	// Three loads completed, each clearing the cache once.
	if status.Cache.Generation != 3 || status.Cache.Keys != 1 {
		t.Errorf("cache status = %+v, want generation 3 holding the fresh total", status.Cache)
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeLoader{}, &fakeAnalytics{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /swagger/doc.json = %d", rec.Code)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if doc.Info.Title != "RevenueLens API" || doc.BasePath != "/api/v1" {
		t.Errorf("doc info = %q at %q", doc.Info.Title, doc.BasePath)
	}
	for _, path := range []string{"/revenue/refresh", "/revenue/total", "/revenue/by_product", "/health/ready"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("doc.json missing path %s", path)
		}
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Errorf("GET /swagger/index.html = %d", rec.Code)
	}
}
