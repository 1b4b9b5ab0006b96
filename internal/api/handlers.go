// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/ingest"
	"github.com/tomtom215/revenuelens/internal/models"
	"github.com/tomtom215/revenuelens/internal/revenue"
	"github.com/tomtom215/revenuelens/internal/scheduler"
)

// Loader runs and reports sales loads. *ingest.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, source string, overwrite bool) (int, error)
	IsRunning() bool
	Summary(ctx context.Context) (*ingest.LoadSummary, error)
}

// Analytics answers revenue queries. *revenue.Aggregator satisfies it.
type Analytics interface {
	Total(ctx context.Context, r revenue.DateRange) (decimal.Decimal, error)
	ByProduct(ctx context.Context, r revenue.DateRange) ([]models.ProductRevenue, error)
	ByCategory(ctx context.Context, r revenue.DateRange) ([]models.CategoryRevenue, error)
	ByRegion(ctx context.Context, r revenue.DateRange) ([]models.RegionRevenue, error)
	BreakerState() string
}

// CacheReporter is implemented by Analytics backends that cache views.
// *revenue.CachedAggregator satisfies it.
type CacheReporter interface {
	CacheStatus() revenue.CacheStatus
}

// SchedulerStatus reports the refresh scheduler. *scheduler.Scheduler
// satisfies it.
type SchedulerStatus interface {
	Status() scheduler.Status
}

// Store is the read side the debug and health endpoints need.
// *database.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	Driver() string
	CountOrders(ctx context.Context) (int64, error)
	GetTableCounts(ctx context.Context) (models.TableCounts, error)
	SampleOrders(ctx context.Context, limit int) ([]models.Order, error)
	SampleProducts(ctx context.Context, limit int) ([]models.Product, error)
	SampleCustomers(ctx context.Context, limit int) ([]models.Customer, error)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_revenue.go: refresh trigger and revenue views
//   - handlers_debug.go: order count and table samples
//   - handlers_health.go: health check
type Handler struct {
	store     Store
	loader    Loader
	analytics Analytics
	scheduler SchedulerStatus
	source    string
	version   string
	startTime time.Time
}

// NewHandler creates the API handler. source is the feed path passed to
// every interactive refresh. sched may be nil when scheduling is not wired.
func NewHandler(store Store, loader Loader, analytics Analytics, sched SchedulerStatus, source, version string) *Handler {
	return &Handler{
		store:     store,
		loader:    loader,
		analytics: analytics,
		scheduler: sched,
		source:    source,
		version:   version,
		startTime: time.Now(),
	}
}
