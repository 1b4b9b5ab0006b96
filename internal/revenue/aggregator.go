// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/database"
	"github.com/tomtom215/revenuelens/internal/logging"
	"github.com/tomtom215/revenuelens/internal/metrics"
	"github.com/tomtom215/revenuelens/internal/models"
)

// Computation paths, used as the metrics path label.
const (
	PathNative   = "native"
	PathFallback = "fallback"
)

// Store is the read surface the aggregator needs. *database.DB satisfies it.
type Store interface {
	SumRevenue(ctx context.Context, f database.OrderDateFilter, g database.Grouping) ([]database.RevenueGroup, error)
	OrderFigures(ctx context.Context, f database.OrderDateFilter) ([]models.OrderFigures, error)
}

// Aggregator answers revenue questions over committed orders. It asks the
// store to aggregate first and reduces in memory when the store reports
// database.ErrAggregateUnsupported. Both paths return identical results.
type Aggregator struct {
	store         Store
	breaker       *storeBreaker
	forceFallback bool
	queryTimeout  time.Duration
}

// NewAggregator creates an aggregator. cfg may be nil.
func NewAggregator(store Store, cfg *config.AnalyticsConfig) *Aggregator {
	a := &Aggregator{
		store:   store,
		breaker: newStoreBreaker(cfg),
	}
	if cfg != nil {
		a.forceFallback = cfg.ForceFallback
		a.queryTimeout = cfg.QueryTimeout
	}
	return a
}

// BreakerState reports the store circuit breaker state (closed, half-open, open).
func (a *Aggregator) BreakerState() string {
	return a.breaker.State()
}

// Total sums NetRevenue over orders in r.
func (a *Aggregator) Total(ctx context.Context, r DateRange) (decimal.Decimal, error) {
	groups, _, err := a.aggregate(ctx, r, database.GroupNone)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Revenue)
	}
	return models.NormalizeRevenue(total), nil
}

// ByProduct groups revenue by product id. ProductName is nil when the id does
// not resolve to a stored product. Names come from the same read as the sums.
func (a *Aggregator) ByProduct(ctx context.Context, r DateRange) ([]models.ProductRevenue, error) {
	groups, _, err := a.aggregate(ctx, r, database.GroupProduct)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProductRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.ProductRevenue{
			ProductID:   models.StringValue(g.Key),
			ProductName: g.Name,
			Revenue:     g.Revenue,
		})
	}
	return out, nil
}

// ByCategory groups revenue by the category of each order's product. Orders
// whose product does not resolve are excluded.
func (a *Aggregator) ByCategory(ctx context.Context, r DateRange) ([]models.CategoryRevenue, error) {
	groups, _, err := a.aggregate(ctx, r, database.GroupCategory)
	if err != nil {
		return nil, err
	}
	out := make([]models.CategoryRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CategoryRevenue{Category: g.Key, Revenue: g.Revenue})
	}
	return out, nil
}

// ByRegion groups revenue by the order's own region.
func (a *Aggregator) ByRegion(ctx context.Context, r DateRange) ([]models.RegionRevenue, error) {
	groups, _, err := a.aggregate(ctx, r, database.GroupRegion)
	if err != nil {
		return nil, err
	}
	out := make([]models.RegionRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.RegionRevenue{Region: g.Key, Revenue: g.Revenue})
	}
	return out, nil
}

// aggregate validates r, then tries the store aggregate and falls back to an
// in-memory reduction. It returns the path that produced the result.
func (a *Aggregator) aggregate(ctx context.Context, r DateRange, g database.Grouping) ([]database.RevenueGroup, string, error) {
	if err := r.Validate(); err != nil {
		return nil, "", err
	}
	f := r.filter()
	start := time.Now()

	if a.forceFallback {
		metrics.RecordFallback(g.String(), "forced")
	} else {
		groups, err := guarded(a.breaker, func() ([]database.RevenueGroup, error) {
			qctx, cancel := a.queryContext(ctx)
			defer cancel()
			return a.store.SumRevenue(qctx, f, g)
		})
		if err == nil {
			metrics.RecordAggregation(g.String(), PathNative, time.Since(start), nil)
			return normalize(groups), PathNative, nil
		}
		if !errors.Is(err, database.ErrAggregateUnsupported) {
			metrics.RecordAggregation(g.String(), PathNative, time.Since(start), err)
			return nil, "", fmt.Errorf("%w: %s: %w", ErrAggregationFailed, g, err)
		}
		metrics.RecordFallback(g.String(), "unsupported")
		logging.Ctx(ctx).Debug().Err(err).Str("grouping", g.String()).Msg("Store aggregate unsupported, reducing in memory")
	}

	figures, err := guarded(a.breaker, func() ([]models.OrderFigures, error) {
		qctx, cancel := a.queryContext(ctx)
		defer cancel()
		return a.store.OrderFigures(qctx, f)
	})
	if err != nil {
		metrics.RecordAggregation(g.String(), PathFallback, time.Since(start), err)
		return nil, "", fmt.Errorf("%w: %s: %w", ErrAggregationFailed, g, err)
	}

	groups := normalize(reduce(figures, g))
	metrics.RecordAggregation(g.String(), PathFallback, time.Since(start), nil)
	return groups, PathFallback, nil
}

func (a *Aggregator) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.queryTimeout)
}
