// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/cache"
	"github.com/tomtom215/revenuelens/internal/metrics"
	"github.com/tomtom215/revenuelens/internal/models"
)

// View names, used as cache key prefixes and the metrics view label.
const (
	ViewTotal      = "total"
	ViewByProduct  = "by_product"
	ViewByCategory = "by_category"
	ViewByRegion   = "by_region"
)

// CachedAggregator serves revenue views from a TTL cache in front of an
// Aggregator. Invalidate must be called after every completed load.
//
// Cached slices are shared between callers and must not be modified.
type CachedAggregator struct {
	agg   *Aggregator
	cache *cache.Cache
}

// NewCachedAggregator wraps agg. A non-positive ttl disables caching and every
// call goes straight to agg.
func NewCachedAggregator(agg *Aggregator, ttl time.Duration) *CachedAggregator {
	c := &CachedAggregator{agg: agg}
	if ttl > 0 {
		c.cache = cache.New(ttl)
	}
	return c
}

// Total returns the cached or computed total for r.
func (c *CachedAggregator) Total(ctx context.Context, r DateRange) (decimal.Decimal, error) {
	return cachedView(ctx, c, ViewTotal, r, c.agg.Total)
}

// ByProduct returns the cached or computed product breakdown for r.
func (c *CachedAggregator) ByProduct(ctx context.Context, r DateRange) ([]models.ProductRevenue, error) {
	return cachedView(ctx, c, ViewByProduct, r, c.agg.ByProduct)
}

// ByCategory returns the cached or computed category breakdown for r.
func (c *CachedAggregator) ByCategory(ctx context.Context, r DateRange) ([]models.CategoryRevenue, error) {
	return cachedView(ctx, c, ViewByCategory, r, c.agg.ByCategory)
}

// ByRegion returns the cached or computed region breakdown for r.
func (c *CachedAggregator) ByRegion(ctx context.Context, r DateRange) ([]models.RegionRevenue, error) {
	return cachedView(ctx, c, ViewByRegion, r, c.agg.ByRegion)
}

// BreakerState reports the underlying store circuit breaker state.
func (c *CachedAggregator) BreakerState() string {
	return c.agg.BreakerState()
}

// Invalidate drops every cached view. Queries already in flight do not
// repopulate the cache with their results.
func (c *CachedAggregator) Invalidate() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// CacheStatus is a snapshot of the view cache, reported by the refresh
// status endpoint.
type CacheStatus struct {
	Enabled    bool    `json:"enabled"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	Keys       int64   `json:"keys"`
	HitRate    float64 `json:"hit_rate_percent"`
	Generation uint64  `json:"generation"`
}

// CacheStatus returns the cache counters, or a disabled status when caching
// is off.
func (c *CachedAggregator) CacheStatus() CacheStatus {
	if c.cache == nil {
		return CacheStatus{}
	}
	stats := c.cache.GetStats()
	return CacheStatus{
		Enabled:    true,
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Keys:       stats.TotalKeys,
		HitRate:    c.cache.HitRate(),
		Generation: stats.Generation,
	}
}

// Close stops the cache's background sweep.
func (c *CachedAggregator) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// rangeKey is the cache identity of a DateRange. Only the calendar dates
// matter, so two ranges covering the same days share an entry.
type rangeKey struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (r DateRange) key() rangeKey {
	var k rangeKey
	if r.Start != nil {
		k.Start = startOfDay(*r.Start).Format(time.DateOnly)
	}
	if r.End != nil {
		k.End = startOfDay(*r.End).Format(time.DateOnly)
	}
	return k
}

func cachedView[T any](ctx context.Context, c *CachedAggregator, view string, r DateRange, compute func(context.Context, DateRange) (T, error)) (T, error) {
	if c.cache == nil {
		return compute(ctx, r)
	}
	if err := r.Validate(); err != nil {
		var zero T
		return zero, err
	}

	key := cache.GenerateKey(view, r.key())
	if v, ok := c.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.RecordCacheLookup(view, true)
			return typed, nil
		}
	}
	metrics.RecordCacheLookup(view, false)

	gen := c.cache.Generation()
	v, err := compute(ctx, r)
	if err != nil {
		return v, err
	}
	c.cache.SetIfGeneration(key, v, gen)
	return v, nil
}
