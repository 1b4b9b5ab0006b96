// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package revenue computes NetRevenue aggregates over committed orders.
//
//	NetRevenue = Quantity × UnitPrice × (1 − Discount) + ShippingCost
//
// Four views are offered: Total, ByProduct, ByCategory and ByRegion. Each
// takes an optional DateRange that is inclusive of both calendar days (UTC).
//
// # Computation Paths
//
// The aggregator first asks the store to evaluate SUM(NetRevenue) with exact
// decimal arithmetic. If the store reports database.ErrAggregateUnsupported,
// either because the backend lacks exact decimals (SQLite) or because the
// engine rejected the arithmetic at run time, it reads the per-order figures
// and reduces them in memory with shopspring/decimal. Both paths round to
// models.RevenueScale places, so they produce identical values and ordering.
// AnalyticsConfig.ForceFallback skips the native attempt.
//
// # Grouping Rules
//
//   - ByProduct groups on the order's product id. ProductName is nil when the
//     id does not resolve to a stored product. Names are read by the same
//     statement as the sums, so they always match the same committed load.
//   - ByCategory groups on the resolved product's category. Orders whose
//     product does not resolve are excluded; a resolved product with no
//     category contributes to the nil group.
//   - ByRegion groups on the order's own region. Orders with no region form
//     the nil group.
//
// Groups are ordered with the nil key first, then ascending by key.
//
// # Failure Handling
//
// Store calls run behind a sony/gobreaker circuit breaker. Capability errors
// and caller cancellation do not count as failures. A start date after the
// end date returns ErrInvalidRange before any query is issued; other store
// failures are wrapped with ErrAggregationFailed.
//
// # Caching
//
// CachedAggregator serves the same views from a TTL cache. Call Invalidate
// after every completed load; ingest.Loader.SetOnLoadCompleted is the usual
// hook.
//
// Example:
//
//	agg := revenue.NewAggregator(db, &cfg.Analytics)
//	total, err := agg.Total(ctx, revenue.NewDateRange(&start, &end))
package revenue
