// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package api exposes the sales loader and the revenue aggregator over HTTP
using the chi router.

Endpoints:

	POST /api/v1/revenue/refresh?overwrite=bool      load the configured feed
	GET  /api/v1/revenue/refresh/status              running flag, last load, scheduler
	GET  /api/v1/revenue/total                       summed net revenue
	GET  /api/v1/revenue/by_product                  revenue per product id
	GET  /api/v1/revenue/by_category                 revenue per category
	GET  /api/v1/revenue/by_region                   revenue per region
	GET  /api/v1/revenue/debug/orders/count          stored order count
	GET  /api/v1/revenue/debug/{orders,products,customers}/sample?limit=n
	GET  /api/v1/health[/live|/ready]
	GET  /metrics

Revenue views accept startDate and endDate as 2006-01-02 or RFC 3339. Both
bounds are inclusive calendar days.

Every JSON response uses the models.APIResponse envelope:

	{"status":"success","data":{"total":"76.765"},"metadata":{"timestamp":"...","query_time_ms":3}}
	{"status":"error","data":null,"metadata":{...},"error":{"code":"INVALID_RANGE","message":"..."}}

Error mapping:

  - VALIDATION_ERROR, INVALID_RANGE: 400
  - SOURCE_NOT_FOUND: 404
  - LOAD_IN_PROGRESS: 409
  - RATE_LIMITED: 429
  - everything else: 500, with details logged and not returned

GET /api/v1/health/ready answers 503 while the store does not respond to a
ping.

The handler depends on small interfaces (Loader, Analytics, Store,
SchedulerStatus) so tests can substitute fakes.
*/
package api
