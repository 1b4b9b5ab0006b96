// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package models defines the sales entities, revenue result rows and API
envelope shared by the store, the ingest engine, the aggregator and the HTTP
layer.

Entities:

  - Product: dimension keyed by product code ("P123")
  - Customer: dimension keyed by customer code ("C456")
  - Order: fact row keyed by the feed's integer order id

Money is carried as shopspring/decimal values. NetRevenue is the one formula
for per-order revenue:

	quantity × unitPrice × (1 − discount) + shippingCost
*/
package models
