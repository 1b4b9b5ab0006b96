// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueTotal is the response body of the total revenue endpoint.
type RevenueTotal struct {
	Total decimal.Decimal `json:"total"`
}

// ProductRevenue is revenue grouped by the order's product id.
// ProductName is nil when the id has no row in the products dimension.
type ProductRevenue struct {
	ProductID   string          `json:"product_id"`
	ProductName *string         `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CategoryRevenue is revenue grouped by the category of a resolved product.
type CategoryRevenue struct {
	Category *string         `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RegionRevenue is revenue grouped by the order's own region field.
type RegionRevenue struct {
	Region  *string         `json:"region"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OrderFigures is the per-order projection needed to evaluate NetRevenue,
// plus the grouping keys. ProductName and Category are only meaningful when
// ProductResolved is true.
type OrderFigures struct {
	ProductID       string
	ProductResolved bool
	ProductName     *string
	Category        *string
	Region          *string
	Quantity        int
	UnitPrice       decimal.Decimal
	Discount        decimal.Decimal
	ShippingCost    decimal.Decimal
}

// NetRevenue applies the revenue formula to the projected fields.
func (f *OrderFigures) NetRevenue() decimal.Decimal {
	return NetRevenue(f.Quantity, f.UnitPrice, f.Discount, f.ShippingCost)
}

// TableCounts reports the row count of each sales table.
type TableCounts struct {
	Orders    int64 `json:"orders"`
	Products  int64 `json:"products"`
	Customers int64 `json:"customers"`
}

// Sample wraps a bounded listing returned by the debug endpoints.
type Sample[T any] struct {
	Count  int `json:"count"`
	Sample []T `json:"sample"`
}

// RefreshResult is the response body of the refresh endpoint.
type RefreshResult struct {
	Loaded    int       `json:"loaded"`
	Overwrite bool      `json:"overwrite"`
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
}
