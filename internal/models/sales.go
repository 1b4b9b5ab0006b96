// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for prices, discounts
// and shipping costs.
const MoneyScale = 4

// RevenueScale is the exact scale of a NetRevenue value: quantity is an
// integer, price and discount each carry MoneyScale digits.
const RevenueScale = 2 * MoneyScale

var one = decimal.NewFromInt(1)

// Product is a row of the products dimension, keyed by the feed's product code.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category"`
}

// Customer is a row of the customers dimension. All attributes are optional.
type Customer struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// Order is a fact row. ID comes from the feed and is never generated.
// ProductID and CustomerID are informal references and may not resolve.
type Order struct {
	ID            int64           `json:"id"`
	OrderDate     time.Time       `json:"order_date"`
	ProductID     string          `json:"product_id"`
	CustomerID    *string         `json:"customer_id"`
	Region        *string         `json:"region"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Discount      decimal.Decimal `json:"discount"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	PaymentMethod *string         `json:"payment_method"`
}

// NetRevenue returns quantity × unitPrice × (1 − discount) + shippingCost.
func (o *Order) NetRevenue() decimal.Decimal {
	return NetRevenue(o.Quantity, o.UnitPrice, o.Discount, o.ShippingCost)
}

// NetRevenue is the revenue formula used by every in-memory computation.
// The SQL aggregate in internal/database evaluates the same expression.
func NetRevenue(quantity int, unitPrice, discount, shippingCost decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).
		Mul(unitPrice).
		Mul(one.Sub(discount)).
		Add(shippingCost)
}

// NormalizeRevenue brings a revenue figure to RevenueScale so results from the
// store and from in-memory reduction compare and print identically.
func NormalizeRevenue(d decimal.Decimal) decimal.Decimal {
	return d.Round(RevenueScale)
}

// OptionalString returns nil for blank input and a trimmed copy otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
