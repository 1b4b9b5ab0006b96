// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/database/query"
	"github.com/tomtom215/revenuelens/internal/models"
)

// revenueExpr is NetRevenue evaluated by the store. models.NetRevenue is the
// in-memory twin and the two must stay in step.
const revenueExpr = "o.quantity * o.unit_price * (1 - o.discount) + o.shipping_cost"

// Grouping selects the GROUP BY key of a revenue aggregate.
type Grouping int

const (
	GroupNone Grouping = iota
	GroupProduct
	GroupCategory
	GroupRegion
)

// String returns the grouping name used in logs and metrics.
func (g Grouping) String() string {
	switch g {
	case GroupProduct:
		return "product"
	case GroupCategory:
		return "category"
	case GroupRegion:
		return "region"
	default:
		return "total"
	}
}

// OrderDateFilter bounds orders by order_date as a half-open interval
// [From, Until). Nil bounds are open.
type OrderDateFilter struct {
	From  *time.Time
	Until *time.Time
}

// RevenueGroup is one row of a grouped revenue aggregate. Key is nil for the
// ungrouped total and for NULL group values. Name is only set by GroupProduct,
// and only when the product id resolves; a stored product without a name
// yields an empty string.
type RevenueGroup struct {
	Key     *string
	Name    *string
	Revenue decimal.Decimal
}

func (db *DB) orderDateWhere(f OrderDateFilter) *query.WhereBuilder {
	var from, until interface{}
	if f.From != nil {
		from = db.dialect.timeArg(*f.From)
	}
	if f.Until != nil {
		until = db.dialect.timeArg(*f.Until)
	}
	return query.NewWhereBuilder().AddHalfOpenRange("o.order_date", from, until)
}

// SumRevenue evaluates SUM(NetRevenue) in the store, grouped by g.
//
// It returns ErrAggregateUnsupported (wrapped) when the backend cannot compute
// the sum exactly, either by capability or because the engine rejected the
// decimal arithmetic at run time.
func (db *DB) SumRevenue(ctx context.Context, f OrderDateFilter, g Grouping) ([]RevenueGroup, error) {
	if !db.dialect.decimalAggregate {
		return nil, fmt.Errorf("%s: %w", db.dialect.name, ErrAggregateUnsupported)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// The product name is read by the same statement as the sums, so a
	// breakdown never pairs figures and names from different loads.
	keyExpr, nameExpr, join := "", "NULL", ""
	groupBy := ""
	switch g {
	case GroupProduct:
		keyExpr = "o.product_id"
		nameExpr = "CASE WHEN p.product_id IS NULL THEN NULL ELSE COALESCE(p.name, '') END"
		join = "LEFT JOIN products p ON p.product_id = o.product_id"
		groupBy = "o.product_id, p.product_id, p.name"
	case GroupCategory:
		keyExpr = "p.category"
		join = "JOIN products p ON p.product_id = o.product_id"
	case GroupRegion:
		keyExpr = "o.region"
	default:
		keyExpr = "NULL"
	}
	if groupBy == "" && g != GroupNone {
		groupBy = keyExpr
	}

	where, args := db.orderDateWhere(f).BuildWithPrefix()
	sum := db.dialect.asText("COALESCE(SUM(" + revenueExpr + "), 0)")

	q := fmt.Sprintf("SELECT %s AS group_key, %s AS product_name, %s AS revenue FROM orders o %s %s",
		keyExpr, db.dialect.asText(nameExpr), sum, join, where)
	if groupBy != "" {
		q += " GROUP BY " + groupBy
	}

	rows, err := db.conn.QueryContext(ctx, db.dialect.bind(q), args...)
	if err != nil {
		return nil, classifyAggregateError(fmt.Errorf("revenue aggregate by %s: %w", g, err))
	}
	defer closeWithLog(rows, nil, "rows")

	var groups []RevenueGroup
	for rows.Next() {
		var (
			key  *string
			name *string
			raw  *string
		)
		if err := rows.Scan(&key, &name, &raw); err != nil {
			return nil, classifyAggregateError(fmt.Errorf("scan revenue aggregate: %w", err))
		}
		rev, err := parseStoredDecimal(raw)
		if err != nil {
			return nil, err
		}
		groups = append(groups, RevenueGroup{Key: key, Name: name, Revenue: rev})
	}
	if err := rows.Err(); err != nil {
		return nil, classifyAggregateError(fmt.Errorf("iterate revenue aggregate: %w", err))
	}
	return groups, nil
}

// OrderFigures returns the raw per-order fields needed to evaluate NetRevenue
// in memory, with the product dimension LEFT JOINed so callers can group by
// product name or category and see which references resolve.
func (db *DB) OrderFigures(ctx context.Context, f OrderDateFilter) ([]models.OrderFigures, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	d := db.dialect
	where, args := db.orderDateWhere(f).BuildWithPrefix()
	q := fmt.Sprintf(`SELECT o.product_id, o.region, p.product_id, p.name, p.category,
		o.quantity, %s, %s, %s
		FROM orders o LEFT JOIN products p ON p.product_id = o.product_id %s`,
		d.asText("o.unit_price"), d.asText("o.discount"), d.asText("o.shipping_cost"), where)

	rows, err := db.conn.QueryContext(ctx, d.bind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("query order figures: %w", err)
	}
	defer closeWithLog(rows, nil, "rows")

	var figures []models.OrderFigures
	for rows.Next() {
		var (
			fig               models.OrderFigures
			resolvedID        *string
			price, disc, ship *string
		)
		if err := rows.Scan(&fig.ProductID, &fig.Region, &resolvedID, &fig.ProductName, &fig.Category,
			&fig.Quantity, &price, &disc, &ship); err != nil {
			return nil, fmt.Errorf("scan order figures: %w", err)
		}
		fig.ProductResolved = resolvedID != nil
		if fig.UnitPrice, err = parseStoredDecimal(price); err != nil {
			return nil, err
		}
		if fig.Discount, err = parseStoredDecimal(disc); err != nil {
			return nil, err
		}
		if fig.ShippingCost, err = parseStoredDecimal(ship); err != nil {
			return nil, err
		}
		figures = append(figures, fig)
	}
	return figures, rows.Err()
}
