// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/revenuelens/internal/models"
)

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan function
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, nil, "rows")

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// CountOrders returns the number of stored orders.
func (db *DB) CountOrders(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// GetTableCounts returns the row count of each sales table.
func (db *DB) GetTableCounts(ctx context.Context) (models.TableCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c models.TableCounts
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM customers)`).Scan(&c.Orders, &c.Products, &c.Customers)
	if err != nil {
		return c, fmt.Errorf("failed to count tables: %w", err)
	}
	return c, nil
}

// SampleOrders returns up to limit orders ordered by id.
func (db *DB) SampleOrders(ctx context.Context, limit int) ([]models.Order, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	d := db.dialect
	q := fmt.Sprintf(`SELECT o.order_id, %s, o.product_id, o.customer_id, o.region, o.quantity,
		%s, %s, %s, o.payment_method
		FROM orders o ORDER BY o.order_id LIMIT ?`,
		d.asText("o.order_date"), d.asText("o.unit_price"), d.asText("o.discount"), d.asText("o.shipping_cost"))

	orders, err := queryAndScan(ctx, db.conn, d.bind(q), []interface{}{limit}, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to sample orders: %w", err)
	}
	return orders, nil
}

func scanOrder(rows *sql.Rows) (models.Order, error) {
	var (
		o                 models.Order
		date              string
		price, disc, ship *string
	)
	if err := rows.Scan(&o.ID, &date, &o.ProductID, &o.CustomerID, &o.Region, &o.Quantity,
		&price, &disc, &ship, &o.PaymentMethod); err != nil {
		return o, err
	}
	var err error
	if o.OrderDate, err = parseStoredTime(date); err != nil {
		return o, err
	}
	if o.UnitPrice, err = parseStoredDecimal(price); err != nil {
		return o, err
	}
	if o.Discount, err = parseStoredDecimal(disc); err != nil {
		return o, err
	}
	if o.ShippingCost, err = parseStoredDecimal(ship); err != nil {
		return o, err
	}
	return o, nil
}

// SampleProducts returns up to limit products ordered by id.
func (db *DB) SampleProducts(ctx context.Context, limit int) ([]models.Product, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	q := db.dialect.bind(`SELECT product_id, name, category FROM products ORDER BY product_id LIMIT ?`)
	products, err := queryAndScan(ctx, db.conn, q, []interface{}{limit}, func(rows *sql.Rows) (models.Product, error) {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Category)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample products: %w", err)
	}
	return products, nil
}

// SampleCustomers returns up to limit customers ordered by id.
func (db *DB) SampleCustomers(ctx context.Context, limit int) ([]models.Customer, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	q := db.dialect.bind(`SELECT customer_id, name, email, address FROM customers ORDER BY customer_id LIMIT ?`)
	customers, err := queryAndScan(ctx, db.conn, q, []interface{}{limit}, func(rows *sql.Rows) (models.Customer, error) {
		var c models.Customer
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Address)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample customers: %w", err)
	}
	return customers, nil
}
