// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/revenuelens/internal/database/query"
	"github.com/tomtom215/revenuelens/internal/models"
)

// lookupChunk bounds the number of ids bound into one IN clause.
const lookupChunk = 500

// LoadTx is one load's transaction over the sales tables. It is not safe for
// concurrent use. Exactly one of Commit or Rollback must be called.
type LoadTx struct {
	tx      *sql.Tx
	dialect dialect
}

// BeginLoad starts the transaction used by a single ingest run.
func (db *DB) BeginLoad(ctx context.Context) (*LoadTx, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin load transaction: %w", err)
	}
	return &LoadTx{tx: tx, dialect: db.dialect}, nil
}

// Commit commits the load.
func (t *LoadTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

// Rollback aborts the load. Rolling back a finished transaction is not an error.
func (t *LoadTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back load: %w", err)
	}
	return nil
}

// ClearAll deletes orders, then products, then customers.
func (t *LoadTx) ClearAll(ctx context.Context) error {
	for _, table := range []string{"orders", "products", "customers"} {
		if _, err := t.tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// ProductsByID returns the stored products among ids.
func (t *LoadTx) ProductsByID(ctx context.Context, ids []string) (map[string]models.Product, error) {
	found := make(map[string]models.Product, len(ids))
	err := forEachChunk(ids, func(chunk []string) error {
		q, args := inQuery(`SELECT product_id, name, category FROM products`, "product_id", chunk)
		rows, err := t.tx.QueryContext(ctx, t.dialect.bind(q), args...)
		if err != nil {
			return fmt.Errorf("failed to query products: %w", err)
		}
		defer closeWithLog(rows, nil, "rows")

		for rows.Next() {
			var p models.Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Category); err != nil {
				return fmt.Errorf("failed to scan product: %w", err)
			}
			found[p.ID] = p
		}
		return rows.Err()
	})
	return found, err
}

// CustomersByID returns the stored customers among ids.
func (t *LoadTx) CustomersByID(ctx context.Context, ids []string) (map[string]models.Customer, error) {
	found := make(map[string]models.Customer, len(ids))
	err := forEachChunk(ids, func(chunk []string) error {
		q, args := inQuery(`SELECT customer_id, name, email, address FROM customers`, "customer_id", chunk)
		rows, err := t.tx.QueryContext(ctx, t.dialect.bind(q), args...)
		if err != nil {
			return fmt.Errorf("failed to query customers: %w", err)
		}
		defer closeWithLog(rows, nil, "rows")

		for rows.Next() {
			var c models.Customer
			if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Address); err != nil {
				return fmt.Errorf("failed to scan customer: %w", err)
			}
			found[c.ID] = c
		}
		return rows.Err()
	})
	return found, err
}

// OrderCustomers returns, for each stored order among ids, its customer id
// (nil when the stored order has none). Absence from the map means the order
// does not exist.
func (t *LoadTx) OrderCustomers(ctx context.Context, ids []int64) (map[int64]*string, error) {
	found := make(map[int64]*string, len(ids))
	err := forEachChunk(ids, func(chunk []int64) error {
		q, args := inQuery(`SELECT order_id, customer_id FROM orders`, "order_id", chunk)
		rows, err := t.tx.QueryContext(ctx, t.dialect.bind(q), args...)
		if err != nil {
			return fmt.Errorf("failed to query orders: %w", err)
		}
		defer closeWithLog(rows, nil, "rows")

		for rows.Next() {
			var (
				id         int64
				customerID *string
			)
			if err := rows.Scan(&id, &customerID); err != nil {
				return fmt.Errorf("failed to scan order: %w", err)
			}
			found[id] = customerID
		}
		return rows.Err()
	})
	return found, err
}

// WriteProducts inserts new products and updates existing ones.
func (t *LoadTx) WriteProducts(ctx context.Context, inserts, updates []models.Product) error {
	if err := t.execEach(ctx,
		`INSERT INTO products (product_id, name, category) VALUES (?, ?, ?)`,
		len(inserts), func(i int) []interface{} {
			p := inserts[i]
			return []interface{}{p.ID, p.Name, nullable(p.Category)}
		}); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	if err := t.execEach(ctx,
		`UPDATE products SET name = ?, category = ? WHERE product_id = ?`,
		len(updates), func(i int) []interface{} {
			p := updates[i]
			return []interface{}{p.Name, nullable(p.Category), p.ID}
		}); err != nil {
		return fmt.Errorf("failed to update products: %w", err)
	}
	return nil
}

// WriteCustomers inserts new customers and updates existing ones.
func (t *LoadTx) WriteCustomers(ctx context.Context, inserts, updates []models.Customer) error {
	if err := t.execEach(ctx,
		`INSERT INTO customers (customer_id, name, email, address) VALUES (?, ?, ?, ?)`,
		len(inserts), func(i int) []interface{} {
			c := inserts[i]
			return []interface{}{c.ID, nullable(c.Name), nullable(c.Email), nullable(c.Address)}
		}); err != nil {
		return fmt.Errorf("failed to insert customers: %w", err)
	}
	if err := t.execEach(ctx,
		`UPDATE customers SET name = ?, email = ?, address = ? WHERE customer_id = ?`,
		len(updates), func(i int) []interface{} {
			c := updates[i]
			return []interface{}{nullable(c.Name), nullable(c.Email), nullable(c.Address), c.ID}
		}); err != nil {
		return fmt.Errorf("failed to update customers: %w", err)
	}
	return nil
}

// WriteOrders inserts new orders and overwrites existing ones in full.
func (t *LoadTx) WriteOrders(ctx context.Context, inserts, updates []models.Order) error {
	d := t.dialect
	insertSQL := fmt.Sprintf(`INSERT INTO orders (order_id, order_date, product_id, customer_id, region,
		quantity, unit_price, discount, shipping_cost, payment_method)
		VALUES (?, ?, ?, ?, ?, ?, %s, %s, %s, ?)`,
		d.moneyParam(), d.discountParam(), d.moneyParam())
	if err := t.execEach(ctx, insertSQL, len(inserts), func(i int) []interface{} {
		o := inserts[i]
		return []interface{}{
			o.ID, d.timeArg(o.OrderDate), o.ProductID, nullable(o.CustomerID), nullable(o.Region),
			o.Quantity, moneyArg(o.UnitPrice), moneyArg(o.Discount), moneyArg(o.ShippingCost),
			nullable(o.PaymentMethod),
		}
	}); err != nil {
		return fmt.Errorf("failed to insert orders: %w", err)
	}

	updateSQL := fmt.Sprintf(`UPDATE orders SET order_date = ?, product_id = ?, customer_id = ?, region = ?,
		quantity = ?, unit_price = %s, discount = %s, shipping_cost = %s, payment_method = ?
		WHERE order_id = ?`,
		d.moneyParam(), d.discountParam(), d.moneyParam())
	if err := t.execEach(ctx, updateSQL, len(updates), func(i int) []interface{} {
		o := updates[i]
		return []interface{}{
			d.timeArg(o.OrderDate), o.ProductID, nullable(o.CustomerID), nullable(o.Region),
			o.Quantity, moneyArg(o.UnitPrice), moneyArg(o.Discount), moneyArg(o.ShippingCost),
			nullable(o.PaymentMethod), o.ID,
		}
	}); err != nil {
		return fmt.Errorf("failed to update orders: %w", err)
	}
	return nil
}

// execEach prepares q once and executes it n times with args(i).
func (t *LoadTx) execEach(ctx context.Context, q string, n int, args func(i int) []interface{}) error {
	if n == 0 {
		return nil
	}
	stmt, err := t.tx.PrepareContext(ctx, t.dialect.bind(q))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, nil, "prepared statement")

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

// nullable binds a nil pointer as NULL and otherwise the pointed-to value.
func nullable(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// inQuery appends "WHERE column IN (...)" to base.
func inQuery[K comparable](base, column string, ids []K) (string, []interface{}) {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	where, args := query.NewWhereBuilder().AddIn(column, values).BuildWithPrefix()
	return base + " " + where, args
}

// forEachChunk calls fn on consecutive slices of at most lookupChunk ids.
func forEachChunk[K any](ids []K, fn func([]K) error) error {
	for start := 0; start < len(ids); start += lookupChunk {
		end := start + lookupChunk
		if end > len(ids) {
			end = len(ids)
		}
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}
