// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
database_schema.go - Database Schema Management

Tables:
  - products: product dimension keyed by the feed's product code
  - customers: customer dimension keyed by the feed's customer code
  - orders: fact table keyed by the feed's integer order id

Orders reference products and customers informally. There are no foreign key
constraints: a dangling product_id or customer_id is valid data and the
revenue queries account for it.

Index Strategy:
Only primary keys are declared. DuckDB rejects UPDATE of a column covered by
a secondary index inside the same transaction that inserted the row, and the
loader updates order_date and product_id freely.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sales tables if they do not exist.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, q := range db.tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", q, err)
		}
	}
	return nil
}

func (db *DB) tableCreationQueries() []string {
	d := db.dialect
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			product_id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			category TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id TEXT PRIMARY KEY,
			name TEXT,
			email TEXT,
			address TEXT
		);`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS orders (
			order_id BIGINT PRIMARY KEY,
			order_date %s NOT NULL,
			product_id TEXT NOT NULL,
			customer_id TEXT,
			region TEXT,
			quantity INTEGER NOT NULL DEFAULT 0,
			unit_price %s NOT NULL,
			discount %s NOT NULL,
			shipping_cost %s NOT NULL,
			payment_method TEXT
		);`, d.timeType, d.moneyType, d.discountType, d.moneyType),
	}
}
