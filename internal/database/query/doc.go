// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package query provides SQL query building utilities for the database package.
//
// Queries are written once with "?" placeholders. The WhereBuilder collects
// parameterized conditions, and RebindDollar converts the finished statement
// for drivers that number their parameters:
//
//	wb := query.NewWhereBuilder()
//	wb.AddHalfOpenRange("o.order_date", start, end)
//	where, args := wb.BuildWithPrefix()
//	q := "SELECT COUNT(*) FROM orders o " + where
//	// Postgres: query.RebindDollar(q)
package query
