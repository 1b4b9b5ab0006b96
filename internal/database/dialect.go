// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/database/query"
	"github.com/tomtom215/revenuelens/internal/models"
)

// sqliteTimeLayout is the text layout for order_date under SQLite. It sorts
// lexically in time order, which the range filter depends on.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// storedTimeLayout parses the VARCHAR rendering of order_date on every backend.
const storedTimeLayout = "2006-01-02 15:04:05.999999999"

// dialect captures the SQL differences between the supported backends.
type dialect struct {
	name string
	// sqlDriver is the database/sql driver name registered by the import.
	sqlDriver string
	// dollarParams rewrites "?" to "$n" before execution.
	dollarParams bool
	// decimalAggregate reports whether SUM over the revenue expression is
	// exact. SQLite stores money as TEXT and cannot sum it exactly.
	decimalAggregate bool

	moneyType    string
	discountType string
	timeType     string
	textCast     string
}

var dialects = map[string]dialect{
	config.DriverDuckDB: {
		name:             config.DriverDuckDB,
		sqlDriver:        "duckdb",
		decimalAggregate: true,
		moneyType:        "DECIMAL(18,4)",
		discountType:     "DECIMAL(9,4)",
		timeType:         "TIMESTAMP",
		textCast:         "VARCHAR",
	},
	config.DriverSQLite: {
		name:             config.DriverSQLite,
		sqlDriver:        "sqlite",
		decimalAggregate: false,
		moneyType:        "TEXT",
		discountType:     "TEXT",
		timeType:         "TEXT",
		textCast:         "TEXT",
	},
	config.DriverPostgres: {
		name:             config.DriverPostgres,
		sqlDriver:        "pgx",
		dollarParams:     true,
		decimalAggregate: true,
		moneyType:        "NUMERIC(18,4)",
		discountType:     "NUMERIC(9,4)",
		timeType:         "TIMESTAMP",
		textCast:         "VARCHAR",
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}
	return d, nil
}

// bind prepares a "?" query for the driver.
func (d dialect) bind(q string) string {
	if d.dollarParams {
		return query.RebindDollar(q)
	}
	return q
}

// moneyParam is the placeholder expression for a decimal parameter. Decimals
// travel as strings so no precision is lost in the driver.
func (d dialect) moneyParam() string {
	if d.name == config.DriverSQLite {
		return "?"
	}
	return "CAST(? AS " + d.moneyType + ")"
}

func (d dialect) discountParam() string {
	if d.name == config.DriverSQLite {
		return "?"
	}
	return "CAST(? AS " + d.discountType + ")"
}

// asText renders a column expression as text for exact decimal scanning.
func (d dialect) asText(expr string) string {
	return "CAST(" + expr + " AS " + d.textCast + ")"
}

// timeArg converts an order timestamp to the driver's bind value.
func (d dialect) timeArg(t time.Time) interface{} {
	t = t.UTC()
	if d.name == config.DriverSQLite {
		return t.Format(sqliteTimeLayout)
	}
	return t
}

// moneyArg converts a decimal to its bind value at MoneyScale, the scale of
// the DuckDB and Postgres money columns. SQLite stores the text unchanged, so
// rounding here keeps every backend holding the same value.
func moneyArg(v decimal.Decimal) string {
	return v.Round(models.MoneyScale).String()
}

// parseStoredTime parses the text rendering of order_date.
func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(storedTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// parseStoredDecimal parses the text rendering of a decimal column. NULL and
// empty values read as zero.
func parseStoredDecimal(s *string) (decimal.Decimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse stored decimal %q: %w", *s, err)
	}
	return v, nil
}
