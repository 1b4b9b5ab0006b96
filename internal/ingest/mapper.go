// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/models"
)

// Row is one typed line of the sales feed. String fields are trimmed and may
// be empty. Line is the 1-based line number in the source.
type Row struct {
	Line int

	OrderID       int64
	OrderDate     time.Time
	ProductID     string
	ProductName   string
	Category      string
	Region        string
	Quantity      int
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	ShippingCost  decimal.Decimal
	PaymentMethod string

	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
}

type column int

const (
	colOrderID column = iota
	colOrderDate
	colProductID
	colProductName
	colCategory
	colRegion
	colQuantity
	colUnitPrice
	colDiscount
	colShippingCost
	colPaymentMethod
	colCustomerID
	colCustomerName
	colCustomerEmail
	colCustomerAddress
	numColumns
)

var columnNames = [numColumns]string{
	colOrderID:         "OrderId",
	colOrderDate:       "OrderDate",
	colProductID:       "ProductId",
	colProductName:     "ProductName",
	colCategory:        "Category",
	colRegion:          "Region",
	colQuantity:        "Quantity",
	colUnitPrice:       "UnitPrice",
	colDiscount:        "Discount",
	colShippingCost:    "ShippingCost",
	colPaymentMethod:   "PaymentMethod",
	colCustomerID:      "CustomerId",
	colCustomerName:    "CustomerName",
	colCustomerEmail:   "CustomerEmail",
	colCustomerAddress: "CustomerAddress",
}

// requiredColumns are the typed fields of an order. Each must be present in
// the header and non-empty in every record.
var requiredColumns = []column{
	colOrderID,
	colOrderDate,
	colQuantity,
	colUnitPrice,
	colDiscount,
	colShippingCost,
}

var (
	errMissingColumn = errors.New("required column missing from header")
	errEmptyCell     = errors.New("required value is empty")
)

// headerAliases maps normalized header text to a column. Canonical names are
// added in init.
var headerAliases = map[string]column{
	"date":     colOrderDate,
	"shipping": colShippingCost,
	"email":    colCustomerEmail,
	"address":  colCustomerAddress,
	"payment":  colPaymentMethod,
}

func init() {
	for c, name := range columnNames {
		headerAliases[normalizeHeader(name)] = column(c)
	}
}

// normalizeHeader folds case and drops separators so that "OrderId",
// "order_id" and "Order ID" compare equal.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '\t':
			return -1
		}
		return r
	}, strings.ToLower(h))
}

// dateLayouts are tried in order. Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01/02/2006 15:04:05",
}

// RowReader yields typed rows from a CSV stream. The first record is the
// header. Unknown columns are ignored. Text columns may be absent; the typed
// order columns are required.
type RowReader struct {
	cr     *csv.Reader
	index  [numColumns]int
	header bool
}

// NewRowReader returns a reader positioned at the start of r.
func NewRowReader(r io.Reader) *RowReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	return &RowReader{cr: cr}
}

// Next returns the next row, or io.EOF when the input is exhausted.
func (rr *RowReader) Next() (Row, error) {
	if !rr.header {
		if err := rr.readHeader(); err != nil {
			return Row{}, err
		}
	}

	record, err := rr.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, rr.parseError(err)
	}
	line, _ := rr.cr.FieldPos(0)
	return rr.mapRecord(record, line)
}

func (rr *RowReader) readHeader() error {
	hdr, err := rr.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return rr.parseError(err)
	}
	for i := range rr.index {
		rr.index[i] = -1
	}
	for i, h := range hdr {
		if c, ok := headerAliases[normalizeHeader(h)]; ok && rr.index[c] < 0 {
			rr.index[c] = i
		}
	}
	line, _ := rr.cr.FieldPos(0)
	for _, c := range requiredColumns {
		if rr.index[c] < 0 {
			return &RowError{Line: line, Column: columnNames[c], Err: errMissingColumn}
		}
	}
	rr.header = true
	return nil
}

func (rr *RowReader) parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RowError{Line: pe.Line, Column: strconv.Itoa(pe.Column), Err: pe.Err}
	}
	return fmt.Errorf("read sales feed: %w", err)
}

// cell returns the trimmed value of c, or "" when the column is absent.
func (rr *RowReader) cell(record []string, c column) string {
	i := rr.index[c]
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (rr *RowReader) mapRecord(record []string, line int) (Row, error) {
	row := Row{
		Line:            line,
		ProductID:       rr.cell(record, colProductID),
		ProductName:     rr.cell(record, colProductName),
		Category:        rr.cell(record, colCategory),
		Region:          rr.cell(record, colRegion),
		PaymentMethod:   rr.cell(record, colPaymentMethod),
		CustomerID:      rr.cell(record, colCustomerID),
		CustomerName:    rr.cell(record, colCustomerName),
		CustomerEmail:   rr.cell(record, colCustomerEmail),
		CustomerAddress: rr.cell(record, colCustomerAddress),
	}

	fail := func(c column, value string, err error) (Row, error) {
		return Row{}, &RowError{Line: line, Column: columnNames[c], Value: value, Err: err}
	}

	required := func(c column) (string, error) {
		v := rr.cell(record, c)
		if v == "" {
			return "", &RowError{Line: line, Column: columnNames[c], Err: errEmptyCell}
		}
		return v, nil
	}

	v, err := required(colOrderID)
	if err != nil {
		return Row{}, err
	}
	if row.OrderID, err = strconv.ParseInt(v, 10, 64); err != nil {
		return fail(colOrderID, v, err)
	}

	if v, err = required(colQuantity); err != nil {
		return Row{}, err
	}
	if row.Quantity, err = strconv.Atoi(v); err != nil {
		return fail(colQuantity, v, err)
	}

	if v, err = required(colOrderDate); err != nil {
		return Row{}, err
	}
	if row.OrderDate, err = parseOrderDate(v); err != nil {
		return fail(colOrderDate, v, err)
	}

	// Money is kept at MoneyScale digits, the precision every store column
	// has, so a value reads back the same from each backend.
	for _, f := range []struct {
		c   column
		dst *decimal.Decimal
	}{
		{colUnitPrice, &row.UnitPrice},
		{colDiscount, &row.Discount},
		{colShippingCost, &row.ShippingCost},
	} {
		if v, err = required(f.c); err != nil {
			return Row{}, err
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fail(f.c, v, err)
		}
		*f.dst = d.Round(models.MoneyScale)
	}

	return row, nil
}

func parseOrderDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// ReadAll drains r into an ordered batch.
func ReadAll(r io.Reader) ([]Row, error) {
	rr := NewRowReader(r)
	var rows []Row
	for {
		row, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadFile opens path and returns every row in file order.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration or an operator request
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer func() { _ = f.Close() }()

	return ReadAll(f)
}
