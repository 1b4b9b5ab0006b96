// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const salesHeader = "OrderId,ProductId,CustomerId,ProductName,Category,Region,OrderDate,Quantity,UnitPrice,Discount,ShippingCost,PaymentMethod,CustomerName,CustomerEmail,CustomerAddress\n"

// readOne reads input and fails unless it yields exactly one row.
func readOne(t *testing.T, input string) Row {
	t.Helper()
	rows, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	return rows[0]
}

func TestReadAll_FullRow(t *testing.T) {
	r := readOne(t, salesHeader+
		"1001,P1,C1,Widget,Tools,North,2024-01-05,3,10.00,0.10,5.00,Card,Ada,ada@example.com,1 Analytical Way\n")

	if r.Line != 2 || r.OrderID != 1001 || r.Quantity != 3 {
		t.Errorf("Line/OrderID/Quantity = %d/%d/%d, want 2/1001/3", r.Line, r.OrderID, r.Quantity)
	}
	if !r.OrderDate.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("OrderDate = %s", r.OrderDate)
	}

	text := map[string][2]string{
		"ProductID":       {r.ProductID, "P1"},
		"CustomerID":      {r.CustomerID, "C1"},
		"ProductName":     {r.ProductName, "Widget"},
		"Category":        {r.Category, "Tools"},
		"Region":          {r.Region, "North"},
		"UnitPrice":       {r.UnitPrice.String(), "10"},
		"Discount":        {r.Discount.String(), "0.1"},
		"ShippingCost":    {r.ShippingCost.String(), "5"},
		"PaymentMethod":   {r.PaymentMethod, "Card"},
		"CustomerName":    {r.CustomerName, "Ada"},
		"CustomerEmail":   {r.CustomerEmail, "ada@example.com"},
		"CustomerAddress": {r.CustomerAddress, "1 Analytical Way"},
	}
	for field, gw := range text {
		if gw[0] != gw[1] {
			t.Errorf("%s = %q, want %q", field, gw[0], gw[1])
		}
	}
}

func TestReadAll_HeaderTolerance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, r Row)
	}{
		{
			name:  "snake case and BOM",
			input: "\uFEFForder_id,order_date,quantity,unit_price,discount,shipping_cost,product_id\n7,2024-01-01,1,2.50,0,0,P7\n",
			check: func(t *testing.T, r Row) {
				if r.OrderID != 7 || r.ProductID != "P7" || r.UnitPrice.String() != "2.5" {
					t.Errorf("row = %+v", r)
				}
			},
		},
		{
			name:  "spaced headers and reordered columns",
			input: "Region, Order ID ,Quantity,Unit Price,Shipping,Discount,Date\nWest,9,4,1,0,0,2024-01-01\n",
			check: func(t *testing.T, r Row) {
				if r.OrderID != 9 || r.Region != "West" || r.Quantity != 4 {
					t.Errorf("row = %+v", r)
				}
			},
		},
		{
			name:  "unknown columns ignored and text columns optional",
			input: "OrderId,OrderDate,Quantity,UnitPrice,Discount,ShippingCost,Loyalty Tier\n3,2024-01-01,1,1,0,0,Gold\n",
			check: func(t *testing.T, r Row) {
				if r.OrderID != 3 || r.ProductID != "" || r.Region != "" {
					t.Errorf("row = %+v", r)
				}
			},
		},
		{
			name:  "short record leaves trailing text empty",
			input: "OrderId,OrderDate,Quantity,UnitPrice,Discount,ShippingCost,ProductId,Region\n4,2024-01-01,1,1,0,0,P4\n",
			check: func(t *testing.T, r Row) {
				if r.ProductID != "P4" || r.Region != "" {
					t.Errorf("ProductID/Region = %q/%q, want P4/empty", r.ProductID, r.Region)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, readOne(t, tt.input))
		})
	}
}

func TestReadAll_RoundsMoneyToStoredScale(t *testing.T) {
	r := readOne(t, salesHeader+"1,P1,,,,,2024-01-01,3,1.23456789,0.33333,0.00005,,,,\n")

	want := map[string]string{
		"UnitPrice":    "1.2346",
		"Discount":     "0.3333",
		"ShippingCost": "0.0001",
	}
	got := map[string]string{
		"UnitPrice":    r.UnitPrice.String(),
		"Discount":     r.Discount.String(),
		"ShippingCost": r.ShippingCost.String(),
	}
	for field, w := range want {
		if got[field] != w {
			t.Errorf("%s = %s, want %s", field, got[field], w)
		}
	}

	tiny := readOne(t, salesHeader+"2,P1,,,,,2024-01-01,1,0.00000001,0.5,0,,,,\n")
	if !tiny.UnitPrice.IsZero() {
		t.Errorf("UnitPrice = %s, want 0 after rounding", tiny.UnitPrice)
	}
}

func TestParseOrderDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-09T14:30:00Z", want},
		{"2024-03-09T16:30:00+02:00", want},
		{"2024-03-09 14:30:00", want},
		{"2024-03-09T14:30:00", want},
		{"2024-03-09", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"03/09/2024", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseOrderDate(tt.in)
		if err != nil {
			t.Errorf("parseOrderDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseOrderDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("parseOrderDate(%q) location = %s, want UTC", tt.in, got.Location())
		}
	}

	if _, err := parseOrderDate("9th of March"); err == nil {
		t.Error("parseOrderDate accepted free text")
	}
}

func TestReadAll_MalformedRow(t *testing.T) {
	const typed = "OrderId,OrderDate,Quantity,UnitPrice,Discount,ShippingCost\n"
	tests := []struct {
		name   string
		input  string
		column string
		line   int
		cause  error
	}{
		{"non-numeric quantity", salesHeader + "1,P1,C1,W,T,N,2024-01-01,three,1,0,0,,,,\n", "Quantity", 2, nil},
		{"bad price", typed + "1,2024-01-01,1,1.00,0,0\n2,2024-01-01,1,abc,0,0\n", "UnitPrice", 3, nil},
		{"bad order id", typed + "X12,2024-01-01,1,1,0,0\n", "OrderId", 2, nil},
		{"bad date", typed + "1,yesterday,1,1,0,0\n", "OrderDate", 2, nil},
		{"blank order id", typed + "1,2024-01-01,1,1,0,0\n ,2024-01-01,1,1,0,0\n", "OrderId", 3, errEmptyCell},
		{"blank order date", typed + "1,,1,1,0,0\n", "OrderDate", 2, errEmptyCell},
		{"blank quantity", typed + "1,2024-01-01,,1,0,0\n", "Quantity", 2, errEmptyCell},
		{"blank unit price", typed + "1,2024-01-01,1,,0,0\n", "UnitPrice", 2, errEmptyCell},
		{"blank discount", typed + "1,2024-01-01,1,1,,0\n", "Discount", 2, errEmptyCell},
		{"short record drops shipping", typed + "1,2024-01-01,1,1,0\n", "ShippingCost", 2, errEmptyCell},
		{"missing shipping column", "OrderId,OrderDate,Quantity,UnitPrice,Discount\n1,2024-01-01,1,1,0\n", "ShippingCost", 1, errMissingColumn},
		{"missing order id column", "ProductId,OrderDate,Quantity,UnitPrice,Discount,ShippingCost\nP1,2024-01-01,1,1,0,0\n", "OrderId", 1, errMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadAll(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("ReadAll returned %d rows, want error", len(rows))
			}
			if !errors.Is(err, ErrMalformedRow) {
				t.Errorf("error %v does not wrap ErrMalformedRow", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("error %v does not wrap %v", err, tt.cause)
			}

			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("error %T is not a *RowError", err)
			}
			if rowErr.Column != tt.column || rowErr.Line != tt.line {
				t.Errorf("RowError at %s line %d, want %s line %d", rowErr.Column, rowErr.Line, tt.column, tt.line)
			}
		})
	}
}

func TestRowReader_EmptyInput(t *testing.T) {
	rr := NewRowReader(strings.NewReader(""))
	if _, err := rr.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next on empty input = %v, want io.EOF", err)
	}

	rows, err := ReadAll(strings.NewReader(salesHeader))
	if err != nil {
		t.Fatalf("ReadAll header only: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("ReadFile error = %v, want ErrSourceNotFound", err)
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrSourceNotFound, "source_not_found"},
		{&RowError{Err: errors.New("x")}, "malformed_row"},
		{ErrLoadInProgress, "in_progress"},
		{ErrLoadFailed, "store"},
	}
	for _, tt := range tests {
		if got := errorType(tt.err); got != tt.want {
			t.Errorf("errorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
