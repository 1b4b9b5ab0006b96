// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the sales feed cannot be opened.
	ErrSourceNotFound = errors.New("sales source not found")

	// ErrMalformedRow is returned when a cell cannot be coerced to its field type.
	// The load is aborted before any write.
	ErrMalformedRow = errors.New("malformed sales row")

	// ErrLoadFailed wraps any failure during the transactional merge.
	// The transaction has been rolled back when it is returned.
	ErrLoadFailed = errors.New("sales load failed")

	// ErrLoadInProgress is returned when Load is called while another load runs.
	ErrLoadInProgress = errors.New("sales load already in progress")
)

// RowError describes a required column or cell that is missing, or a cell that
// failed type coercion.
type RowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

// Unwrap exposes both ErrMalformedRow and the underlying parse error.
func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

// errorType maps a load error onto the bounded error_type metric label.
func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSourceNotFound):
		return "source_not_found"
	case errors.Is(err, ErrMalformedRow):
		return "malformed_row"
	case errors.Is(err, ErrLoadInProgress):
		return "in_progress"
	default:
		return "store"
	}
}
