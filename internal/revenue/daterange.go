// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import (
	"fmt"
	"time"

	"github.com/tomtom215/revenuelens/internal/database"
)

// DateRange bounds orders by calendar date, inclusive at both ends. Either
// bound may be nil. Only the UTC calendar date of each bound is used: an order
// at 23:59 on End is inside the range.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange builds a range from optional bounds.
func NewDateRange(start, end *time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// Validate returns ErrInvalidRange when Start falls on a later date than End.
func (r DateRange) Validate() error {
	if r.Start == nil || r.End == nil {
		return nil
	}
	if startOfDay(*r.Start).After(startOfDay(*r.End)) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			r.Start.UTC().Format(time.DateOnly), r.End.UTC().Format(time.DateOnly))
	}
	return nil
}

// filter converts the inclusive date range into the store's half-open
// timestamp interval [start 00:00, end+1 00:00).
func (r DateRange) filter() database.OrderDateFilter {
	var f database.OrderDateFilter
	if r.Start != nil {
		from := startOfDay(*r.Start)
		f.From = &from
	}
	if r.End != nil {
		until := startOfDay(*r.End).AddDate(0, 0, 1)
		f.Until = &until
	}
	return f
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
