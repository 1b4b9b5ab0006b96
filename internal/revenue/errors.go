// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import "errors"

var (
	// ErrInvalidRange is returned when the start date is after the end date.
	// No query is issued.
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrAggregationFailed wraps store failures other than the known
	// aggregate capability gap.
	ErrAggregationFailed = errors.New("revenue aggregation failed")
)
