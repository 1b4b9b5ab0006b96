// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/revenuelens/internal/ingest"
	"github.com/tomtom215/revenuelens/internal/revenue"
)

// Error codes returned in the error envelope.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidRange   = "INVALID_RANGE"
	CodeSourceNotFound = "SOURCE_NOT_FOUND"
	CodeLoadInProgress = "LOAD_IN_PROGRESS"
	CodeMalformedRow   = "MALFORMED_ROW"
	CodeLoadFailed     = "LOAD_FAILED"
	CodeAggregation    = "AGGREGATION_FAILED"
	CodeDatabase       = "DATABASE_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
)

// classifyError maps a domain error onto an HTTP status, error code and the
// message shown to clients. Only client errors echo the underlying error
// text; server errors are logged instead.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, revenue.ErrInvalidRange):
		return http.StatusBadRequest, CodeInvalidRange, "startDate must be on or before endDate"
	case errors.Is(err, ingest.ErrSourceNotFound):
		return http.StatusNotFound, CodeSourceNotFound, err.Error()
	case errors.Is(err, ingest.ErrLoadInProgress):
		return http.StatusConflict, CodeLoadInProgress, "A load is already running"
	case errors.Is(err, ingest.ErrMalformedRow):
		return http.StatusInternalServerError, CodeMalformedRow, "Refresh failed"
	case errors.Is(err, ingest.ErrLoadFailed):
		return http.StatusInternalServerError, CodeLoadFailed, "Refresh failed"
	case errors.Is(err, revenue.ErrAggregationFailed):
		return http.StatusInternalServerError, CodeAggregation, "Failed to calculate revenue"
	default:
		return http.StatusInternalServerError, CodeDatabase, "Internal server error"
	}
}
