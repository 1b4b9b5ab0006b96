// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package validation validates HTTP request parameters with
// go-playground/validator v10.
//
// A single validator instance is built lazily and shared; it caches struct
// metadata and is safe for concurrent use. On top of the built-in tags it
// registers:
//
//   - isodate: a calendar date (2006-01-02) or RFC 3339 timestamp, the same
//     formats ParseDate accepts
//
// Failures convert to the API error envelope through ToAPIError with code
// VALIDATION_ERROR.
//
//	type revenueRangeRequest struct {
//	    StartDate string `validate:"omitempty,isodate"`
//	    EndDate   string `validate:"omitempty,isodate"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
