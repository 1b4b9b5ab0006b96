// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import "net/http"

// Default sample sizes for the debug endpoints.
const (
	defaultOrderSample  = 20
	defaultEntitySample = 50
)

// DateRangeRequest holds the optional revenue query bounds.
type DateRangeRequest struct {
	StartDate string `validate:"omitempty,isodate"`
	EndDate   string `validate:"omitempty,isodate"`
}

func dateRangeRequestFrom(r *http.Request) DateRangeRequest {
	q := r.URL.Query()
	return DateRangeRequest{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}

// RefreshRequest holds the refresh trigger's query parameters.
type RefreshRequest struct {
	Overwrite string `validate:"omitempty,boolean"`
}

// SampleRequest holds a debug sample size.
type SampleRequest struct {
	Limit int `validate:"min=1,max=1000"`
}

func sampleRequestFrom(r *http.Request, defaultLimit int) SampleRequest {
	return SampleRequest{Limit: getIntParam(r, "limit", defaultLimit, 0)}
}
