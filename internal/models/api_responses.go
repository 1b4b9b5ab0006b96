// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package models

import (
	"time"
)

// APIResponse is the envelope written by every HTTP endpoint.
//
// Success:
//
//	{
//	  "status": "success",
//	  "data": {"total": "1532.4"},
//	  "metadata": {"timestamp": "2026-03-01T02:00:00Z", "query_time_ms": 4}
//	}
//
// Error:
//
//	{
//	  "status": "error",
//	  "error": {"code": "INVALID_RANGE", "message": "startDate must be <= endDate"},
//	  "metadata": {"timestamp": "2026-03-01T02:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code with a human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
