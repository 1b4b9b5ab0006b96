// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"time"
)

// LoadStats holds statistics about one load.
type LoadStats struct {
	// LoadID correlates log lines of one run.
	LoadID string

	// Source is the feed path.
	Source string

	// Overwrite is set when the load cleared all tables first.
	Overwrite bool

	// TotalRows is the number of rows read from the feed.
	TotalRows int

	// Processed is the number of rows written to the fact table.
	Processed int

	ProductsInserted  int
	ProductsUpdated   int
	CustomersInserted int
	CustomersUpdated  int
	OrdersInserted    int
	OrdersUpdated     int

	// Flushes counts flush checkpoints.
	Flushes int

	// Cancelled is set when the caller cancelled mid-batch and the processed
	// prefix was committed.
	Cancelled bool

	StartTime time.Time
	EndTime   time.Time

	// Error is the failure message, empty on success.
	Error string
}

// Duration returns the duration of the load.
func (s *LoadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Progress returns the load progress as a percentage (0-100).
func (s *LoadStats) Progress() float64 {
	if s.TotalRows == 0 {
		return 0
	}
	return float64(s.Processed) / float64(s.TotalRows) * 100
}

// RowsPerSecond returns the load rate.
func (s *LoadStats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Processed) / duration
}

// LoadSummary is the JSON view of LoadStats.
type LoadSummary struct {
	LoadID            string    `json:"load_id"`
	Status            string    `json:"status"`
	Source            string    `json:"source"`
	Overwrite         bool      `json:"overwrite"`
	Progress          float64   `json:"progress"`
	TotalRows         int       `json:"total_rows"`
	Processed         int       `json:"processed"`
	ProductsInserted  int       `json:"products_inserted"`
	ProductsUpdated   int       `json:"products_updated"`
	CustomersInserted int       `json:"customers_inserted"`
	CustomersUpdated  int       `json:"customers_updated"`
	OrdersInserted    int       `json:"orders_inserted"`
	OrdersUpdated     int       `json:"orders_updated"`
	RowsPerSec        float64   `json:"rows_per_second"`
	ElapsedSeconds    float64   `json:"elapsed_seconds"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time,omitempty"`
	Error             string    `json:"error,omitempty"`
}

// ToSummary converts LoadStats to a LoadSummary with calculated fields.
func (s *LoadStats) ToSummary(running bool) *LoadSummary {
	summary := &LoadSummary{
		LoadID:            s.LoadID,
		Source:            s.Source,
		Overwrite:         s.Overwrite,
		Progress:          s.Progress(),
		TotalRows:         s.TotalRows,
		Processed:         s.Processed,
		ProductsInserted:  s.ProductsInserted,
		ProductsUpdated:   s.ProductsUpdated,
		CustomersInserted: s.CustomersInserted,
		CustomersUpdated:  s.CustomersUpdated,
		OrdersInserted:    s.OrdersInserted,
		OrdersUpdated:     s.OrdersUpdated,
		RowsPerSec:        s.RowsPerSecond(),
		ElapsedSeconds:    s.Duration().Seconds(),
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		Error:             s.Error,
	}

	switch {
	case running:
		summary.Status = "running"
	case s.Error != "":
		summary.Status = "failed"
	case s.Cancelled:
		summary.Status = "cancelled"
	default:
		summary.Status = "completed"
	}

	return summary
}
