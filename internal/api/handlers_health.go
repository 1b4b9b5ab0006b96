// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/revenuelens/internal/models"
	"github.com/tomtom215/revenuelens/internal/scheduler"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string              `json:"status"`
	Version           string              `json:"version"`
	Driver            string              `json:"driver"`
	DatabaseConnected bool                `json:"database_connected"`
	Tables            *models.TableCounts `json:"tables,omitempty"`
	LoadRunning       bool                `json:"load_running"`
	Scheduler         *scheduler.Status   `json:"scheduler,omitempty"`
	AggregateBreaker  string              `json:"aggregate_breaker"`
	Uptime            float64             `json:"uptime_seconds"`
}

// Health reports store connectivity, table sizes and background state. The
// ping and the counts run concurrently; a failing count only omits Tables.
//
// @Summary Get system health status
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		pingErr error
		counts  models.TableCounts
		countOK bool
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		pingErr = h.store.Ping(ctx)
		return nil
	})
	g.Go(func() error {
		c, err := h.store.GetTableCounts(ctx)
		if err == nil {
			counts, countOK = c, true
		}
		return nil
	})
	_ = g.Wait()

	status := HealthStatus{
		Status:            "healthy",
		Version:           h.version,
		Driver:            h.store.Driver(),
		DatabaseConnected: pingErr == nil,
		LoadRunning:       h.loader.IsRunning(),
		AggregateBreaker:  h.analytics.BreakerState(),
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if pingErr != nil {
		status.Status = "degraded"
	}
	if countOK {
		status.Tables = &counts
	}
	if h.scheduler != nil {
		s := h.scheduler.Status()
		status.Scheduler = &s
	}
	respondSuccess(w, status, start)
}

// HealthLive always answers 200 while the process serves HTTP.
//
// @Summary Liveness check
// @Tags Core
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady answers 503 until the store responds to a ping.
//
// @Summary Readiness check
// @Tags Core
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeDatabase, "Database unavailable", err)
		return
	}
	respondSuccess(w, map[string]string{"status": "ready"}, start)
}
