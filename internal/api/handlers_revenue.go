// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/revenuelens/internal/ingest"
	"github.com/tomtom215/revenuelens/internal/logging"
	"github.com/tomtom215/revenuelens/internal/models"
	"github.com/tomtom215/revenuelens/internal/revenue"
	"github.com/tomtom215/revenuelens/internal/scheduler"
)

// RefreshStatusResponse is the body of GET /revenue/refresh/status.
type RefreshStatusResponse struct {
	Running      bool                 `json:"running"`
	LastLoad     *ingest.LoadSummary  `json:"last_load"`
	Scheduler    *scheduler.Status    `json:"scheduler,omitempty"`
	BreakerState string               `json:"aggregate_breaker"`
	Cache        *revenue.CacheStatus `json:"cache,omitempty"`
}

// Refresh loads the configured sales feed.
//
// @Summary Trigger a sales load
// @Description Reads the configured CSV feed and merges it into the store. With overwrite=true all existing rows are removed first.
// @Tags Revenue
// @Produce json
// @Param overwrite query bool false "Clear existing data before loading"
// @Success 200 {object} models.APIResponse{data=models.RefreshResult}
// @Failure 404 {object} models.APIResponse "Source feed not found"
// @Failure 409 {object} models.APIResponse "A load is already running"
// @Router /revenue/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := RefreshRequest{Overwrite: r.URL.Query().Get("overwrite")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	overwrite := false
	if req.Overwrite != "" {
		overwrite, _ = strconv.ParseBool(req.Overwrite)
	}

	// A client hanging up must not cut the load short.
	ctx := context.WithoutCancel(r.Context())
	loaded, err := h.loader.Load(ctx, h.source, overwrite)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("loaded", loaded).
		Bool("overwrite", overwrite).
		Msg("Interactive refresh completed")

	respondSuccess(w, models.RefreshResult{
		Loaded:    loaded,
		Overwrite: overwrite,
		Source:    h.source,
		LoadedAt:  time.Now().UTC(),
	}, start)
}

// RefreshStatus reports the running load or the last recorded one, plus the
// scheduler's state and, when views are cached, the cache counters.
//
// @Summary Get load status
// @Tags Revenue
// @Produce json
// @Success 200 {object} models.APIResponse{data=RefreshStatusResponse}
// @Router /revenue/refresh/status [get]
func (h *Handler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.loader.Summary(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := RefreshStatusResponse{
		Running:      h.loader.IsRunning(),
		LastLoad:     summary,
		BreakerState: h.analytics.BreakerState(),
	}
	if h.scheduler != nil {
		status := h.scheduler.Status()
		resp.Scheduler = &status
	}
	if cr, ok := h.analytics.(CacheReporter); ok {
		status := cr.CacheStatus()
		resp.Cache = &status
	}
	respondSuccess(w, resp, start)
}

// dateRange validates and parses the request's startDate/endDate. It writes
// the error response itself and reports false on failure.
func (h *Handler) dateRange(w http.ResponseWriter, r *http.Request) (revenue.DateRange, bool) {
	req := dateRangeRequestFrom(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return revenue.DateRange{}, false
	}
	dr, err := parseDateRange(&req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return revenue.DateRange{}, false
	}
	if err := dr.Validate(); err != nil {
		respondDomainError(w, r, err)
		return revenue.DateRange{}, false
	}
	return dr, true
}

// RevenueTotal returns the summed net revenue.
//
// @Summary Total revenue
// @Tags Revenue
// @Produce json
// @Param startDate query string false "Inclusive start (2006-01-02 or RFC 3339)"
// @Param endDate query string false "Inclusive end (2006-01-02 or RFC 3339)"
// @Success 200 {object} models.APIResponse{data=models.RevenueTotal}
// @Failure 400 {object} models.APIResponse "Invalid date or range"
// @Router /revenue/total [get]
func (h *Handler) RevenueTotal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dr, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	total, err := h.analytics.Total(r.Context(), dr)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, models.RevenueTotal{Total: total}, start)
}

// RevenueByProduct returns revenue per product id with its name.
//
// @Summary Revenue by product
// @Tags Revenue
// @Produce json
// @Param startDate query string false "Inclusive start"
// @Param endDate query string false "Inclusive end"
// @Success 200 {object} models.APIResponse{data=[]models.ProductRevenue}
// @Router /revenue/by_product [get]
func (h *Handler) RevenueByProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dr, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	rows, err := h.analytics.ByProduct(r.Context(), dr)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.ProductRevenue{}
	}
	respondSuccess(w, rows, start)
}

// RevenueByCategory returns revenue per product category.
//
// @Summary Revenue by category
// @Tags Revenue
// @Produce json
// @Param startDate query string false "Inclusive start"
// @Param endDate query string false "Inclusive end"
// @Success 200 {object} models.APIResponse{data=[]models.CategoryRevenue}
// @Router /revenue/by_category [get]
func (h *Handler) RevenueByCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dr, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	rows, err := h.analytics.ByCategory(r.Context(), dr)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.CategoryRevenue{}
	}
	respondSuccess(w, rows, start)
}

// RevenueByRegion returns revenue per order region.
//
// @Summary Revenue by region
// @Tags Revenue
// @Produce json
// @Param startDate query string false "Inclusive start"
// @Param endDate query string false "Inclusive end"
// @Success 200 {object} models.APIResponse{data=[]models.RegionRevenue}
// @Router /revenue/by_region [get]
func (h *Handler) RevenueByRegion(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dr, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	rows, err := h.analytics.ByRegion(r.Context(), dr)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.RegionRevenue{}
	}
	respondSuccess(w, rows, start)
}
