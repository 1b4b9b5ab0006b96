// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/revenuelens/internal/models"
)

// OrderCountResponse is the body of GET /revenue/debug/orders/count.
type OrderCountResponse struct {
	Count int64 `json:"count"`
}

// DebugOrderCount returns the number of stored orders.
//
// @Summary Count orders
// @Tags Debug
// @Produce json
// @Success 200 {object} models.APIResponse{data=OrderCountResponse}
// @Router /revenue/debug/orders/count [get]
func (h *Handler) DebugOrderCount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := h.store.CountOrders(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, OrderCountResponse{Count: n}, start)
}

// DebugSampleOrders returns the first orders by id.
//
// @Summary Sample orders
// @Tags Debug
// @Produce json
// @Param limit query int false "Rows to return (1-1000)" default(20)
// @Success 200 {object} models.APIResponse{data=models.Sample[models.Order]}
// @Router /revenue/debug/orders/sample [get]
func (h *Handler) DebugSampleOrders(w http.ResponseWriter, r *http.Request) {
	serveSample(w, r, defaultOrderSample, h.store.SampleOrders)
}

// DebugSampleProducts returns the first products by id.
//
// @Summary Sample products
// @Tags Debug
// @Produce json
// @Param limit query int false "Rows to return (1-1000)" default(50)
// @Success 200 {object} models.APIResponse{data=models.Sample[models.Product]}
// @Router /revenue/debug/products/sample [get]
func (h *Handler) DebugSampleProducts(w http.ResponseWriter, r *http.Request) {
	serveSample(w, r, defaultEntitySample, h.store.SampleProducts)
}

// DebugSampleCustomers returns the first customers by id.
//
// @Summary Sample customers
// @Tags Debug
// @Produce json
// @Param limit query int false "Rows to return (1-1000)" default(50)
// @Success 200 {object} models.APIResponse{data=models.Sample[models.Customer]}
// @Router /revenue/debug/customers/sample [get]
func (h *Handler) DebugSampleCustomers(w http.ResponseWriter, r *http.Request) {
	serveSample(w, r, defaultEntitySample, h.store.SampleCustomers)
}

func serveSample[T any](w http.ResponseWriter, r *http.Request, defaultLimit int, fetch func(context.Context, int) ([]T, error)) {
	start := time.Now()
	req := sampleRequestFrom(r, defaultLimit)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	rows, err := fetch(r.Context(), req.Limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	respondSuccess(w, models.Sample[T]{Count: len(rows), Sample: rows}, start)
}
