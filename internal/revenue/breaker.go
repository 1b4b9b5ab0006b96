// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/database"
	"github.com/tomtom215/revenuelens/internal/logging"
	"github.com/tomtom215/revenuelens/internal/metrics"
)

const breakerName = "revenue-store"

// storeBreaker guards store reads. Capability errors and caller cancellation
// are not failures: only a store that errors on reads it should answer trips
// the circuit.
//
// The breaker uses real time for its open timeout. Tests that need it to trip
// set BreakerMaxFailures low rather than waiting.
type storeBreaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

func newStoreBreaker(cfg *config.AnalyticsConfig) *storeBreaker {
	maxFailures := uint32(5)
	openTimeout := 30 * time.Second
	halfOpen := uint32(1)
	if cfg != nil {
		if cfg.BreakerMaxFailures > 0 {
			maxFailures = cfg.BreakerMaxFailures
		}
		if cfg.BreakerOpenTimeout > 0 {
			openTimeout = cfg.BreakerOpenTimeout
		}
		if cfg.BreakerHalfOpenQueries > 0 {
			halfOpen = cfg.BreakerHalfOpenQueries
		}
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: halfOpen,
		Timeout:     openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},

		IsSuccessful: isBenign,

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &storeBreaker{cb: cb}
}

// guarded runs fn through the breaker and casts its result.
func guarded[T any](b *storeBreaker, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		case isBenign(err):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	typed, ok := result.(T)
	if !ok && result != nil {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func isBenign(err error) bool {
	return err == nil ||
		errors.Is(err, database.ErrAggregateUnsupported) ||
		errors.Is(err, context.Canceled)
}

// State returns the breaker state name.
func (b *storeBreaker) State() string {
	return b.cb.State().String()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
