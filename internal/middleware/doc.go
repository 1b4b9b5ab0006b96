// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package middleware provides chi-compatible HTTP middleware shared by every
RevenueLens route.

Key Components:

  - RequestID: propagates X-Request-ID or generates one, and stores it in the
    context so logging.Ctx and response metadata pick it up
  - AccessLog: one structured zerolog line per request, debug by default,
    warn when slow, error on 5xx
  - PrometheusMetrics: request count, latency histogram and in-flight gauge
    labeled by chi route pattern

Middleware Stack:

internal/api composes them with chi's own middleware:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Route("/api/v1/revenue", func(r chi.Router) {
	    r.Use(rateLimit)
	    r.Use(middleware.PrometheusMetrics)
	    ...
	})

PrometheusMetrics must sit inside a chi router so the route pattern is known
when the handler returns.
*/
package middleware
