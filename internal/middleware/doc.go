// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package middleware provides chi-compatible HTTP middleware.

Key Components:

  - RequestID: request and correlation IDs for log tracing
  - RequestLogger: one structured log line per request
  - PrometheusMetrics: request count and latency by chi route pattern

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

CORS and rate limiting come from go-chi/cors and go-chi/httprate and are
wired in the api package.
*/
package middleware
