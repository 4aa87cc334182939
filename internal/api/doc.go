// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package api provides the HTTP surface of Terrascope.

Route groups:

  - /api/v1/health: liveness and readiness probes
  - /metrics: Prometheus exposition
  - /api/analysis/{companyId}/...: the persistence endpoints. They read and
    write raw analysis records and are the contract the remote storage tier
    speaks, so they do not use the response envelope. The .../geojson
    variants return the record's areas as a FeatureCollection for map
    overlays.
  - /api/similarity/search, /api/analysis/{companyId}/run: the pipeline
  - /api/reports: report generation and artifact download
  - /api/llm/generate: the credential-attaching LLM proxy
  - /api/ws: websocket progress stream

Pipeline and report routes answer with models.APIResponse. Errors are mapped
from the shared taxonomy in models (precondition, not found, upstream,
rendering) to HTTP status codes in one place, see writeError.

Middleware stack (outermost first): request ID and correlation ID, panic
recovery, CORS, request log, Prometheus metrics, then per-group rate limits,
security headers and body caps.

Usage:

	handler := api.NewHandler(deps)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Server))
	srv := &http.Server{Handler: router.SetupChi()}
*/
package api
