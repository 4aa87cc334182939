// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/terrascope/internal/middleware"
)

// Router binds the handlers to routes.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, mw: mw}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.mw.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/analysis/{companyId}", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(LimitBody(MaxRequestBodySize))

		r.Group(func(r chi.Router) {
			r.Use(router.mw.RateLimitCustom(RateLimitPersistence))
			r.Get("/status", h.AnalysisStatus)
			r.Get("/latest", h.AnalysisLatest)
			r.Get("/latest/geojson", h.AnalysisGeoJSON)
			r.Get("/{quarter}", h.AnalysisForQuarter)
			r.Get("/{quarter}/geojson", h.AnalysisGeoJSON)
			r.Post("/", h.SaveAnalysis)
			r.Post("/{quarter}", h.SaveAnalysis)
		})

		r.With(router.mw.RateLimit()).Post("/run", h.RunAnalysis)
	})

	r.Route("/api/similarity", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(LimitBody(MaxRequestBodySize))
		r.Post("/search", h.SimilaritySearch)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.With(router.mw.RateLimitCustom(RateLimitReports), LimitBody(MaxRequestBodySize)).Post("/", h.GenerateReport)
		r.With(router.mw.RateLimit()).Get("/artifacts/{name}", h.DownloadArtifact)
	})

	r.Route("/api/llm", func(r chi.Router) {
		r.Use(router.mw.RateLimitCustom(RateLimitReports))
		r.Use(APISecurityHeaders())
		r.Post("/generate", h.LLMProxy)
	})

	r.With(router.mw.RateLimitCustom(RateLimitWebSocket)).Get("/api/ws", h.WebSocket)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r
}
