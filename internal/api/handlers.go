// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/pipeline"
	"github.com/tomtom215/terrascope/internal/report"
)

// RecordStore backs the persistence endpoints. *storage.Store implements it.
type RecordStore interface {
	Save(ctx context.Context, companyID string, rec *models.AnalysisRecord, quarter string) (*models.AnalysisRecord, error)
	Get(ctx context.Context, companyID string) (*models.AnalysisRecord, error)
	GetQuarter(ctx context.Context, companyID, quarter string) (*models.AnalysisRecord, error)
	GetStatus(ctx context.Context, companyID string) (*models.StatusReport, error)
}

// Pipeline runs similarity searches and analyses. *pipeline.Orchestrator
// implements it.
type Pipeline interface {
	FindMatches(ctx context.Context, areas []models.OperationalArea) (*pipeline.MatchResult, error)
	PerformAnalysis(ctx context.Context, req pipeline.AnalysisRequest) (*pipeline.AnalysisOutcome, error)
}

// ReportGenerator produces reports. *report.Service implements it.
type ReportGenerator interface {
	Generate(ctx context.Context, company models.Company, opAreas []models.OperationalArea, similar []models.SimilarArea, opts report.Options) (*report.Handle, error)
}

// ArtifactLocator resolves a generated artifact name to a file.
// *report.HTMLRenderer implements it.
type ArtifactLocator interface {
	ArtifactPath(name string) (string, error)
}

// ReadinessCheck is one dependency probed by the readiness endpoint.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps are the services behind the handlers. Records is required; a nil
// optional service turns its routes into 503 responses.
type Deps struct {
	Records   RecordStore
	Pipeline  Pipeline
	Reports   ReportGenerator
	Artifacts ArtifactLocator
	LLMProxy  http.Handler
	WebSocket http.Handler
	Checks    []ReadinessCheck
}

// Handler holds the dependencies of the HTTP handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_persistence.go: raw record endpoints
//   - handlers_pipeline.go: similarity search and analysis runs
//   - handlers_reports.go: report generation and downloads
type Handler struct {
	records   RecordStore
	pipeline  Pipeline
	reports   ReportGenerator
	artifacts ArtifactLocator
	llmProxy  http.Handler
	websocket http.Handler
	checks    []ReadinessCheck
	startTime time.Time
}

// NewHandler creates a handler from deps.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		records:   deps.Records,
		pipeline:  deps.Pipeline,
		reports:   deps.Reports,
		artifacts: deps.Artifacts,
		llmProxy:  deps.LLMProxy,
		websocket: deps.WebSocket,
		checks:    deps.Checks,
		startTime: time.Now(),
	}
}

// LLMProxy serves the LLM proxy route.
func (h *Handler) LLMProxy(w http.ResponseWriter, r *http.Request) {
	if h.llmProxy == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "LLM proxy is not configured", nil)
		return
	}
	h.llmProxy.ServeHTTP(w, r)
}

// WebSocket serves the progress stream.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.websocket == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "websocket hub is not running", nil)
		return
	}
	h.websocket.ServeHTTP(w, r)
}
