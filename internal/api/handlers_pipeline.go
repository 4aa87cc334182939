// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/pipeline"
)

// SimilaritySearchRequest is the body of POST /api/similarity/search.
type SimilaritySearchRequest struct {
	Areas []models.OperationalArea `json:"areas" validate:"required,min=1,max=50,dive"`
}

// RunAnalysisRequest is the body of POST /api/analysis/{companyId}/run.
type RunAnalysisRequest struct {
	Quarter string                `json:"quarter,omitempty" validate:"omitempty,quarter"`
	Areas   []pipeline.AreaInput `json:"areas" validate:"required,min=1,max=50,dive"`
}

// SimilaritySearch fans a search out over the submitted areas. Areas that
// failed are reported inside a successful response; only a run in which
// every search failed is an error.
func (h *Handler) SimilaritySearch(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "pipeline is not configured", nil)
		return
	}
	start := time.Now()

	var req SimilaritySearchRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	result, err := h.pipeline.FindMatches(r.Context(), req.Areas)
	if err != nil {
		m := classifyError(err, ErrCodeUpstream)
		details := m.details
		if result != nil {
			if details == nil {
				details = map[string]interface{}{}
			}
			details["result"] = result
		}
		respondErrorDetails(w, r, m.status, m.code, err.Error(), details, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("areas", result.Total).
		Int("succeeded", result.Succeeded).
		Msg("Similarity search completed")
	respondSuccess(w, http.StatusOK, result, start)
}

// RunAnalysis performs the industrial analysis for a company and saves the
// record.
func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "pipeline is not configured", nil)
		return
	}
	start := time.Now()

	var req RunAnalysisRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	outcome, err := h.pipeline.PerformAnalysis(r.Context(), pipeline.AnalysisRequest{
		CompanyID: chi.URLParam(r, "companyId"),
		Quarter:   req.Quarter,
		Areas:     req.Areas,
	})
	if err != nil {
		writeError(w, r, err, ErrCodeStorage)
		return
	}
	respondSuccess(w, http.StatusOK, outcome, start)
}
