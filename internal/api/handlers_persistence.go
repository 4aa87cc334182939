// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/models"
)

// The persistence endpoints speak raw records: a GET returns the stored
// document, a POST takes one. Errors are {"error": "..."}.

type rawError struct {
	Error string `json:"error"`
}

// respondRawError maps err for the persistence endpoints. Preconditions
// (bad company ID or quarter label) are 400 here because they are malformed
// paths, not rejected work.
func respondRawError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrPreconditionFailed):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	default:
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("Persistence request failed")
	}
	respondJSON(w, status, rawError{Error: err.Error()})
}

// AnalysisStatus handles GET /api/analysis/{companyId}/status.
func (h *Handler) AnalysisStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.records.GetStatus(r.Context(), chi.URLParam(r, "companyId"))
	if err != nil {
		respondRawError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// AnalysisLatest handles GET /api/analysis/{companyId}/latest.
func (h *Handler) AnalysisLatest(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	rec, err := h.records.Get(r.Context(), companyID)
	h.respondRecord(w, r, rec, err, "no analysis found for company "+companyID)
}

// AnalysisForQuarter handles GET /api/analysis/{companyId}/{quarter}.
func (h *Handler) AnalysisForQuarter(w http.ResponseWriter, r *http.Request) {
	companyID, quarter := chi.URLParam(r, "companyId"), chi.URLParam(r, "quarter")
	rec, err := h.records.GetQuarter(r.Context(), companyID, quarter)
	h.respondRecord(w, r, rec, err, "no analysis found for company "+companyID+" in "+quarter)
}

func (h *Handler) respondRecord(w http.ResponseWriter, r *http.Request, rec *models.AnalysisRecord, err error, missing string) {
	switch {
	case err != nil:
		respondRawError(w, r, err)
	case rec == nil:
		respondJSON(w, http.StatusNotFound, rawError{Error: missing})
	default:
		respondJSON(w, http.StatusOK, rec)
	}
}

// SaveAnalysis handles POST /api/analysis/{companyId} (current quarter) and
// POST /api/analysis/{companyId}/{quarter}. A record already stored under
// the key is replaced.
func (h *Handler) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	var rec models.AnalysisRecord
	if !decodeJSON(w, r, &rec) {
		return
	}
	saved, err := h.records.Save(r.Context(), chi.URLParam(r, "companyId"), &rec, chi.URLParam(r, "quarter"))
	if err != nil {
		respondRawError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
