// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/report"
)

// GenerateReportRequest is the body of POST /api/reports.
type GenerateReportRequest struct {
	Company          models.Company           `json:"company" validate:"required"`
	OperationalAreas []models.OperationalArea `json:"operationalAreas" validate:"max=50,dive"`
	SimilarAreas     []models.SimilarArea     `json:"similarAreas" validate:"max=500"`
	Options          *report.Options          `json:"options,omitempty"`
}

// ReportResponse is the handle plus where to fetch the artifact.
type ReportResponse struct {
	*report.Handle
	DownloadURL string `json:"downloadUrl"`
}

// GenerateReport produces a report synchronously. Nothing is retried; the
// error code tells credential, upstream and rendering failures apart.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "report generation is not configured", nil)
		return
	}
	start := time.Now()

	var req GenerateReportRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}
	opts := report.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	handle, err := h.reports.Generate(r.Context(), req.Company, req.OperationalAreas, req.SimilarAreas, opts)
	if err != nil {
		writeError(w, r, err, ErrCodeInternal)
		return
	}
	respondSuccess(w, http.StatusCreated, ReportResponse{
		Handle:      handle,
		DownloadURL: "/api/reports/artifacts/" + handle.ArtifactName,
	}, start)
}

// DownloadArtifact serves a generated report document as an attachment.
func (h *Handler) DownloadArtifact(w http.ResponseWriter, r *http.Request) {
	if h.artifacts == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "report generation is not configured", nil)
		return
	}
	name := chi.URLParam(r, "name")
	path, err := h.artifacts.ArtifactPath(name)
	if err != nil {
		writeError(w, r, err, ErrCodeInternal)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="terrascope-report-`+name+`"`)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeFile(w, r, path)
}
