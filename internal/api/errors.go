// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/report"
	"github.com/tomtom215/terrascope/internal/similarity"
)

// Error codes used in APIError.Code.
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodePrecondition = "PRECONDITION_FAILED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUpstream     = "UPSTREAM_ERROR"
	ErrCodeAuth         = "AUTH_ERROR"
	ErrCodeRendering    = "RENDERING_ERROR"
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnavailable  = "SERVICE_UNAVAILABLE"
)

// errorMapping is the HTTP status, code and optional details for an error.
type errorMapping struct {
	status  int
	code    string
	details map[string]interface{}
}

// classifyError maps the error taxonomy onto HTTP. fallback is the code used
// when err matches nothing, typically STORAGE_ERROR or INTERNAL_ERROR.
// ErrAuthFailed is checked before ErrUpstreamUnavailable because it wraps it.
func classifyError(err error, fallback string) errorMapping {
	switch {
	case errors.Is(err, models.ErrPreconditionFailed):
		return errorMapping{status: http.StatusUnprocessableEntity, code: ErrCodePrecondition}
	case errors.Is(err, models.ErrNotFound):
		return errorMapping{status: http.StatusNotFound, code: ErrCodeNotFound}
	case errors.Is(err, report.ErrAuthFailed):
		return errorMapping{status: http.StatusBadGateway, code: ErrCodeAuth, details: upstreamDetails(err)}
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return errorMapping{status: http.StatusBadGateway, code: ErrCodeUpstream, details: upstreamDetails(err)}
	case errors.Is(err, models.ErrRenderingFailure):
		return errorMapping{status: http.StatusInternalServerError, code: ErrCodeRendering}
	default:
		return errorMapping{status: http.StatusInternalServerError, code: fallback}
	}
}

// upstreamDetails surfaces the upstream status and service so clients can
// tell a 429 from a 500 without parsing messages.
func upstreamDetails(err error) map[string]interface{} {
	var ue *models.UpstreamError
	if errors.As(err, &ue) {
		d := map[string]interface{}{"service": ue.Service}
		if ue.StatusCode > 0 {
			d["upstream_status"] = ue.StatusCode
		}
		return d
	}
	var fe *similarity.FetchError
	if errors.As(err, &fe) {
		d := map[string]interface{}{"service": "similarity"}
		if fe.StatusCode > 0 {
			d["upstream_status"] = fe.StatusCode
		}
		return d
	}
	return nil
}

// writeError responds with the envelope for err.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	m := classifyError(err, fallback)
	respondErrorDetails(w, r, m.status, m.code, err.Error(), m.details, err)
}
