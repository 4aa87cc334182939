// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package models

import "time"

// APIResponse is the envelope used by the pipeline and report endpoints.
// The persistence endpoints return bare records instead, because the
// dashboard reads them as plain documents.
//
// Example success:
//
//	{
//	  "status": "success",
//	  "data": {"status": "analyzed", "currentQuarter": "2026-Q4"},
//	  "metadata": {"timestamp": "2026-10-16T12:00:00Z", "query_time_ms": 12}
//	}
//
// Example error:
//
//	{
//	  "status": "error",
//	  "error": {"code": "PRECONDITION_FAILED", "message": "area a1 has 2 matches, need exactly 3"},
//	  "metadata": {"timestamp": "2026-10-16T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the machine-readable error body.
//
// Error codes:
//   - VALIDATION_ERROR: invalid request body or parameters
//   - PRECONDITION_FAILED: input rejected before any upstream call
//   - NOT_FOUND: no record for the requested key
//   - UPSTREAM_ERROR: similarity, industrial or LLM service failure
//   - AUTH_ERROR: LLM credential failure
//   - RENDERING_ERROR: report document generation failure
//   - STORAGE_ERROR: local tier write failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
