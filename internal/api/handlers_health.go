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
)

// readinessTimeout bounds each readiness probe.
const readinessTimeout = 2 * time.Second

// HealthLive reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady runs every readiness check and answers 503 when any fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	results := make(map[string]string, len(h.checks))
	ready := true
	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := c.Check(ctx)
		cancel()
		if err != nil {
			ready = false
			results[c.Name] = err.Error()
			continue
		}
		results[c.Name] = "ok"
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	respondJSON(w, code, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"checks":         results,
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
