// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/terrascope/internal/logging"
)

// RequestLogger logs one line per completed request at debug level, and at
// warn level for 5xx responses. It must run after RequestID so the line
// carries the request and correlation IDs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		log := logging.Ctx(r.Context())
		event := log.Debug()
		if wrapper.statusCode >= http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	})
}
