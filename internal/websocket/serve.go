// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
)

// NewUpgrader returns an upgrader that accepts only the listed origins.
// A "*" entry accepts any non-empty origin. Requests without an Origin
// header are rejected because browsers always send one.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), allowedOrigins)
		},
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// ServeWS upgrades the request and registers the connection with hub.
func ServeWS(hub *Hub, allowedOrigins []string) http.HandlerFunc {
	upgrader := NewUpgrader(allowedOrigins)
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			metrics.WSErrors.WithLabelValues("upgrade").Inc()
			logging.Ctx(r.Context()).Warn().Err(err).
				Str("origin", r.Header.Get("Origin")).
				Msg("websocket upgrade failed")
			return
		}

		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}
}
