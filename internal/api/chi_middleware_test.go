// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/terrascope/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tls      bool
		wantHSTS bool
	}{
		{"plain http", false, false},
		{"behind tls proxy", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.tls {
				req.Header.Set("X-Forwarded-Proto", "https")
			}
			rec := httptest.NewRecorder()
			APISecurityHeaders()(okHandler()).ServeHTTP(rec, req)

			h := rec.Header()
			if h.Get("X-Content-Type-Options") != "nosniff" || h.Get("X-Frame-Options") != "DENY" {
				t.Errorf("missing security headers: %v", h)
			}
			if h.Get("Cache-Control") != "no-store" {
				t.Errorf("Cache-Control = %q", h.Get("Cache-Control"))
			}
			if got := h.Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}

func TestLimitBody(t *testing.T) {
	t.Parallel()

	h := LimitBody(8)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized body: status = %d, want 413", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("1234")))
	if rec.Code != http.StatusOK {
		t.Errorf("small body: status = %d, want 200", rec.Code)
	}
}

func TestRateLimitCustom(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(DefaultChiMiddlewareConfig())
	h := m.RateLimitCustom(RateLimitConfig{Requests: 2, Window: time.Minute})(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddlewareFromConfig(&config.ServerConfig{RateLimitDisabled: true})
	h := m.RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	m := NewChiMiddlewareFromConfig(&config.ServerConfig{CORSOrigins: []string{"https://dashboard.example"}})
	h := m.CORS()(okHandler())

	tests := []struct {
		origin string
		allow  bool
	}{
		{"https://dashboard.example", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/analysis/acme/status", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin") == tt.origin
		if got != tt.allow {
			t.Errorf("origin %s allowed = %v, want %v", tt.origin, got, tt.allow)
		}
	}
}
