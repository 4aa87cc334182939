// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package testinfra

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// Capture is one request received by a MockUpstream.
type Capture struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
	Body    []byte
}

// MockUpstream is an httptest server that records requests and answers
// from handlers registered per path. Unregistered paths answer 404.
type MockUpstream struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []Capture
	handlers map[string]http.Handler
}

// NewMockUpstream starts a server that is closed when the test ends.
func NewMockUpstream(t *testing.T) *MockUpstream {
	t.Helper()

	m := &MockUpstream{handlers: make(map[string]http.Handler)}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockUpstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()

	m.mu.Lock()
	m.captures = append(m.captures, Capture{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Headers: r.Header.Clone(),
		Body:    body,
	})
	h, ok := m.handlers[r.URL.Path]
	m.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	h.ServeHTTP(w, r)
}

// URL returns the server URL.
func (m *MockUpstream) URL() string {
	return m.Server.URL
}

// Handle registers h for path.
func (m *MockUpstream) Handle(path string, h http.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = h
}

// HandleJSON answers path with a fixed status and JSON-encoded body.
func (m *MockUpstream) HandleJSON(path string, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	m.Handle(path, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(data) //nolint:errcheck
	}))
}

// Captures returns a copy of all recorded requests.
func (m *MockUpstream) Captures() []Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Capture, len(m.captures))
	copy(out, m.captures)
	return out
}

// ClearCaptures forgets recorded requests.
func (m *MockUpstream) ClearCaptures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captures = nil
}

// WaitForCaptures waits until at least n requests were recorded.
func (m *MockUpstream) WaitForCaptures(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		m.mu.Lock()
		count := len(m.captures)
		m.mu.Unlock()
		if count >= n {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
