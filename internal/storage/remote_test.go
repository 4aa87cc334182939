// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/models"
)

// fakePersistenceServer mimics the /api/analysis routes with a map.
type fakePersistenceServer struct {
	mu     sync.Mutex
	docs   map[string]string
	latest map[string]string
}

func (f *fakePersistenceServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/analysis/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	company, last := parts[0], parts[1]

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		f.docs[company+"/"+last] = string(body)
		f.latest[company] = last
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	case http.MethodGet:
		if last == "latest" {
			last = f.latest[company]
		}
		doc, ok := f.docs[company+"/"+last]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, doc)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newRemoteTestTier(t *testing.T, h http.Handler) *RemoteTier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRemoteTier(&config.StorageConfig{RemoteURL: srv.URL, DurableTimeout: 2 * time.Second})
}

func TestRemoteTier(t *testing.T) {
	t.Parallel()
	runTierSuite(t, func(t *testing.T) Tier {
		return newRemoteTestTier(t, &fakePersistenceServer{docs: map[string]string{}, latest: map[string]string{}})
	})
}

func TestRemoteTier_ServerError(t *testing.T) {
	t.Parallel()

	tier := newRemoteTestTier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	ctx := context.Background()

	err := tier.Put(ctx, "acme", "2024-Q1", testRecord("acme", "2024-Q1", 1))
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Errorf("Put() error = %v, want ErrUpstreamUnavailable", err)
	}
	if _, err := tier.Latest(ctx, "acme"); err == nil || errors.Is(err, models.ErrNotFound) {
		t.Errorf("Latest() error = %v, want upstream failure", err)
	}
}

func TestRemoteTier_EscapesPath(t *testing.T) {
	t.Parallel()

	paths := make(chan string, 1)
	tier := newRemoteTestTier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.EscapedPath()
		http.NotFound(w, r)
	}))

	_, _ = tier.Get(context.Background(), "acme corp", "2024-Q1")
	if gotPath := <-paths; gotPath != "/api/analysis/acme%20corp/2024-Q1" {
		t.Errorf("path = %s", gotPath)
	}
}

func TestStore_RemoteDownStillSaves(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	store := New(NewMemoryTier(), NewRemoteTier(&config.StorageConfig{RemoteURL: srv.URL, DurableTimeout: time.Second}))
	ctx := context.Background()

	if _, err := store.Save(ctx, "acme", testRecord("", "", 1), "2024-Q1"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Get(ctx, "acme")
	if err != nil || got == nil {
		t.Errorf("Get() = %v, %v; want local record", got, err)
	}
}
