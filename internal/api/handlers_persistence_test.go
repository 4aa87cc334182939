// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/storage"
)

func fixedClock(year int, month time.Month) storage.Clock {
	return func() time.Time { return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC) }
}

func float(v float64) *float64 { return &v }

// newPersistenceServer serves the routes over a file tier in a temp dir.
func newPersistenceServer(t *testing.T, clock storage.Clock) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()
	tier, err := storage.NewFileTier(root)
	if err != nil {
		t.Fatalf("NewFileTier: %v", err)
	}
	store := storage.New(tier, nil, storage.WithClock(clock))
	t.Cleanup(func() { store.Close() })

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	router := NewRouter(NewHandler(Deps{Records: store}), NewChiMiddleware(cfg))
	srv := httptest.NewServer(router.SetupChi())
	t.Cleanup(srv.Close)
	return srv, root
}

func sampleRecord(score float64) models.AnalysisRecord {
	return models.AnalysisRecord{
		Metrics: models.RecordMetrics{
			Trend:         models.Trend{Direction: models.TrendUp, Percentage: 20, Period: "last period"},
			SparklineData: []float64{100, 120},
		},
		EnvironmentalData: models.EnvironmentalData{
			BatchAnalysisData: &models.BatchAnalysisResult{
				Status: "success",
				Results: []models.IndustrialResponse{{
					TimeSeries: map[string][]models.PeriodRecord{
						"MyArea": {{Period: "2024-Q1", Industrial: &models.IndustrialStats{OverallScore: float(score)}}},
					},
				}},
			},
		},
	}
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestPersistence_StatusLifecycle(t *testing.T) {
	t.Parallel()

	srv, root := newPersistenceServer(t, fixedClock(2024, time.May))
	base := srv.URL + "/api/analysis/acme"

	resp := doJSON(t, http.MethodGet, base+"/status", nil)
	status := decodeBody[models.StatusReport](t, resp)
	if status.Status != models.StatusNotAnalyzed || status.CurrentQuarter != "2024-Q2" || status.LatestQuarter != "" {
		t.Fatalf("initial status = %+v", status)
	}

	if resp := doJSON(t, http.MethodGet, base+"/latest", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("latest before save = %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, base+"/2024-Q1", sampleRecord(100))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save 2024-Q1 = %d", resp.StatusCode)
	}
	saved := decodeBody[models.AnalysisRecord](t, resp)
	if saved.CompanyID != "acme" || saved.Quarter != "2024-Q1" || saved.Timestamp.IsZero() {
		t.Errorf("saved record not enriched: %+v", saved)
	}
	if _, err := os.Stat(filepath.Join(root, "acme", "2024-Q1.json")); err != nil {
		t.Errorf("expected record file: %v", err)
	}

	status = decodeBody[models.StatusReport](t, doJSON(t, http.MethodGet, base+"/status", nil))
	if status.Status != models.StatusNewQuarter || status.LatestQuarter != "2024-Q1" {
		t.Errorf("status after old quarter = %+v", status)
	}

	resp = doJSON(t, http.MethodPost, base, sampleRecord(120))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save current = %d", resp.StatusCode)
	}

	status = decodeBody[models.StatusReport](t, doJSON(t, http.MethodGet, base+"/status", nil))
	if status.Status != models.StatusAnalyzed || status.LatestQuarter != "2024-Q2" {
		t.Errorf("status after current quarter = %+v", status)
	}

	latest := decodeBody[models.AnalysisRecord](t, doJSON(t, http.MethodGet, base+"/latest", nil))
	if latest.Quarter != "2024-Q2" {
		t.Errorf("latest quarter = %s, want 2024-Q2", latest.Quarter)
	}

	old := decodeBody[models.AnalysisRecord](t, doJSON(t, http.MethodGet, base+"/2024-Q1", nil))
	if old.Quarter != "2024-Q1" || len(old.Metrics.SparklineData) != 2 {
		t.Errorf("2024-Q1 record = %+v", old)
	}
}

func TestPersistence_OverwriteReplacesRecord(t *testing.T) {
	t.Parallel()

	srv, _ := newPersistenceServer(t, fixedClock(2024, time.February))
	url := srv.URL + "/api/analysis/acme/2024-Q1"

	doJSON(t, http.MethodPost, url, sampleRecord(100))
	second := sampleRecord(50)
	second.Metrics.SparklineData = []float64{50}
	doJSON(t, http.MethodPost, url, second)

	got := decodeBody[models.AnalysisRecord](t, doJSON(t, http.MethodGet, url, nil))
	if len(got.Metrics.SparklineData) != 1 || got.Metrics.SparklineData[0] != 50 {
		t.Errorf("record was not replaced: %+v", got.Metrics)
	}
}

func TestPersistence_Errors(t *testing.T) {
	t.Parallel()

	srv, _ := newPersistenceServer(t, fixedClock(2024, time.February))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"missing quarter", http.MethodGet, "/api/analysis/acme/2023-Q4", nil, http.StatusNotFound},
		{"bad quarter label", http.MethodGet, "/api/analysis/acme/2024-Q5", nil, http.StatusBadRequest},
		{"bad quarter on save", http.MethodPost, "/api/analysis/acme/Q1-2024", sampleRecord(1), http.StatusBadRequest},
		{"reserved character in company", http.MethodGet, "/api/analysis/a:b/status", nil, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nothing", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := doJSON(t, tt.method, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestPersistence_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv, _ := newPersistenceServer(t, fixedClock(2024, time.February))
	resp, err := http.Post(srv.URL+"/api/analysis/acme", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

// TestPersistence_RemoteTierContract drives the routes through the client
// the durable tier uses, so both sides agree on paths and status codes.
func TestPersistence_RemoteTierContract(t *testing.T) {
	t.Parallel()

	srv, _ := newPersistenceServer(t, fixedClock(2024, time.February))
	remote := storage.NewRemoteTier(&config.StorageConfig{RemoteURL: srv.URL, DurableTimeout: 5 * time.Second})
	ctx := context.Background()

	if _, err := remote.Latest(ctx, "globex"); err != models.ErrNotFound {
		t.Fatalf("Latest on empty = %v, want ErrNotFound", err)
	}
	ok, err := remote.HasKey(ctx, "globex", "2024-Q1")
	if err != nil || ok {
		t.Fatalf("HasKey on empty = %v, %v", ok, err)
	}

	rec := sampleRecord(10)
	if err := remote.Put(ctx, "globex", "2024-Q1", &rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := remote.Get(ctx, "globex", "2024-Q1")
	if err != nil || got.Quarter != "2024-Q1" || got.CompanyID != "globex" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	latest, err := remote.Latest(ctx, "globex")
	if err != nil || latest.Quarter != "2024-Q1" {
		t.Fatalf("Latest = %+v, %v", latest, err)
	}
	if ok, err := remote.HasKey(ctx, "globex", "2024-Q1"); err != nil || !ok {
		t.Errorf("HasKey after put = %v, %v", ok, err)
	}
}
