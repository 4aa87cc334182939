// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package pipeline

import (
	"context"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/geo"
	"github.com/tomtom215/terrascope/internal/industrial"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/similarity"
	"github.com/tomtom215/terrascope/internal/storage"
	"github.com/tomtom215/terrascope/internal/testinfra"
)

// TestDrawToStatus follows a drawn box through search, analysis and save
// against mock upstream services.
func TestDrawToStatus(t *testing.T) {
	t.Parallel()

	ref := [4]float64{-74.1, -40.8, -73.9, -40.6}
	mock := testinfra.NewMockUpstream(t)
	mock.HandleJSON("/similarity", http.StatusOK, testinfra.SimilarityPayload(ref, 3))
	mock.Handle("/industrial", testinfra.IndustrialHandler("2024-Q1", "2024-Q2"))

	simCfg := &config.SimilarityConfig{URL: mock.URL() + "/similarity", Timeout: 5 * time.Second}
	indCfg := &config.IndustrialConfig{
		URL:       mock.URL() + "/industrial",
		Timeout:   5 * time.Second,
		StartDate: "2023-01-01",
		EndDate:   "2024-12-31",
	}
	store := storage.New(storage.NewMemoryTier(), nil, storage.WithClock(feb15))
	defer store.Close()
	o := New(similarity.New(simCfg), industrial.New(indCfg), store)

	area := models.OperationalArea{
		ID:   "op-1",
		Name: "MyArea",
		BBox: geo.NormalizeBoundingBox(geo.Corner{Lon: -73.9, Lat: -40.6}, geo.Corner{Lon: -74.1, Lat: -40.8}),
	}
	found, err := o.FindMatches(context.Background(), []models.OperationalArea{area})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	matches := found.Areas[0].Matches
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Rank != i+1 {
			t.Errorf("match %d has rank %d", i, m.Rank)
		}
	}

	mock.ClearCaptures()
	out, err := o.PerformAnalysis(context.Background(), AnalysisRequest{
		CompanyID: "mock-0",
		Areas:     []AreaInput{{Area: area, Matches: matches}},
	})
	if err != nil {
		t.Fatalf("PerformAnalysis: %v", err)
	}

	captures := mock.Captures()
	if len(captures) != 1 {
		t.Fatalf("expected one industrial request, got %d", len(captures))
	}
	var sent struct {
		Rectangles     [][4]float64 `json:"rectangles"`
		RectangleNames []string     `json:"rectangle_names"`
	}
	if err := json.Unmarshal(captures[0].Body, &sent); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	wantNames := []string{"MyArea", "Similar_Area_1", "Similar_Area_2", "Similar_Area_3"}
	if !reflect.DeepEqual(sent.RectangleNames, wantNames) {
		t.Errorf("rectangle_names = %v, want %v", sent.RectangleNames, wantNames)
	}
	if len(sent.Rectangles) != 4 || sent.Rectangles[0] != ref {
		t.Errorf("rectangles = %v", sent.Rectangles)
	}

	if len(out.Metrics) != 5 {
		t.Fatalf("expected 5 metrics, got %d", len(out.Metrics))
	}
	for _, m := range out.Metrics {
		if len(m.Data) < 1 {
			t.Errorf("metric %s has no data", m.Name)
		}
	}

	status, err := o.Status(context.Background(), "mock-0")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Status != models.StatusAnalyzed || status.CurrentQuarter != "2024-Q1" {
		t.Errorf("status = %+v", status)
	}
}
