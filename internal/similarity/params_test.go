// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package similarity

import (
	"testing"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/geo"
)

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"reference weights", Weights{0.4, 0.2, 0.2, 0.2}, false},
		{"equal weights", Weights{0.25, 0.25, 0.25, 0.25}, false},
		{"float noise tolerated", Weights{0.1 + 0.2, 0.3, 0.2, 0.2}, false},
		{"too heavy", Weights{0.5, 0.2, 0.2, 0.2}, true},
		{"all zero", Weights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParamsFromConfigMatchesDefaults(t *testing.T) {
	t.Parallel()

	cfg := &config.SimilarityConfig{
		StartDate:           "2023-01-01",
		EndDate:             "2023-12-31",
		SearchRadiusKm:      50,
		SamplingResolutionM: 100,
		MaxCandidates:       200,
		SimilarityThreshold: 0.7,
		WeightNDVI:          0.4,
		WeightElevation:     0.2,
		WeightSlope:         0.2,
		WeightLandcover:     0.2,
	}
	if got := ParamsFromConfig(cfg); got != DefaultSearchParams() {
		t.Errorf("ParamsFromConfig() = %+v, want %+v", got, DefaultSearchParams())
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	p := DefaultSearchParams()
	a := geo.BoundingBox{MinLon: 1, MinLat: 2, MaxLon: 3, MaxLat: 4}
	b := geo.BoundingBox{MinLon: 1, MinLat: 2, MaxLon: 3, MaxLat: 4.5}

	if p.CacheKey(a) != p.CacheKey(a) {
		t.Error("CacheKey is not stable")
	}
	if p.CacheKey(a) == p.CacheKey(b) {
		t.Error("different boxes share a cache key")
	}
	q := p
	q.SimilarityThreshold = 0.8
	if p.CacheKey(a) == q.CacheKey(a) {
		t.Error("different params share a cache key")
	}
}
