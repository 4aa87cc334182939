// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package testinfra

import (
	"net/http"

	"github.com/goccy/go-json"
)

// SimilarityPayload builds a successful similarity-search response with n
// matches ranked 1..n. Each match box is the reference box shifted east by
// its rank times the box width.
func SimilarityPayload(ref [4]float64, n int) map[string]interface{} {
	width := ref[2] - ref[0]
	matches := make([]map[string]interface{}, 0, n)
	for rank := 1; rank <= n; rank++ {
		shift := width * float64(rank)
		matches = append(matches, map[string]interface{}{
			"rank":       rank,
			"index":      rank * 100,
			"position":   []int{rank, rank * 2},
			"similarity": 0.95 - 0.05*float64(rank-1),
			"bbox":       []float64{ref[0] + shift, ref[1], ref[2] + shift, ref[3]},
			"features": map[string]float64{
				"ndvi_mean":           0.5,
				"ndvi_std":            0.1,
				"elevation_mean":      120,
				"elevation_std":       15,
				"slope_mean":          3,
				"slope_std":           1,
				"ndwi_mean":           0.05,
				"ndbi_mean":           0.2,
				"landcover_diversity": 0.4,
			},
		})
	}
	return map[string]interface{}{
		"status":               "success",
		"timestamp":            "2024-03-01T00:00:00Z",
		"config":               map[string]interface{}{},
		"reference":            map[string]interface{}{"bbox": ref},
		"candidates_generated": n * 10,
		"top_matches":          matches,
	}
}

// IndustrialHandler answers industrial-analysis requests with one record
// per period for every rectangle name in the request. Values grow with the
// rectangle position and period index so the series are distinguishable.
func IndustrialHandler(periods ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Rectangles     [][4]float64 `json:"rectangles"`
			RectangleNames []string     `json:"rectangle_names"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
			return
		}

		series := make(map[string][]map[string]interface{}, len(req.RectangleNames))
		for slot, name := range req.RectangleNames {
			records := make([]map[string]interface{}, 0, len(periods))
			for i, p := range periods {
				base := float64(slot*10 + i + 1)
				records = append(records, map[string]interface{}{
					"period":     p,
					"vegetation": map[string]float64{"ndvi_mean": 0.5 + base/100},
					"thermal":    map[string]float64{"temp_mean": 20 + base},
					"dust":       map[string]float64{"dust_mean": base / 10},
					"soil":       map[string]float64{"bsi_mean": base / 20},
					"industrial": map[string]float64{"overall_score": base * 10},
				})
			}
			series[name] = records
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"summary": map[string]int{
				"total_areas_analyzed": len(req.RectangleNames),
				"total_periods":        len(periods),
			},
			"anomaly_summary": map[string]interface{}{"total_anomalies": 0},
			"time_series":     series,
		})
	})
}
