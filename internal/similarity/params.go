// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package similarity

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/geo"
)

// WeightTotal is the sum every Weights value must add up to.
const WeightTotal = 1.0

const weightTolerance = 1e-6

// Weights are the per-feature weights of the similarity score.
type Weights struct {
	NDVI      float64 `json:"ndvi" validate:"gte=0,lte=1"`
	Elevation float64 `json:"elevation" validate:"gte=0,lte=1"`
	Slope     float64 `json:"slope" validate:"gte=0,lte=1"`
	Landcover float64 `json:"landcover" validate:"gte=0,lte=1"`
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.NDVI + w.Elevation + w.Slope + w.Landcover
}

// Validate checks that the weights add up to WeightTotal.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-WeightTotal) > weightTolerance {
		return fmt.Errorf("weights must sum to %.1f, got %.4f", WeightTotal, w.Sum())
	}
	return nil
}

// SearchParams are the fixed search settings sent with every query.
type SearchParams struct {
	StartDate           string  `json:"startDate" validate:"required,isodate"`
	EndDate             string  `json:"endDate" validate:"required,isodate"`
	SearchRadiusKm      float64 `json:"searchRadiusKm" validate:"gt=0"`
	SamplingResolutionM int     `json:"samplingResolutionM" validate:"gt=0"`
	MaxCandidates       int     `json:"maxCandidates" validate:"gte=3"`
	SimilarityThreshold float64 `json:"similarityThreshold" validate:"gte=0,lte=1"`
	Weights             Weights `json:"weights"`
}

// DefaultSearchParams returns the reference search settings.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		StartDate:           "2023-01-01",
		EndDate:             "2023-12-31",
		SearchRadiusKm:      50,
		SamplingResolutionM: 100,
		MaxCandidates:       200,
		SimilarityThreshold: 0.7,
		Weights: Weights{
			NDVI:      0.4,
			Elevation: 0.2,
			Slope:     0.2,
			Landcover: 0.2,
		},
	}
}

// ParamsFromConfig builds search settings from configuration.
func ParamsFromConfig(cfg *config.SimilarityConfig) SearchParams {
	return SearchParams{
		StartDate:           cfg.StartDate,
		EndDate:             cfg.EndDate,
		SearchRadiusKm:      cfg.SearchRadiusKm,
		SamplingResolutionM: cfg.SamplingResolutionM,
		MaxCandidates:       cfg.MaxCandidates,
		SimilarityThreshold: cfg.SimilarityThreshold,
		Weights: Weights{
			NDVI:      cfg.WeightNDVI,
			Elevation: cfg.WeightElevation,
			Slope:     cfg.WeightSlope,
			Landcover: cfg.WeightLandcover,
		},
	}
}

// Validate checks the parts of the settings the service cannot recover from.
func (p SearchParams) Validate() error {
	if err := p.Weights.Validate(); err != nil {
		return err
	}
	if p.SearchRadiusKm <= 0 {
		return fmt.Errorf("search radius must be positive")
	}
	if p.MaxCandidates < 3 {
		return fmt.Errorf("max candidates must be at least 3")
	}
	return nil
}

// Query encodes the request query for bbox.
func (p SearchParams) Query(bbox geo.BoundingBox) url.Values {
	q := url.Values{}
	q.Set("reference_bbox", bbox.QueryString())
	q.Set("start_date", p.StartDate)
	q.Set("end_date", p.EndDate)
	q.Set("search_radius_km", formatFloat(p.SearchRadiusKm))
	q.Set("sampling_resolution_m", strconv.Itoa(p.SamplingResolutionM))
	q.Set("max_candidates", strconv.Itoa(p.MaxCandidates))
	q.Set("similarity_threshold", formatFloat(p.SimilarityThreshold))
	q.Set("weights.ndvi", formatFloat(p.Weights.NDVI))
	q.Set("weights.elevation", formatFloat(p.Weights.Elevation))
	q.Set("weights.slope", formatFloat(p.Weights.Slope))
	q.Set("weights.landcover", formatFloat(p.Weights.Landcover))
	return q
}

// CacheKey identifies a search for result caching. url.Values.Encode sorts
// keys, so equal searches always produce equal keys.
func (p SearchParams) CacheKey(bbox geo.BoundingBox) string {
	return p.Query(bbox).Encode()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
