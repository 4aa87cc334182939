// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package models

import "github.com/tomtom215/terrascope/internal/geo"

// Company is an analysed company.
type Company struct {
	ID          string            `json:"id" validate:"required,max=128"`
	Name        string            `json:"name" validate:"required,max=256"`
	Industry    string            `json:"industry,omitempty" validate:"max=128"`
	Location    string            `json:"location,omitempty" validate:"max=256"`
	Description string            `json:"description,omitempty" validate:"max=4096"`
	Facilities  []OperationalArea `json:"facilities,omitempty" validate:"dive"`
}

// OperationalArea is a company-controlled region under study. It is treated
// as immutable once submitted for analysis.
type OperationalArea struct {
	ID        string          `json:"id" validate:"required,max=128"`
	Name      string          `json:"name" validate:"required,max=128"`
	CompanyID string          `json:"companyId,omitempty" validate:"max=128"`
	Location  string          `json:"location,omitempty" validate:"max=256"`
	BBox      geo.BoundingBox `json:"bbox"`
}

// Features is the fixed feature bundle the similarity service reports for
// each candidate. Values are opaque to this system.
type Features struct {
	NDVIMean           float64 `json:"ndvi_mean"`
	NDVIStd            float64 `json:"ndvi_std"`
	ElevationMean      float64 `json:"elevation_mean"`
	ElevationStd       float64 `json:"elevation_std"`
	SlopeMean          float64 `json:"slope_mean"`
	SlopeStd           float64 `json:"slope_std"`
	NDWIMean           float64 `json:"ndwi_mean"`
	NDBIMean           float64 `json:"ndbi_mean"`
	LandcoverDiversity float64 `json:"landcover_diversity"`
}

// SimilarArea is one ranked match returned by the similarity service.
// Rank is 1-based; lower is better.
type SimilarArea struct {
	Rank            int             `json:"rank"`
	Index           string          `json:"index"`
	Position        string          `json:"position"`
	Similarity      float64         `json:"similarity"`
	BBox            geo.BoundingBox `json:"bbox"`
	Features        Features        `json:"features"`
	ReferenceAreaID string          `json:"referenceAreaId"`
	DistanceKm      float64         `json:"distanceKm"`
}
