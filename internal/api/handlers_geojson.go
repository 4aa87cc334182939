// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb/geojson"

	"github.com/tomtom215/terrascope/internal/geo"
	"github.com/tomtom215/terrascope/internal/models"
)

// Feature roles used by the map overlay.
const (
	RoleOperational = "operational"
	RoleReference   = "reference"
)

// AnalysisGeoJSON handles GET /api/analysis/{companyId}/latest/geojson and
// GET /api/analysis/{companyId}/{quarter}/geojson. It returns the areas of
// the stored record as a GeoJSON FeatureCollection, operational areas first.
func (h *Handler) AnalysisGeoJSON(w http.ResponseWriter, r *http.Request) {
	companyID, quarter := chi.URLParam(r, "companyId"), chi.URLParam(r, "quarter")

	var (
		rec *models.AnalysisRecord
		err error
	)
	if quarter == "" {
		rec, err = h.records.Get(r.Context(), companyID)
	} else {
		rec, err = h.records.GetQuarter(r.Context(), companyID, quarter)
	}
	switch {
	case err != nil:
		respondRawError(w, r, err)
	case rec == nil:
		respondJSON(w, http.StatusNotFound, rawError{Error: "no analysis found for company " + companyID})
	default:
		respondJSON(w, http.StatusOK, areaFeatures(rec))
	}
}

func areaFeatures(rec *models.AnalysisRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range rec.EnvironmentalData.RedAreas {
		fc.Append(geo.Feature(a.BBox, map[string]interface{}{
			"role":      RoleOperational,
			"id":        a.ID,
			"name":      a.Name,
			"companyId": rec.CompanyID,
			"quarter":   rec.Quarter,
		}))
	}
	for _, m := range rec.EnvironmentalData.GreenAreas {
		fc.Append(geo.Feature(m.BBox, map[string]interface{}{
			"role":            RoleReference,
			"rank":            m.Rank,
			"similarity":      m.Similarity,
			"referenceAreaId": m.ReferenceAreaID,
			"distanceKm":      m.DistanceKm,
		}))
	}
	return fc
}
