// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package industrial

import (
	"fmt"

	"github.com/tomtom215/terrascope/internal/config"
)

// RequiredMatches is the number of similar areas every request must carry.
const RequiredMatches = 3

// TemporalResolution is the only resolution the dashboard requests.
const TemporalResolution = "quarterly"

// Thresholds are the anomaly thresholds sent with every request.
type Thresholds struct {
	VegetationLoss     float64 `json:"vegetation_loss"`
	DustLevel          float64 `json:"dust_level"`
	ThermalAnomaly     float64 `json:"thermal_anomaly"`
	SoilExposure       float64 `json:"soil_exposure"`
	NightLightIncrease float64 `json:"night_light_increase"`
}

// DefaultThresholds returns the reference thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VegetationLoss:     -0.2,
		DustLevel:          0.3,
		ThermalAnomaly:     2.0,
		SoilExposure:       0.15,
		NightLightIncrease: 0.25,
	}
}

// ThresholdsFromConfig reads thresholds from configuration.
func ThresholdsFromConfig(cfg *config.IndustrialConfig) Thresholds {
	return Thresholds{
		VegetationLoss:     cfg.VegetationLoss,
		DustLevel:          cfg.DustLevel,
		ThermalAnomaly:     cfg.ThermalAnomaly,
		SoilExposure:       cfg.SoilExposure,
		NightLightIncrease: cfg.NightLightIncrease,
	}
}

// DateRange bounds the analysed period, as YYYY-MM-DD strings.
type DateRange struct {
	Start string `json:"start" validate:"required,isodate"`
	End   string `json:"end" validate:"required,isodate"`
}

// DateRangeFromConfig reads the date range from configuration.
func DateRangeFromConfig(cfg *config.IndustrialConfig) DateRange {
	return DateRange{Start: cfg.StartDate, End: cfg.EndDate}
}

// analysisRequest is the POST body of the industrial-analysis endpoint.
type analysisRequest struct {
	Rectangles         [][4]float64 `json:"rectangles"`
	RectangleNames     []string     `json:"rectangle_names"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date"`
	TemporalResolution string       `json:"temporal_resolution"`
	Thresholds         Thresholds   `json:"thresholds"`
}

// DefaultRectangleNames names the four rectangles of one request.
func DefaultRectangleNames(areaName string) []string {
	names := make([]string, 0, RequiredMatches+1)
	names = append(names, areaName)
	for i := 1; i <= RequiredMatches; i++ {
		names = append(names, fmt.Sprintf("Similar_Area_%d", i))
	}
	return names
}
