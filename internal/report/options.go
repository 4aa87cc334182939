// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package report

import "github.com/tomtom215/terrascope/internal/models"

// Variant selects the depth and audience of a report.
type Variant string

// Report variants.
const (
	VariantComprehensive Variant = "comprehensive"
	VariantSummary       Variant = "summary"
	VariantTechnical     Variant = "technical"
)

// Options control report content.
type Options struct {
	Variant                Variant `json:"variant"`
	IncludeVisualizations  bool    `json:"includeVisualizations"`
	IncludeRecommendations bool    `json:"includeRecommendations"`
}

// DefaultOptions returns a comprehensive report with every optional part.
func DefaultOptions() Options {
	return Options{
		Variant:                VariantComprehensive,
		IncludeVisualizations:  true,
		IncludeRecommendations: true,
	}
}

// normalize fills an empty variant and rejects unknown ones.
func (o Options) normalize() (Options, error) {
	switch o.Variant {
	case "":
		o.Variant = VariantComprehensive
	case VariantComprehensive, VariantSummary, VariantTechnical:
	default:
		return o, models.Precondition("unknown report variant %q", o.Variant)
	}
	return o, nil
}
