// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package report

import (
	"fmt"
	"strings"

	"github.com/tomtom215/terrascope/internal/geo"
	"github.com/tomtom215/terrascope/internal/models"
)

// Section headings requested from the model, in order.
const (
	HeadingExecutiveSummary    = "EXECUTIVE SUMMARY"
	HeadingMethodology         = "METHODOLOGY"
	HeadingComparativeAnalysis = "COMPARATIVE ANALYSIS"
	HeadingStatisticalResults  = "STATISTICAL RESULTS"
	HeadingRiskAssessment      = "RISK ASSESSMENT"
	HeadingRecommendations     = "RECOMMENDATIONS"
	HeadingConclusion          = "CONCLUSION"
)

var variantGuidance = map[Variant]string{
	VariantComprehensive: "Write a comprehensive report for a sustainability committee. " +
		"Cover every section in depth and quantify each claim with the data provided.",
	VariantSummary: "Write a concise summary for executives. " +
		"Keep each section to one short paragraph and lead with the most material finding.",
	VariantTechnical: "Write a technical report for remote-sensing analysts. " +
		"Discuss spectral indices, terrain statistics and the limits of the comparison explicitly.",
}

// BuildPrompt assembles the instruction document for one report.
func BuildPrompt(company models.Company, opAreas []models.OperationalArea, similar []models.SimilarArea, opts Options) string {
	if opts.Variant == "" {
		opts.Variant = VariantComprehensive
	}
	var b strings.Builder

	b.WriteString("You are an environmental scientist specializing in satellite-based impact assessment ")
	b.WriteString("of industrial operations. You compare operational areas controlled by a company with ")
	b.WriteString("environmentally similar reference areas to isolate the company's footprint.\n\n")

	b.WriteString("COMPANY\n")
	fmt.Fprintf(&b, "Name: %s\n", company.Name)
	writeOptional(&b, "Industry", company.Industry)
	writeOptional(&b, "Location", company.Location)
	writeOptional(&b, "Description", company.Description)
	b.WriteString("\n")

	fmt.Fprintf(&b, "OPERATIONAL AREAS (%d)\n", len(opAreas))
	for i, a := range opAreas {
		writeOperationalArea(&b, i+1, a)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "REFERENCE AREAS (%d)\n", len(similar))
	for i, s := range similar {
		writeSimilarArea(&b, i+1, s)
	}
	b.WriteString("\n")

	b.WriteString("INSTRUCTIONS\n")
	b.WriteString(variantGuidance[opts.Variant])
	b.WriteString("\n")
	b.WriteString("Structure the report with the following sections. Start each section with its ")
	b.WriteString("heading in capital letters on its own line, preceded by a blank line.\n")
	for i, h := range sectionTemplate(opts) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h)
	}

	if opts.IncludeVisualizations {
		b.WriteString("\nWhere a chart would help, describe it in one sentence: the chart type, ")
		b.WriteString("the series compared (operational versus reference areas) and what it shows. ")
		b.WriteString("Suitable charts include NDVI over time, land surface temperature, dust index ")
		b.WriteString("and the industrial activity score.\n")
	}

	b.WriteString("\nUse plain text without markdown. Do not invent measurements that are not listed above.\n")
	return b.String()
}

func sectionTemplate(opts Options) []string {
	headings := []string{
		HeadingExecutiveSummary,
		HeadingMethodology,
		HeadingComparativeAnalysis,
		HeadingStatisticalResults,
		HeadingRiskAssessment,
	}
	if opts.IncludeRecommendations {
		headings = append(headings, HeadingRecommendations)
	}
	return append(headings, HeadingConclusion)
}

func writeOptional(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

func writeOperationalArea(b *strings.Builder, n int, a models.OperationalArea) {
	box := a.BBox.Normalize()
	c := geo.Centroid(box)
	fmt.Fprintf(b, "%d. %s\n", n, a.Name)
	if a.Location != "" {
		fmt.Fprintf(b, "   Location: %s\n", a.Location)
	}
	fmt.Fprintf(b, "   Bounding box: %s\n", box)
	fmt.Fprintf(b, "   Centroid: %.4f, %.4f\n", c.Lat, c.Lon)
	fmt.Fprintf(b, "   Approximate area: %.1f km2\n", geo.ApproximateAreaKm2(box))
}

func writeSimilarArea(b *strings.Builder, n int, s models.SimilarArea) {
	box := s.BBox.Normalize()
	f := s.Features
	fmt.Fprintf(b, "%d. Rank %d, similarity %.3f", n, s.Rank, s.Similarity)
	if s.ReferenceAreaID != "" {
		fmt.Fprintf(b, ", matched to %s", s.ReferenceAreaID)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "   Bounding box: %s\n", box)
	if s.DistanceKm > 0 {
		fmt.Fprintf(b, "   Distance from operational area: %.1f km\n", s.DistanceKm)
	}
	fmt.Fprintf(b, "   NDVI: mean %.3f, std %.3f\n", f.NDVIMean, f.NDVIStd)
	fmt.Fprintf(b, "   Elevation: mean %.1f m, std %.1f m\n", f.ElevationMean, f.ElevationStd)
	fmt.Fprintf(b, "   Slope: mean %.2f, std %.2f\n", f.SlopeMean, f.SlopeStd)
	fmt.Fprintf(b, "   NDWI mean %.3f, NDBI mean %.3f, landcover diversity %.3f\n", f.NDWIMean, f.NDBIMean, f.LandcoverDiversity)
}
