// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package models

import "time"

// VegetationStats is the vegetation block of a quarterly record.
// Pointer fields distinguish an absent value from a measured zero.
type VegetationStats struct {
	NDVIMean *float64 `json:"ndvi_mean,omitempty"`
}

// ThermalStats is the thermal block of a quarterly record.
type ThermalStats struct {
	TempMean *float64 `json:"temp_mean,omitempty"`
}

// DustStats is the dust block of a quarterly record.
type DustStats struct {
	DustMean *float64 `json:"dust_mean,omitempty"`
}

// SoilStats is the soil block of a quarterly record.
type SoilStats struct {
	BSIMean *float64 `json:"bsi_mean,omitempty"`
}

// IndustrialStats is the industrial-activity block of a quarterly record.
type IndustrialStats struct {
	OverallScore *float64 `json:"overall_score,omitempty"`
}

// PeriodRecord is one quarterly observation of one area.
type PeriodRecord struct {
	Period     string           `json:"period"`
	Vegetation *VegetationStats `json:"vegetation,omitempty"`
	Thermal    *ThermalStats    `json:"thermal,omitempty"`
	Dust       *DustStats       `json:"dust,omitempty"`
	Soil       *SoilStats       `json:"soil,omitempty"`
	Industrial *IndustrialStats `json:"industrial,omitempty"`
}

// IndustrialSummary is the summary block of an industrial-analysis response.
type IndustrialSummary struct {
	TotalAreasAnalyzed int `json:"total_areas_analyzed"`
	TotalPeriods       int `json:"total_periods"`
}

// AnomalySummary is the anomaly block of an industrial-analysis response.
type AnomalySummary struct {
	TotalAnomalies int            `json:"total_anomalies"`
	ByType         map[string]int `json:"by_type,omitempty"`
}

// IndustrialResponse is one raw response of the industrial-analysis service.
// TimeSeries maps an area name to its quarterly records. AreaNames records
// the submission order of the rectangles; the service keys areas by name so
// order is not recoverable from TimeSeries alone.
type IndustrialResponse struct {
	Summary        IndustrialSummary         `json:"summary"`
	AnomalySummary AnomalySummary            `json:"anomaly_summary"`
	TimeSeries     map[string][]PeriodRecord `json:"time_series,omitempty"`
	AreaNames      []string                  `json:"area_names,omitempty"`
}

// BatchSummary aggregates the responses of one batch.
type BatchSummary struct {
	TotalAreasAnalyzed int `json:"total_areas_analyzed"`
	TotalPeriods       int `json:"total_periods"`
	TotalAnomalies     int `json:"total_anomalies"`
	TotalRequests      int `json:"total_requests"`
}

// BatchAnalysisResult is the normalized outcome of one "perform analysis"
// action: one IndustrialResponse per operational area plus a combined summary.
type BatchAnalysisResult struct {
	Status    string               `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
	Results   []IndustrialResponse `json:"results"`
	Summary   BatchSummary         `json:"summary"`
}

// ChartType tags how the dashboard draws a metric.
type ChartType string

// Chart types.
const (
	ChartLine        ChartType = "line"
	ChartArea        ChartType = "area"
	ChartBar         ChartType = "bar"
	ChartCombination ChartType = "combination"
)

// TrendDirection is the direction of the latest change.
type TrendDirection string

// Trend directions.
const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// Trend summarizes the change between the last two main values.
type Trend struct {
	Direction  TrendDirection `json:"direction"`
	Percentage float64        `json:"percentage"`
	Period     string         `json:"period"`
}

// MetricPoint is one period of a metric: the operational area's value and up
// to three reference values.
type MetricPoint struct {
	Period     string    `json:"period"`
	Timestamp  time.Time `json:"timestamp"`
	MainValue  float64   `json:"mainValue"`
	Reference1 float64   `json:"reference1"`
	Reference2 float64   `json:"reference2"`
	Reference3 float64   `json:"reference3"`
}

// AnalysisMetric is a named, unit-tagged time series derived from a
// BatchAnalysisResult.
type AnalysisMetric struct {
	Name      string        `json:"name"`
	Label     string        `json:"label"`
	Unit      string        `json:"unit"`
	ChartType ChartType     `json:"chartType"`
	Data      []MetricPoint `json:"data"`
	Trend     Trend         `json:"trend"`
}

// RecordMetrics is the headline summary stored with a record.
type RecordMetrics struct {
	Trend         Trend     `json:"trend"`
	SparklineData []float64 `json:"sparklineData"`
}

// EnvironmentalData is the raw material a record's charts are rebuilt from.
type EnvironmentalData struct {
	RedAreas          []OperationalArea    `json:"redAreas"`
	GreenAreas        []SimilarArea        `json:"greenAreas"`
	BatchAnalysisData *BatchAnalysisResult `json:"batchAnalysisData,omitempty"`
}

// AnalysisRecord is the persisted analysis of one company for one quarter.
// At most one record exists per (CompanyID, Quarter); a later write replaces
// the earlier one entirely.
type AnalysisRecord struct {
	CompanyID         string            `json:"companyId"`
	Quarter           string            `json:"quarter"`
	Timestamp         time.Time         `json:"timestamp"`
	Metrics           RecordMetrics     `json:"metrics"`
	EnvironmentalData EnvironmentalData `json:"environmentalData"`
}

// AnalysisStatus tells the dashboard which action to offer for a company.
type AnalysisStatus string

// Analysis statuses.
const (
	StatusNotAnalyzed AnalysisStatus = "not_analyzed"
	StatusAnalyzed    AnalysisStatus = "analyzed"
	StatusNewQuarter  AnalysisStatus = "new_quarter"
)

// StatusReport is the answer of the status endpoint. LatestQuarter is empty
// when the company has never been analyzed.
type StatusReport struct {
	CompanyID      string         `json:"companyId"`
	Status         AnalysisStatus `json:"status"`
	CurrentQuarter string         `json:"currentQuarter"`
	LatestQuarter  string         `json:"latestQuarter,omitempty"`
}
