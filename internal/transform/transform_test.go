// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package transform

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/models"
)

func f(v float64) *float64 { return &v }

func record(period string, ndvi, temp, dust, bsi, score float64) models.PeriodRecord {
	return models.PeriodRecord{
		Period:     period,
		Vegetation: &models.VegetationStats{NDVIMean: f(ndvi)},
		Thermal:    &models.ThermalStats{TempMean: f(temp)},
		Dust:       &models.DustStats{DustMean: f(dust)},
		Soil:       &models.SoilStats{BSIMean: f(bsi)},
		Industrial: &models.IndustrialStats{OverallScore: f(score)},
	}
}

func sampleResponse() models.IndustrialResponse {
	return models.IndustrialResponse{
		AreaNames: []string{"MyArea", "Similar_Area_1", "Similar_Area_2", "Similar_Area_3"},
		TimeSeries: map[string][]models.PeriodRecord{
			"MyArea": {
				record("2024-Q2", 0.50, 24, 0.31, 0.12, 150),
				record("2024-Q1", 0.55, 20, 0.28, 0.10, 100),
			},
			"Similar_Area_1": {record("2024-Q1", 0.60, 19, 0.20, 0.08, 40), record("2024-Q2", 0.61, 21, 0.21, 0.09, 41)},
			"Similar_Area_2": {record("2024-Q1", 0.62, 18, 0.22, 0.07, 42), record("2024-Q2", 0.63, 22, 0.23, 0.06, 43)},
			"Similar_Area_3": {record("2024-Q1", 0.64, 17, 0.24, 0.05, 44), record("2024-Q2", 0.65, 23, 0.25, 0.04, 45)},
		},
	}
}

func TestTransform_MetricOrderAndShape(t *testing.T) {
	t.Parallel()

	metrics := TransformResponse(sampleResponse())
	if len(metrics) != 5 {
		t.Fatalf("len(metrics) = %d, want 5", len(metrics))
	}

	want := []struct {
		name  string
		unit  string
		chart models.ChartType
	}{
		{MetricVegetation, "NDVI", models.ChartLine},
		{MetricThermal, "°C", models.ChartArea},
		{MetricDust, "index", models.ChartBar},
		{MetricSoil, "BSI", models.ChartLine},
		{MetricIndustrial, "score", models.ChartCombination},
	}
	for i, w := range want {
		m := metrics[i]
		if m.Name != w.name || m.Unit != w.unit || m.ChartType != w.chart {
			t.Errorf("metrics[%d] = %s/%s/%s, want %s/%s/%s", i, m.Name, m.Unit, m.ChartType, w.name, w.unit, w.chart)
		}
		if len(m.Data) != 2 {
			t.Errorf("metrics[%d] has %d points, want 2", i, len(m.Data))
		}
	}
	if !reflect.DeepEqual(MetricNames(), []string{"vegetation", "thermal", "dust", "soil", "industrial"}) {
		t.Errorf("MetricNames() = %v", MetricNames())
	}
}

func TestTransform_PositionalSeries(t *testing.T) {
	t.Parallel()

	industrial := TransformResponse(sampleResponse())[4]
	q1 := industrial.Data[0]
	if q1.Period != "2024-Q1" {
		t.Fatalf("first period = %s, want 2024-Q1 (chronological)", q1.Period)
	}
	if q1.MainValue != 100 || q1.Reference1 != 40 || q1.Reference2 != 42 || q1.Reference3 != 44 {
		t.Errorf("Q1 point = %+v", q1)
	}
	if want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC); !q1.Timestamp.Equal(want) {
		t.Errorf("Q1 timestamp = %v, want %v", q1.Timestamp, want)
	}
	if want := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC); !industrial.Data[1].Timestamp.Equal(want) {
		t.Errorf("Q2 timestamp = %v, want %v", industrial.Data[1].Timestamp, want)
	}
	if industrial.Trend != (models.Trend{Direction: models.TrendUp, Percentage: 50, Period: PeriodLastQuarter}) {
		t.Errorf("industrial trend = %+v", industrial.Trend)
	}
}

func TestTransform_MissingFieldsDefaultToZero(t *testing.T) {
	t.Parallel()

	resp := models.IndustrialResponse{
		AreaNames: []string{"Main", "Ref"},
		TimeSeries: map[string][]models.PeriodRecord{
			"Main": {{Period: "2024-Q3", Vegetation: &models.VegetationStats{}}},
			"Ref":  {{Period: "2024-Q3", Thermal: &models.ThermalStats{TempMean: f(30)}}},
		},
	}

	metrics := TransformResponse(resp)
	veg := metrics[0].Data[0]
	if veg.MainValue != 0 || veg.Reference1 != 0 || veg.Reference2 != 0 || veg.Reference3 != 0 {
		t.Errorf("vegetation point = %+v, want zeros", veg)
	}
	if got := metrics[1].Data[0].Reference1; got != 30 {
		t.Errorf("thermal reference1 = %v, want 30", got)
	}
}

func TestTransform_NoTimeSeries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		batch models.BatchAnalysisResult
	}{
		{"no results", models.BatchAnalysisResult{}},
		{"absent time_series", models.BatchAnalysisResult{Results: []models.IndustrialResponse{{}}}},
		{"empty area lists", models.BatchAnalysisResult{Results: []models.IndustrialResponse{{
			TimeSeries: map[string][]models.PeriodRecord{"A": {}},
		}}}},
	}
	for _, tt := range tests {
		got := Transform(tt.batch)
		if got == nil || len(got) != 0 {
			t.Errorf("%s: Transform() = %v, want empty non-nil", tt.name, got)
		}
	}
}

func TestTransform_UnparseablePeriod(t *testing.T) {
	t.Parallel()

	resp := models.IndustrialResponse{
		AreaNames: []string{"A"},
		TimeSeries: map[string][]models.PeriodRecord{
			"A": {record("2024-Q1", 1, 1, 1, 1, 1), record("FY24-H2", 2, 2, 2, 2, 2)},
		},
	}
	data := TransformResponse(resp)[0].Data
	if len(data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(data))
	}
	// Zero timestamps sort first.
	if data[0].Period != "FY24-H2" || !data[0].Timestamp.IsZero() {
		t.Errorf("data[0] = %+v, want label kept with zero timestamp", data[0])
	}
}

func TestTransform_MultipleResponsesAveraged(t *testing.T) {
	t.Parallel()

	a := models.IndustrialResponse{
		AreaNames:  []string{"North", "R1"},
		TimeSeries: map[string][]models.PeriodRecord{"North": {record("2024-Q1", 0, 0, 0, 0, 100)}, "R1": {record("2024-Q1", 0, 0, 0, 0, 10)}},
	}
	b := models.IndustrialResponse{
		AreaNames: []string{"South", "R1"},
		TimeSeries: map[string][]models.PeriodRecord{
			"South": {record("2024-Q1", 0, 0, 0, 0, 200), record("2024-Q2", 0, 0, 0, 0, 300)},
			"R1":    {record("2024-Q1", 0, 0, 0, 0, 30)},
		},
	}

	data := Transform(models.BatchAnalysisResult{Results: []models.IndustrialResponse{a, b}})[4].Data
	if len(data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(data))
	}
	if data[0].MainValue != 150 || data[0].Reference1 != 20 {
		t.Errorf("Q1 = %+v, want main 150 ref1 20", data[0])
	}
	if data[1].MainValue != 300 || data[1].Reference1 != 0 {
		t.Errorf("Q2 = %+v, want main 300 ref1 0", data[1])
	}
}

func TestTransform_FallbackAreaOrder(t *testing.T) {
	t.Parallel()

	resp := models.IndustrialResponse{
		TimeSeries: map[string][]models.PeriodRecord{
			"b": {record("2024-Q1", 0, 0, 0, 0, 2)},
			"a": {record("2024-Q1", 0, 0, 0, 0, 1)},
		},
	}
	if got := AreaOrder(resp); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("AreaOrder() = %v", got)
	}
	p := TransformResponse(resp)[4].Data[0]
	if p.MainValue != 1 || p.Reference1 != 2 {
		t.Errorf("point = %+v", p)
	}
}

func TestTransform_Deterministic(t *testing.T) {
	t.Parallel()

	batch := models.BatchAnalysisResult{Results: []models.IndustrialResponse{sampleResponse(), sampleResponse()}}
	first, err := json.Marshal(Transform(batch))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(Transform(batch))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(TransformResponse(sampleResponse()))
	if !reflect.DeepEqual(s.SparklineData, []float64{100, 150}) {
		t.Errorf("SparklineData = %v", s.SparklineData)
	}
	if s.Trend.Direction != models.TrendUp {
		t.Errorf("Trend = %+v", s.Trend)
	}

	empty := Summarize(nil)
	if empty.SparklineData == nil || empty.Trend.Period != PeriodInsufficientData {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}
