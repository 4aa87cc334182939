// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package transform

import (
	"sort"
	"time"

	"github.com/tomtom215/terrascope/internal/models"
)

// maxSeries is one main series plus three references.
const maxSeries = 4

// Metric names.
const (
	MetricVegetation = "vegetation"
	MetricThermal    = "thermal"
	MetricDust       = "dust"
	MetricSoil       = "soil"
	MetricIndustrial = "industrial"
)

// metricSpec describes how one metric is read from a period record.
type metricSpec struct {
	name    string
	label   string
	unit    string
	chart   models.ChartType
	extract func(models.PeriodRecord) *float64
}

// metricSpecs is the fixed metric order of every Transform result.
var metricSpecs = []metricSpec{
	{
		name: MetricVegetation, label: "Vegetation Health", unit: "NDVI", chart: models.ChartLine,
		extract: func(r models.PeriodRecord) *float64 {
			if r.Vegetation == nil {
				return nil
			}
			return r.Vegetation.NDVIMean
		},
	},
	{
		name: MetricThermal, label: "Surface Temperature", unit: "°C", chart: models.ChartArea,
		extract: func(r models.PeriodRecord) *float64 {
			if r.Thermal == nil {
				return nil
			}
			return r.Thermal.TempMean
		},
	},
	{
		name: MetricDust, label: "Dust Levels", unit: "index", chart: models.ChartBar,
		extract: func(r models.PeriodRecord) *float64 {
			if r.Dust == nil {
				return nil
			}
			return r.Dust.DustMean
		},
	},
	{
		name: MetricSoil, label: "Soil Exposure", unit: "BSI", chart: models.ChartLine,
		extract: func(r models.PeriodRecord) *float64 {
			if r.Soil == nil {
				return nil
			}
			return r.Soil.BSIMean
		},
	},
	{
		name: MetricIndustrial, label: "Industrial Activity", unit: "score", chart: models.ChartCombination,
		extract: func(r models.PeriodRecord) *float64 {
			if r.Industrial == nil {
				return nil
			}
			return r.Industrial.OverallScore
		},
	},
}

// MetricNames returns the metric names in output order.
func MetricNames() []string {
	names := make([]string, len(metricSpecs))
	for i, s := range metricSpecs {
		names[i] = s.name
	}
	return names
}

// Transform derives the metrics of a batch. A batch without any time
// series yields an empty, non-nil slice.
func Transform(batch models.BatchAnalysisResult) []models.AnalysisMetric {
	periods := collectPeriods(batch.Results)
	if len(periods) == 0 {
		return []models.AnalysisMetric{}
	}

	out := make([]models.AnalysisMetric, 0, len(metricSpecs))
	for _, spec := range metricSpecs {
		points := make([]models.MetricPoint, 0, len(periods))
		mains := make([]float64, 0, len(periods))
		for _, p := range periods {
			var series [maxSeries]float64
			for slot := 0; slot < maxSeries; slot++ {
				series[slot] = p.mean(slot, spec.extract)
			}
			points = append(points, models.MetricPoint{
				Period:     p.label,
				Timestamp:  p.start,
				MainValue:  series[0],
				Reference1: series[1],
				Reference2: series[2],
				Reference3: series[3],
			})
			mains = append(mains, series[0])
		}
		out = append(out, models.AnalysisMetric{
			Name:      spec.name,
			Label:     spec.label,
			Unit:      spec.unit,
			ChartType: spec.chart,
			Data:      points,
			Trend:     CalculateTrend(mains),
		})
	}
	return out
}

// TransformResponse derives the metrics of a single response.
func TransformResponse(resp models.IndustrialResponse) []models.AnalysisMetric {
	return Transform(models.BatchAnalysisResult{Results: []models.IndustrialResponse{resp}})
}

// Summarize builds the headline stored with a record: the trend and main
// series of the industrial metric.
func Summarize(metrics []models.AnalysisMetric) models.RecordMetrics {
	summary := models.RecordMetrics{
		Trend:         CalculateTrend(nil),
		SparklineData: []float64{},
	}
	for _, m := range metrics {
		if m.Name != MetricIndustrial {
			continue
		}
		summary.Trend = m.Trend
		for _, p := range m.Data {
			summary.SparklineData = append(summary.SparklineData, p.MainValue)
		}
	}
	return summary
}

// AreaOrder returns the area names of resp in submission order. Without
// recorded names it falls back to sorted keys, since decoded JSON objects
// do not keep their key order.
func AreaOrder(resp models.IndustrialResponse) []string {
	if len(resp.AreaNames) > 0 {
		return resp.AreaNames
	}
	names := make([]string, 0, len(resp.TimeSeries))
	for name := range resp.TimeSeries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// periodData gathers, for one period label, the records of each series slot
// from every response that reported it.
type periodData struct {
	label string
	start time.Time
	slots [maxSeries][]models.PeriodRecord
}

// mean averages slot values over the responses reporting them. Missing
// fields count as 0; a slot with no records at all is 0.
func (p *periodData) mean(slot int, extract func(models.PeriodRecord) *float64) float64 {
	recs := p.slots[slot]
	if len(recs) == 0 {
		return 0
	}
	var sum float64
	for _, r := range recs {
		if v := extract(r); v != nil {
			sum += *v
		}
	}
	return sum / float64(len(recs))
}

func collectPeriods(results []models.IndustrialResponse) []*periodData {
	byLabel := make(map[string]*periodData)
	var ordered []*periodData

	for _, resp := range results {
		for slot, name := range AreaOrder(resp) {
			if slot >= maxSeries {
				break
			}
			for _, rec := range resp.TimeSeries[name] {
				p, ok := byLabel[rec.Period]
				if !ok {
					start, _ := PeriodStart(rec.Period)
					p = &periodData{label: rec.Period, start: start}
					byLabel[rec.Period] = p
					ordered = append(ordered, p)
				}
				p.slots[slot] = append(p.slots[slot], rec)
			}
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].start.Equal(ordered[j].start) {
			return ordered[i].start.Before(ordered[j].start)
		}
		return ordered[i].label < ordered[j].label
	})
	return ordered
}
