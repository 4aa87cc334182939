// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package transform

import (
	"math"

	"github.com/tomtom215/terrascope/internal/models"
)

// Trend period labels.
const (
	PeriodInsufficientData = "insufficient data"
	PeriodLast             = "last period"
	PeriodLastQuarter      = "last quarter"
)

// stableBelowPercent is the change under which a trend counts as stable.
const stableBelowPercent = 1.0

// CalculateTrend compares the last two values of a series.
//
// Fewer than two values yield a stable 0% "insufficient data" trend. When
// either of the last two values is zero the trend is a stable 0% "last
// period": a zero is as likely a missing measurement as a real reading, so
// no percentage is claimed. The guard does not mean the series is flat.
func CalculateTrend(values []float64) models.Trend {
	if len(values) < 2 {
		return models.Trend{Direction: models.TrendStable, Percentage: 0, Period: PeriodInsufficientData}
	}
	last := values[len(values)-1]
	prev := values[len(values)-2]
	if prev == 0 || last == 0 {
		return models.Trend{Direction: models.TrendStable, Percentage: 0, Period: PeriodLast}
	}

	pct := math.Round(math.Abs(last-prev)/math.Abs(prev)*100*100) / 100
	direction := models.TrendStable
	switch {
	case pct < stableBelowPercent:
	case last > prev:
		direction = models.TrendUp
	default:
		direction = models.TrendDown
	}
	return models.Trend{Direction: direction, Percentage: pct, Period: PeriodLastQuarter}
}
