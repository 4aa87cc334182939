// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package transform

import (
	"strconv"
	"time"
)

// PeriodStart returns the first day of the quarter named by label
// ("YYYY-Qn"), in UTC. ok is false for labels that do not parse.
func PeriodStart(label string) (t time.Time, ok bool) {
	if len(label) != 7 || label[4] != '-' || label[5] != 'Q' {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(label[:4])
	if err != nil {
		return time.Time{}, false
	}
	q := int(label[6] - '0')
	if q < 1 || q > 4 {
		return time.Time{}, false
	}
	month := time.Month((q-1)*3 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}
