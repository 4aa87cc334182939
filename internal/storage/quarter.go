// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tomtom215/terrascope/internal/models"
)

// Clock returns the current time. Tests replace it to pin the quarter.
type Clock func() time.Time

// CurrentQuarter returns the "YYYY-Qn" label of t.
func CurrentQuarter(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

// Quarter is a parsed quarter label.
type Quarter struct {
	Year int
	Q    int
}

// String renders the label.
func (q Quarter) String() string {
	return fmt.Sprintf("%d-Q%d", q.Year, q.Q)
}

// Before reports whether q precedes other.
func (q Quarter) Before(other Quarter) bool {
	if q.Year != other.Year {
		return q.Year < other.Year
	}
	return q.Q < other.Q
}

// ParseQuarter validates a "YYYY-Qn" label. Invalid labels wrap
// models.ErrPreconditionFailed.
func ParseQuarter(label string) (Quarter, error) {
	if len(label) != 7 || label[4] != '-' || label[5] != 'Q' {
		return Quarter{}, models.Precondition("invalid quarter %q, want YYYY-Qn", label)
	}
	year, err := strconv.Atoi(label[:4])
	if err != nil || year < 1 {
		return Quarter{}, models.Precondition("invalid quarter year in %q", label)
	}
	q := int(label[6] - '0')
	if q < 1 || q > 4 {
		return Quarter{}, models.Precondition("invalid quarter number in %q", label)
	}
	return Quarter{Year: year, Q: q}, nil
}
