// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinSpanDegrees is the smallest width or height a usable box may have.
const MinSpanDegrees = 0.0001

var (
	// ErrDegenerateBox is returned for boxes with near-zero width or height.
	ErrDegenerateBox = errors.New("degenerate bounding box")

	// ErrOutOfRange is returned for coordinates outside [-180,180] x [-90,90].
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrMalformedBBox is returned when a textual bbox cannot be parsed.
	ErrMalformedBBox = errors.New("malformed bounding box")
)

// Corner is one corner of a drawn rectangle.
type Corner struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Point is a geographic position.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is an axis-aligned box in degrees. After normalization
// MinLon <= MaxLon and MinLat <= MaxLat.
type BoundingBox struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// NormalizeBoundingBox builds a box from two opposite corners given in any
// order. It is symmetric: NormalizeBoundingBox(a, b) == NormalizeBoundingBox(b, a).
func NormalizeBoundingBox(a, b Corner) BoundingBox {
	return BoundingBox{
		MinLon: min(a.Lon, b.Lon),
		MinLat: min(a.Lat, b.Lat),
		MaxLon: max(a.Lon, b.Lon),
		MaxLat: max(a.Lat, b.Lat),
	}
}

// Normalize returns the box with its min/max fields ordered.
func (b BoundingBox) Normalize() BoundingBox {
	return NormalizeBoundingBox(Corner{Lon: b.MinLon, Lat: b.MinLat}, Corner{Lon: b.MaxLon, Lat: b.MaxLat})
}

// FromCorners converts the corner form [tlx, tly, brx, bry] into a normalized box.
func FromCorners(c [4]float64) BoundingBox {
	return NormalizeBoundingBox(Corner{Lon: c[0], Lat: c[1]}, Corner{Lon: c[2], Lat: c[3]})
}

// Corners returns the corner form [tlx, tly, brx, bry]: top-left is
// (minLon, maxLat) and bottom-right is (maxLon, minLat).
func (b BoundingBox) Corners() [4]float64 {
	return [4]float64{b.MinLon, b.MaxLat, b.MaxLon, b.MinLat}
}

// FromArray converts the extent form [minLon, minLat, maxLon, maxLat] into a
// normalized box.
func FromArray(a [4]float64) BoundingBox {
	return NormalizeBoundingBox(Corner{Lon: a[0], Lat: a[1]}, Corner{Lon: a[2], Lat: a[3]})
}

// FromSlice is FromArray for decoded JSON arrays of unknown length.
func FromSlice(s []float64) (BoundingBox, error) {
	if len(s) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: want 4 values, got %d", ErrMalformedBBox, len(s))
	}
	return FromArray([4]float64{s[0], s[1], s[2], s[3]}), nil
}

// Array returns the extent form [minLon, minLat, maxLon, maxLat].
func (b BoundingBox) Array() [4]float64 {
	return [4]float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

// ParseBBox parses "minLon,minLat,maxLon,maxLat".
func ParseBBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: %q", ErrMalformedBBox, s)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("%w: %q: %v", ErrMalformedBBox, s, err)
		}
		vals[i] = v
	}
	return FromArray(vals), nil
}

// QueryString formats the box as "minLon,minLat,maxLon,maxLat" with the
// shortest exact representation of each value.
func (b BoundingBox) QueryString() string {
	vals := b.Array()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Width returns the longitudinal span in degrees.
func (b BoundingBox) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitudinal span in degrees.
func (b BoundingBox) Height() float64 { return b.MaxLat - b.MinLat }

// IsDegenerate reports whether either span is below MinSpanDegrees.
func (b BoundingBox) IsDegenerate() bool {
	n := b.Normalize()
	return n.Width() < MinSpanDegrees || n.Height() < MinSpanDegrees
}

// Validate rejects degenerate boxes and out-of-range coordinates.
func (b BoundingBox) Validate() error {
	if b.MinLon < -180 || b.MaxLon > 180 || b.MinLon > 180 || b.MaxLon < -180 {
		return fmt.Errorf("%w: longitude span [%g, %g]", ErrOutOfRange, b.MinLon, b.MaxLon)
	}
	if b.MinLat < -90 || b.MaxLat > 90 || b.MinLat > 90 || b.MaxLat < -90 {
		return fmt.Errorf("%w: latitude span [%g, %g]", ErrOutOfRange, b.MinLat, b.MaxLat)
	}
	if b.IsDegenerate() {
		return fmt.Errorf("%w: %.6f x %.6f degrees", ErrDegenerateBox, b.Normalize().Width(), b.Normalize().Height())
	}
	return nil
}

// String implements fmt.Stringer.
func (b BoundingBox) String() string {
	return "[" + b.QueryString() + "]"
}
