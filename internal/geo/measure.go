// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used by every calculation here.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Centroid returns the arithmetic mean of each axis.
func Centroid(b BoundingBox) Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// ApproximateAreaKm2 returns the box area using a flat-earth projection at
// the box's average latitude:
//
//	width  = R * dLon(rad) * cos(avgLat)
//	height = R * dLat(rad)
//
// See the package documentation for its precision boundary.
func ApproximateAreaKm2(b BoundingBox) float64 {
	n := b.Normalize()
	avgLat := toRadians((n.MinLat + n.MaxLat) / 2)
	width := EarthRadiusKm * toRadians(n.Width()) * math.Cos(avgLat)
	height := EarthRadiusKm * toRadians(n.Height())
	return width * height
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return angle.Radians() * EarthRadiusKm
}

// CentroidDistanceKm returns the distance between the centroids of two boxes.
func CentroidDistanceKm(a, b BoundingBox) float64 {
	return DistanceKm(Centroid(a), Centroid(b))
}
