// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package geo holds the pure geometry helpers used by the analysis pipeline.
//
// A user-drawn rectangle arrives as two opposite corners in any order and is
// normalized into a BoundingBox whose minimums never exceed its maximums.
// Two array conventions are in circulation and both are supported:
//
//   - corner form [tlx, tly, brx, bry] (top-left, bottom-right) used by the
//     map drawing layer
//   - extent form [minLon, minLat, maxLon, maxLat] used on the wire by the
//     similarity and industrial-analysis services
//
// # Area approximation
//
// ApproximateAreaKm2 projects the box onto a flat plane at its average
// latitude (R = 6371 km). The result is adequate at city and region scale.
// It degrades for spans beyond roughly 500 km and near the poles, where the
// single cosine factor no longer represents the box. This is a known
// precision boundary of the approximation, not a defect.
//
// Boxes narrower than MinSpanDegrees on either axis are degenerate and must
// be rejected by callers with Validate before entering the pipeline.
package geo
