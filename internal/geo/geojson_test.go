// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package geo

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestBoundRoundTrip(t *testing.T) {
	t.Parallel()

	box := BoundingBox{MinLon: -74.1, MinLat: -40.8, MaxLon: -73.9, MaxLat: -40.6}
	if got := FromBound(box.Bound()); got != box {
		t.Errorf("FromBound(Bound()) = %v, want %v", got, box)
	}
}

func TestFeature(t *testing.T) {
	t.Parallel()

	box := BoundingBox{MinLon: 1, MinLat: 2, MaxLon: 3, MaxLat: 4}
	f := Feature(box, map[string]interface{}{"name": "MyArea", "role": "operational"})

	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("geometry type = %T, want orb.Polygon", f.Geometry)
	}
	if len(poly) != 1 || len(poly[0]) != 5 {
		t.Errorf("polygon ring = %v, want one closed ring of 5 points", poly)
	}
	if f.Properties["name"] != "MyArea" {
		t.Errorf("name property = %v, want MyArea", f.Properties["name"])
	}
	if got := f.BBox.Bound(); got != box.Bound() {
		t.Errorf("feature bbox = %v, want %v", got, box.Bound())
	}
}
