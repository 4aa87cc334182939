// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Bound converts the box to an orb.Bound.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// FromBound converts an orb.Bound back into a box.
func FromBound(bound orb.Bound) BoundingBox {
	return FromArray([4]float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()})
}

// Feature returns the box as a GeoJSON polygon feature with the given
// properties, for map overlays of operational and reference areas.
func Feature(b BoundingBox, props map[string]interface{}) *geojson.Feature {
	bound := b.Bound()
	f := geojson.NewFeature(bound.ToPolygon())
	f.BBox = geojson.NewBBox(bound)
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}
