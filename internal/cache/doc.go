// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package cache provides a thread-safe in-memory cache with TTL expiry.
//
// The pipeline caches similarity search results so that re-running a
// search for the same box and parameters within the TTL does not hit the
// upstream service again:
//
//	results := cache.New[[]models.SimilarArea]("similarity", 15*time.Minute)
//	defer results.Close()
//
//	key := cache.GenerateKey("similarity", struct {
//	    BBox   geo.BoundingBox
//	    Params similarity.SearchParams
//	}{area.BBox, params})
//	if matches, ok := results.Get(key); ok {
//	    return matches, nil
//	}
//
// Expired entries are dropped lazily on Get and by a background sweep that
// stops when Close is called. Hits and misses are exported as the
// cache_hits_total and cache_misses_total counters, labelled with the
// cache name.
package cache
