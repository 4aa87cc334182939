// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package similarity queries the similarity-search service for reference
// areas that resemble an operational area.
//
// One search is a single GET carrying the reference bbox and the search
// parameters as query values. The service ranks its matches; the client
// returns them in the order received. Failed or malformed replies surface as
// *FetchError and are never retried or replaced with synthetic data.
package similarity
