// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package pipeline runs the region-to-analysis flow.

FindMatches fans similarity searches out across operational areas. Searches
run concurrently and settle in any order; each settlement is broadcast as a
similarity_progress message so a dashboard can render matches as they
arrive. Results are cached by bounding box and search parameters.

PerformAnalysis takes each area with its three matches, runs the industrial
analysis one area at a time (the first failure aborts the run), derives the
chart metrics and saves the record for the company's quarter.
*/
package pipeline
