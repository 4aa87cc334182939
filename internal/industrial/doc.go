// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package industrial runs the batch industrial-analysis service.
//
// Each request covers one operational area and exactly three matches, sent
// as four rectangles in fixed order. A company with several operational
// areas gets one request per area, issued sequentially; the first failure
// aborts the whole batch (RunBatch returns an *AreaError naming the area).
// Combine folds the per-area responses into one models.BatchAnalysisResult.
package industrial
