// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package transform reshapes industrial-analysis responses into the five
// chart-ready metrics of the dashboard.
//
// Everything here is a pure function of its input: the same batch always
// yields the same metrics, so records never need to store derived series.
//
// Areas are positional. The first submitted rectangle is the operational
// area (MainValue); the next three are Reference1..3. A missing numeric field
// becomes 0, which cannot be told apart from a measured zero without the raw
// record.
//
// A batch with several responses (one per operational area) is merged per
// period: each series value is the mean over the responses that report that
// period.
package transform
