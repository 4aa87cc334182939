// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package logging provides the zerolog-based logger used across Terrascope.
//
// A single global logger is configured once at startup from the logging
// section of the configuration and then accessed through package-level
// helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("quarter", q).Msg("Analysis saved")
//
// Request-scoped logging goes through Ctx, which adds the request ID set by
// the HTTP middleware and the correlation ID that follows one pipeline run
// (similarity fan-out, industrial batch, storage write) across components:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Durable tier write failed")
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
//
// The SlogHandler adapter lets slog-only libraries (the suture supervisor
// via sutureslog) write into the same stream.
package logging
