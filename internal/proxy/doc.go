// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package proxy forwards LLM requests with a bearer token attached.
//
// Browsers and the report service post to the proxy without credentials.
// The proxy obtains a token (a configured static token, or the platform's
// default credentials) and relays the request. The upstream status and body
// are returned verbatim, errors included.
package proxy
