// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package upstream is the shared HTTP JSON client for the external analysis
services (similarity search, industrial analysis, LLM generation) and for
the remote persistence tier.

Every call goes through:

  - an optional token-bucket rate limiter (golang.org/x/time/rate)
  - a circuit breaker (sony/gobreaker/v2): half-open allows 3 probes, counts
    reset every minute, the circuit stays open for 2 minutes and trips at 60%
    failures once 10 requests were seen
  - a per-call timeout taken from the service configuration

Failures are returned as *models.UpstreamError, which matches
models.ErrUpstreamUnavailable with errors.Is. Client errors (4xx) are
reported the same way but do not count against the breaker.
*/
package upstream
