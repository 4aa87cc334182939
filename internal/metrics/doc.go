// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at /metrics:

	curl http://localhost:3857/metrics

# Available Metrics

API Metrics:
  - api_requests_total: requests by method, endpoint, status_code (counter)
  - api_request_duration_seconds: request latency (histogram)
  - api_active_requests: in-flight requests (gauge)

Upstream Metrics:
  - upstream_requests_total: calls to the similarity, industrial and llm services by outcome
  - upstream_request_duration_seconds: upstream latency (histogram)
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total, circuit_breaker_state_transitions_total,
    circuit_breaker_consecutive_failures

Storage Metrics:
  - storage_operations_total: tier operations by tier, operation, result
  - storage_operation_duration_seconds: tier operation latency (histogram)
  - storage_persistence_degraded_total: durable writes that failed after a local success

Pipeline and Report Metrics:
  - pipeline_runs_total, pipeline_duration_seconds
  - taskgroup_tasks_total: fan-out task outcomes by group
  - report_generations_total, report_generation_duration_seconds
  - llm_proxy_requests_total: proxied calls by upstream status code

Cache and WebSocket Metrics:
  - cache_hits_total, cache_misses_total
  - websocket_connections, websocket_messages_sent_total, websocket_errors_total

# Usage

	start := time.Now()
	err := client.Do(ctx)
	metrics.RecordUpstreamRequest("similarity", outcome(err), time.Since(start))

# Thread Safety

All functions are safe for concurrent use; Prometheus collectors handle
their own synchronization.
*/
package metrics
