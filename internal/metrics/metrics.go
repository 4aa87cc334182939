// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream Metrics (similarity, industrial, llm)
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to upstream analysis services",
		},
		[]string{"service", "outcome"}, // outcome: "success", "error", "rejected"
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 120},
		},
		[]string{"service"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Storage Metrics
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Total number of analysis storage tier operations",
		},
		[]string{"tier", "operation", "result"}, // result: "ok", "not_found", "error"
	)

	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Analysis storage tier operation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"tier", "operation"},
	)

	PersistenceDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_persistence_degraded_total",
			Help: "Total number of durable tier writes that failed while the local tier succeeded",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "similarity"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Pipeline Metrics
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of environmental analysis pipeline runs",
		},
		[]string{"result"}, // "success", "failure"
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "Duration of full analysis pipeline runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	TaskGroupTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskgroup_tasks_total",
			Help: "Total number of fan-out tasks by group and outcome",
		},
		[]string{"group", "outcome"}, // outcome: "succeeded", "failed"
	)

	// Report Metrics
	ReportGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_generations_total",
			Help: "Total number of report generation attempts",
		},
		[]string{"variant", "result"},
	)

	ReportGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_generation_duration_seconds",
			Help:    "Report generation duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"variant"},
	)

	// LLM Proxy Metrics
	LLMProxyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_proxy_requests_total",
			Help: "Total number of requests forwarded by the LLM proxy",
		},
		[]string{"status_code"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one call to an upstream service.
func RecordUpstreamRequest(service, outcome string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
	UpstreamDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordStorageOperation records a storage tier operation. result is
// "ok", "not_found" or "error".
func RecordStorageOperation(tier, operation, result string, duration time.Duration) {
	StorageOperations.WithLabelValues(tier, operation, result).Inc()
	StorageDuration.WithLabelValues(tier, operation).Observe(duration.Seconds())
}

// RecordPersistenceDegraded counts a durable-tier write that failed after
// the local write succeeded.
func RecordPersistenceDegraded() {
	PersistenceDegraded.Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordPipelineRun records a completed pipeline run.
func RecordPipelineRun(duration time.Duration, err error) {
	PipelineDuration.Observe(duration.Seconds())
	if err != nil {
		PipelineRuns.WithLabelValues("failure").Inc()
		return
	}
	PipelineRuns.WithLabelValues("success").Inc()
}

// RecordTask records the outcome of one fan-out task.
func RecordTask(group string, err error) {
	if err != nil {
		TaskGroupTasks.WithLabelValues(group, "failed").Inc()
		return
	}
	TaskGroupTasks.WithLabelValues(group, "succeeded").Inc()
}

// RecordReportGeneration records a report generation attempt.
func RecordReportGeneration(variant string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ReportGenerations.WithLabelValues(variant, result).Inc()
	ReportGenerationDuration.WithLabelValues(variant).Observe(duration.Seconds())
}
