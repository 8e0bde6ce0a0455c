// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

// Package metrics provides Prometheus instrumentation for spacesd:
// cache rebuild outcomes, upstream request behavior, schedule fetches,
// API endpoint latency, and circuit breaker state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cache rebuild metrics
	RebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacesd_rebuilds_total",
			Help: "Total number of cache rebuild attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "skipped"
	)

	RebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spacesd_rebuild_duration_seconds",
			Help:    "Duration of full cache rebuilds in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
	)

	SpaceFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spacesd_space_fetch_failures_total",
			Help: "Total number of per-space detail fetches dropped from a rebuild",
		},
	)

	SnapshotSpaces = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spacesd_snapshot_spaces",
			Help: "Number of spaces in the current snapshot per type bucket",
		},
		[]string{"type"},
	)

	SnapshotBuiltTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spacesd_snapshot_built_timestamp_seconds",
			Help: "Unix timestamp of the last successful snapshot install",
		},
	)

	// Schedule fetch metrics
	ScheduleFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacesd_schedule_fetches_total",
			Help: "Total number of per-space schedule fetches by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	ScheduleEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spacesd_schedule_events_dropped_total",
			Help: "Total number of upstream events dropped for missing period bounds",
		},
	)

	// Upstream client metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spacesd_upstream_request_duration_seconds",
			Help:    "Duration of upstream Fenix API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"}, // "listing", "detail", "day"
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacesd_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spacesd_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spacesd_api_active_requests",
			Help: "Number of API requests currently in flight",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spacesd_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacesd_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacesd_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
