// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package metrics exposes Prometheus instrumentation for the Agora server:
// HTTP endpoints, DuckDB queries, the travel-time oracle and its cache,
// and plan computation latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agora_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agora_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agora_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Travel-time oracle metrics.
	OracleLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_oracle_lookups_total",
			Help: "Total number of travel-time lookups by source",
		},
		[]string{"source"}, // "cache", "provider", "fallback"
	)

	OracleProviderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agora_oracle_provider_duration_seconds",
			Help:    "Duration of routing provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	OracleProviderErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agora_oracle_provider_errors_total",
			Help: "Total number of routing provider failures",
		},
	)

	OracleBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agora_oracle_breaker_state",
			Help: "Routing provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Travel-time cache metrics.
	TravelCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agora_travel_cache_hits_total",
			Help: "Total number of travel-time cache hits",
		},
	)

	TravelCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agora_travel_cache_misses_total",
			Help: "Total number of travel-time cache misses",
		},
	)

	// Venue search metrics.
	VenueSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_venue_searches_total",
			Help: "Total number of venue searches by source",
		},
		[]string{"source"}, // "store", "provider"
	)

	VenueProviderErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agora_venue_provider_errors_total",
			Help: "Total number of venue provider failures",
		},
	)

	// Planning metrics.
	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agora_plan_duration_seconds",
			Help:    "End-to-end duration of plan computation in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_plans_total",
			Help: "Total number of plan computations by outcome",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	MidpointCandidatesEvaluated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agora_midpoint_candidates_evaluated",
			Help:    "Number of hotspot candidates evaluated per optimization",
			Buckets: []float64{1, 3, 5, 7, 10, 15, 25},
		},
	)

	// Review learning metrics.
	ReviewsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agora_reviews_processed_total",
			Help: "Total number of reviews folded into preference profiles",
		},
	)
)

// RecordAPIRequest records one finished API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records one database query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordOracleLookup records one travel-time lookup.
// Source is "cache", "provider", or "fallback".
func RecordOracleLookup(source string) {
	OracleLookupsTotal.WithLabelValues(source).Inc()
}

// RecordPlan records one plan computation.
func RecordPlan(duration time.Duration, err error) {
	PlanDuration.Observe(duration.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PlansTotal.WithLabelValues(outcome).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
