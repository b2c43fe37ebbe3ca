// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the curation engine:
// - Ranking throughput and latency
// - Workflow transitions and batch outcomes
// - Rule evaluations and violations
// - Audit writes
// - API endpoint latency and throughput

var (
	// Ranking Metrics
	RankingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total number of ranking requests",
		},
		[]string{"outcome"}, // "success", "malformed_input", "provider_error"
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Duration of ranking requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RankingCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_candidates",
			Help:    "Number of candidates returned per ranking request",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8},
		},
	)

	// Workflow Metrics
	WorkflowTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curation_transitions_total",
			Help: "Total number of curation item transition attempts",
		},
		[]string{"transition", "outcome"}, // transition: "approve", "reject", "edit"; outcome: "success", "invalid_transition", "not_found"
	)

	WorkflowBatchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curation_batch_size",
			Help:    "Number of ids per batch transition",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"transition"},
	)

	WorkflowItemsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curation_items_pending",
			Help: "Current number of items awaiting review",
		},
	)

	// Rule Engine Metrics
	RuleEvaluations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rule_evaluations_total",
			Help: "Total number of item evaluation passes",
		},
	)

	RuleViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_violations_total",
			Help: "Total number of rule violations flagged",
		},
		[]string{"rule_type"},
	)

	RuleEvaluationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_evaluation_errors_total",
			Help: "Total number of custom rule evaluator errors (fail-open)",
		},
		[]string{"rule_id"},
	)

	// Audit Metrics
	AuditWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_writes_total",
			Help: "Total number of audit entry writes",
		},
		[]string{"action_type", "outcome"}, // outcome: "success", "error"
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordRanking records the outcome of one ranking request.
func RecordRanking(outcome string, candidates int, duration time.Duration) {
	RankingRequests.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		RankingDuration.Observe(duration.Seconds())
		RankingCandidates.Observe(float64(candidates))
	}
}

// RecordTransition records one transition attempt.
func RecordTransition(transition, outcome string) {
	WorkflowTransitions.WithLabelValues(transition, outcome).Inc()
}

// RecordAPIRequest records metrics for an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
