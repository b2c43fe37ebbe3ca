// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

/*
Package metrics provides Prometheus metrics collection for observability.

Collectors are registered with the default registry via promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8385/metrics

# Available Metrics

Ranking:
  - ranking_requests_total: ranking requests by outcome (counter)
  - ranking_duration_seconds: ranking latency (histogram)
  - ranking_candidates: candidates returned per request (histogram)

Workflow:
  - curation_transitions_total: transition attempts by transition and outcome (counter)
  - curation_batch_size: ids per batch operation (histogram)
  - curation_items_pending: items awaiting review (gauge)

Rules:
  - rule_evaluations_total: evaluation passes (counter)
  - rule_violations_total: violations by rule type (counter)
  - rule_evaluation_errors_total: custom evaluator errors, fail-open (counter)

Audit:
  - audit_writes_total: audit entry writes by action type and outcome (counter)

API:
  - api_requests_total, api_request_duration_seconds, api_active_requests

All recording functions are safe for concurrent use; the Prometheus client
library handles synchronization internally.
*/
package metrics
