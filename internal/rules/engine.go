// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package rules

import (
	"bytes"
	"fmt"
	"math"

	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/iarecomend/curator/internal/metrics"
)

// ErrEvaluation indicates a Custom rule's evaluator failed unexpectedly.
// Evaluation errors are fail-open: they are logged, counted, and never
// surfaced as violations.
var ErrEvaluation = fmt.Errorf("rule evaluation failed")

// Engine evaluates subjects against the registry's active rules.
// Safe for concurrent use.
type Engine struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewEngine creates an engine over the given registry.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(registry *Registry, logger zerolog.Logger) *Engine {
	return &Engine{
		registry: registry,
		logger:   logger.With().Str("component", "rules").Logger(),
	}
}

// Registry returns the engine's underlying rule registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Evaluate returns the ids of active rules the subject violates. Inactive
// rules are skipped entirely and consume no evaluation cost. The empty set
// is represented by an empty (non-nil) map.
func (e *Engine) Evaluate(subject *Subject) map[string]struct{} {
	violated := make(map[string]struct{})

	for _, rule := range e.registry.Active() {
		hit, err := e.evaluateOne(&rule, subject)
		if err != nil {
			// Fail open: an erroring evaluator never produces a violation.
			metrics.RuleEvaluationErrors.WithLabelValues(rule.ID).Inc()
			e.logger.Warn().
				Err(err).
				Str("rule", rule.ID).
				Str("item", subject.ItemID).
				Msg("rule evaluation failed, treating as no violation")
			continue
		}
		if hit {
			violated[rule.ID] = struct{}{}
		}
	}

	return violated
}

func (e *Engine) evaluateOne(rule *BusinessRule, subject *Subject) (bool, error) {
	switch rule.Type {
	case TypePriceDeviation:
		// A zero-priced source product cannot deviate meaningfully.
		if subject.SourceBasePrice == 0 {
			return false, nil
		}
		ratio := math.Abs(subject.Price-subject.SourceBasePrice) / subject.SourceBasePrice
		return ratio > rule.maxRatio(), nil

	case TypeMinConfidence:
		return subject.Confidence < rule.minConfidence(), nil

	case TypeCategoryMatch:
		return subject.Category != subject.SourceCategory, nil

	case TypeStockThreshold:
		return subject.RecommendedStock <= rule.minStock(), nil

	case TypeCustom:
		return e.evaluateCustom(rule, subject)

	default:
		return false, fmt.Errorf("%w: unknown rule type %q", ErrEvaluation, rule.Type)
	}
}

// evaluateCustom applies the rule's JsonLogic expression to the subject.
// An expression that yields true is a violation. A missing expression, a
// malformed expression, or a non-boolean result all fail open.
func (e *Engine) evaluateCustom(rule *BusinessRule, subject *Subject) (bool, error) {
	if len(rule.Parameters.Logic) == 0 {
		return false, nil
	}

	data, err := json.Marshal(subject.asData())
	if err != nil {
		return false, fmt.Errorf("%w: marshal subject: %v", ErrEvaluation, err)
	}

	var result bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(rule.Parameters.Logic), bytes.NewReader(data), &result); err != nil {
		return false, fmt.Errorf("%w: apply logic: %v", ErrEvaluation, err)
	}

	var out any
	if err := json.Unmarshal(result.Bytes(), &out); err != nil {
		return false, fmt.Errorf("%w: decode result: %v", ErrEvaluation, err)
	}

	hit, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression returned %T, want bool", ErrEvaluation, out)
	}
	return hit, nil
}
