// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package rules implements the business rule engine: a mutable registry of
// administrator-managed rules and an evaluator that flags curation items
// violating the active ones.
//
// Violations are advisory. They are surfaced to reviewers but never block a
// workflow transition; hard blocking would be a policy layered above the
// workflow, and is deliberately not implemented here.
package rules

import (
	"time"

	"github.com/goccy/go-json"
)

// Type identifies the rule evaluation semantics.
type Type string

const (
	// TypePriceDeviation flags items whose price deviates from the source
	// product's base price by more than Parameters.MaxRatio.
	TypePriceDeviation Type = "price_deviation"

	// TypeMinConfidence flags items below Parameters.MinConfidence.
	TypeMinConfidence Type = "min_confidence"

	// TypeCategoryMatch flags items whose category differs from the source
	// product's category.
	TypeCategoryMatch Type = "category_match"

	// TypeStockThreshold flags items whose recommended product has stock at
	// or below Parameters.MinStock.
	TypeStockThreshold Type = "stock_threshold"

	// TypeCustom evaluates a configuration-supplied JsonLogic expression.
	// Custom rules without a usable expression never violate (fail open).
	TypeCustom Type = "custom"
)

// Valid reports whether the type is one of the five known kinds.
func (t Type) Valid() bool {
	switch t {
	case TypePriceDeviation, TypeMinConfidence, TypeCategoryMatch, TypeStockThreshold, TypeCustom:
		return true
	}
	return false
}

// Parameter defaults applied when a rule omits them.
const (
	DefaultMaxRatio      = 0.5
	DefaultMinConfidence = 80.0
	DefaultMinStock      = 5
)

// Parameters holds type-specific rule tuning. Only the fields relevant to
// the rule's type are read. Numeric fields are pointers so an explicit
// zero ("flag exactly out-of-stock", "no confidence floor") stays distinct
// from an omitted parameter, which falls back to the default.
type Parameters struct {
	// MaxRatio is the maximum allowed price deviation ratio
	// (TypePriceDeviation). Nil means DefaultMaxRatio.
	MaxRatio *float64 `json:"max_ratio,omitempty" koanf:"max_ratio"`

	// MinConfidence is the confidence floor (TypeMinConfidence).
	// Nil means DefaultMinConfidence.
	MinConfidence *float64 `json:"min_confidence,omitempty" koanf:"min_confidence"`

	// MinStock is the stock floor (TypeStockThreshold).
	// Nil means DefaultMinStock.
	MinStock *int `json:"min_stock,omitempty" koanf:"min_stock"`

	// Logic is the JsonLogic expression for TypeCustom rules, evaluated
	// against the item subject. Empty means the rule never violates.
	Logic json.RawMessage `json:"logic,omitempty" koanf:"logic"`
}

// Float64 returns a pointer to v, for building Parameters literals.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for building Parameters literals.
func Int(v int) *int { return &v }

// BusinessRule is a mutable, administrator-managed rule. Toggling Active
// takes effect on the next evaluation pass; it never touches items that are
// already terminal.
type BusinessRule struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        Type       `json:"type"`
	Active      bool       `json:"active"`
	Parameters  Parameters `json:"parameters"`
	CreatedAt   time.Time  `json:"created_at"`
}

// maxRatio returns the effective price deviation bound.
func (r *BusinessRule) maxRatio() float64 {
	if r.Parameters.MaxRatio != nil {
		return *r.Parameters.MaxRatio
	}
	return DefaultMaxRatio
}

// minConfidence returns the effective confidence floor.
func (r *BusinessRule) minConfidence() float64 {
	if r.Parameters.MinConfidence != nil {
		return *r.Parameters.MinConfidence
	}
	return DefaultMinConfidence
}

// minStock returns the effective stock floor.
func (r *BusinessRule) minStock() int {
	if r.Parameters.MinStock != nil {
		return *r.Parameters.MinStock
	}
	return DefaultMinStock
}

// Subject is the rule engine's view of a curation item. The curation
// package converts its items into subjects before evaluation, which keeps
// this package free of a dependency on workflow state.
type Subject struct {
	// ItemID identifies the curation item under evaluation.
	ItemID string

	// Price is the item's current (possibly edited) price.
	Price float64

	// Confidence is the candidate confidence copied onto the item.
	Confidence float64

	// Category is the item's current category label.
	Category string

	// SourceBasePrice is the source product's base price.
	SourceBasePrice float64

	// SourceCategory is the source product's category label.
	SourceCategory string

	// RecommendedStock is the recommended product's stock level.
	RecommendedStock int
}

// asData flattens the subject into the variable map visible to custom
// JsonLogic expressions.
func (s *Subject) asData() map[string]any {
	return map[string]any{
		"item_id":           s.ItemID,
		"price":             s.Price,
		"confidence":        s.Confidence,
		"category":          s.Category,
		"source_base_price": s.SourceBasePrice,
		"source_category":   s.SourceCategory,
		"recommended_stock": s.RecommendedStock,
	}
}
