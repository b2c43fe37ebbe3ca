// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package rules

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry errors.
var (
	// ErrRuleNotFound indicates an operation referenced an unknown rule id.
	ErrRuleNotFound = fmt.Errorf("rule not found")

	// ErrRuleExists indicates an Add with an id already in the registry.
	ErrRuleExists = fmt.Errorf("rule already exists")
)

// Registry is the shared mutable rule set. All mutations are immediately
// visible to subsequent Evaluate calls; activation state is never cached
// across calls.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]BusinessRule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]BusinessRule)}
}

// Add inserts a rule. The id must not already exist; an empty Type or an
// unknown Type is rejected.
func (reg *Registry) Add(rule BusinessRule) error {
	if rule.ID == "" {
		return fmt.Errorf("add rule: empty id")
	}
	if !rule.Type.Valid() {
		return fmt.Errorf("add rule %s: unknown type %q", rule.ID, rule.Type)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rules[rule.ID]; exists {
		return fmt.Errorf("%w: %s", ErrRuleExists, rule.ID)
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}
	reg.rules[rule.ID] = rule
	return nil
}

// Remove deletes a rule by id.
func (reg *Registry) Remove(id string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rules[id]; !exists {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	delete(reg.rules, id)
	return nil
}

// Toggle flips a rule's active flag and returns the new state.
func (reg *Registry) Toggle(id string) (bool, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	rule, exists := reg.rules[id]
	if !exists {
		return false, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	rule.Active = !rule.Active
	reg.rules[id] = rule
	return rule.Active, nil
}

// Get returns a copy of the rule with the given id.
func (reg *Registry) Get(id string) (BusinessRule, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rule, exists := reg.rules[id]
	if !exists {
		return BusinessRule{}, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	return rule, nil
}

// List returns all rules sorted by id.
func (reg *Registry) List() []BusinessRule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]BusinessRule, 0, len(reg.rules))
	for _, r := range reg.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Active returns only the active rules, sorted by id. Inactive rules are
// excluded here so evaluation never touches them.
func (reg *Registry) Active() []BusinessRule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]BusinessRule, 0, len(reg.rules))
	for _, r := range reg.rules {
		if r.Active {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SeedRules returns the default rule set the original deployment shipped
// with: max price deviation, minimum confidence, same category (inactive),
// and stock availability.
func SeedRules() []BusinessRule {
	return []BusinessRule{
		{
			ID:          "rule-price-deviation",
			Name:        "Maximum Price Difference",
			Description: "Recommendation may not deviate more than 50% from the original product's price",
			Type:        TypePriceDeviation,
			Active:      true,
			Parameters:  Parameters{MaxRatio: Float64(0.5)},
		},
		{
			ID:          "rule-min-confidence",
			Name:        "Minimum Confidence",
			Description: "Recommendations must have at least 80% confidence",
			Type:        TypeMinConfidence,
			Active:      true,
			Parameters:  Parameters{MinConfidence: Float64(80.0)},
		},
		{
			ID:          "rule-category-match",
			Name:        "Same Category",
			Description: "Recommended product must share the source product's category",
			Type:        TypeCategoryMatch,
			Active:      false,
		},
		{
			ID:          "rule-stock-threshold",
			Name:        "Stock Availability",
			Description: "Only recommend products with more than 5 units in stock",
			Type:        TypeStockThreshold,
			Active:      true,
			Parameters:  Parameters{MinStock: Int(5)},
		},
	}
}
