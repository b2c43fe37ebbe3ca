// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package rules

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ruleDef is the YAML shape of a rule definition. Custom rule logic is
// written as a YAML mapping and converted to JSON before evaluation.
type ruleDef struct {
	ID          string        `koanf:"id"`
	Name        string        `koanf:"name"`
	Description string        `koanf:"description"`
	Type        string        `koanf:"type"`
	Active      bool          `koanf:"active"`
	Parameters  ruleDefParams `koanf:"parameters"`
}

// Numeric parameters are pointers so an omitted key stays distinct from an
// explicit zero.
type ruleDefParams struct {
	MaxRatio      *float64       `koanf:"max_ratio"`
	MinConfidence *float64       `koanf:"min_confidence"`
	MinStock      *int           `koanf:"min_stock"`
	Logic         map[string]any `koanf:"logic"`
}

// LoadFile reads business rule definitions from a YAML file.
//
// Expected shape:
//
//	rules:
//	  - id: rule-price-deviation
//	    name: Maximum Price Difference
//	    type: price_deviation
//	    active: true
//	    parameters:
//	      max_ratio: 0.5
func LoadFile(path string) ([]BusinessRule, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load rules file %s: %w", path, err)
	}

	var defs []ruleDef
	if err := k.Unmarshal("rules", &defs); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	out := make([]BusinessRule, 0, len(defs))
	for i, def := range defs {
		rule, err := def.toRule()
		if err != nil {
			return nil, fmt.Errorf("rules file %s, entry %d: %w", path, i, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

func (d *ruleDef) toRule() (BusinessRule, error) {
	t := Type(d.Type)
	if !t.Valid() {
		return BusinessRule{}, fmt.Errorf("unknown rule type %q", d.Type)
	}

	rule := BusinessRule{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        t,
		Active:      d.Active,
		Parameters: Parameters{
			MaxRatio:      d.Parameters.MaxRatio,
			MinConfidence: d.Parameters.MinConfidence,
			MinStock:      d.Parameters.MinStock,
		},
	}

	if len(d.Parameters.Logic) > 0 {
		logic, err := json.Marshal(d.Parameters.Logic)
		if err != nil {
			return BusinessRule{}, fmt.Errorf("rule %s: encode custom logic: %w", d.ID, err)
		}
		rule.Parameters.Logic = logic
	}

	return rule, nil
}
