// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"github.com/iarecomend/curator/internal/rules"
)

// SurfaceRequest asks the workflow to generate a fresh recommendation batch
// for one customer.
type SurfaceRequest struct {
	CustomerID   string `json:"customer_id" validate:"required,max=100"`
	AgentRef     string `json:"agent_ref" validate:"required,max=100"`
	DesiredCount int    `json:"desired_count" validate:"required,min=6,max=8"`
}

// EditItemRequest carries the reviewer-editable fields of a pending item.
// Nil fields are left untouched.
type EditItemRequest struct {
	Price                *float64 `json:"price" validate:"omitempty,gte=0"`
	Rationale            *string  `json:"rationale" validate:"omitempty,max=2000"`
	RecommendedProductID *string  `json:"recommended_product_id" validate:"omitempty,max=100"`
}

// BatchRequest names the items a bulk approve or reject should process.
type BatchRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}

// CreateRuleRequest adds a business rule to the registry.
type CreateRuleRequest struct {
	ID          string           `json:"id" validate:"required,max=100"`
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	Type        string           `json:"type" validate:"required,ruletype"`
	Active      *bool            `json:"active"`
	Parameters  rules.Parameters `json:"parameters"`
}

// SelectionToggleRequest toggles one item in the reviewer's selection.
type SelectionToggleRequest struct {
	ID string `json:"id" validate:"required,max=100"`
}
