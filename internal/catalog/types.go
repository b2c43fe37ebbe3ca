// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package catalog defines the reference data consumed by the curation engine:
// products, customer profiles, and the provider interfaces that supply them.
//
// The engine treats provider output as authoritative and does not cache it.
// Both types are immutable during a curation session; mutable copies live on
// curation items, never here.
package catalog

import "fmt"

// Category is an enum-like product category label.
type Category string

// Known product categories. Providers may supply additional categories;
// the engine treats unknown categories as valid but uses generic
// rationale templates for them.
const (
	CategoryNotebooks   Category = "Notebooks"
	CategoryMonitors    Category = "Monitors"
	CategoryPeripherals Category = "Peripherals"
	CategoryAudio       Category = "Audio"
	CategoryStorage     Category = "Storage"
	CategoryAccessories Category = "Accessories"
	CategoryErgonomics  Category = "Ergonomics"
)

// LoyaltyTier classifies customers by loyalty program level.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "Bronze"
	TierSilver   LoyaltyTier = "Silver"
	TierGold     LoyaltyTier = "Gold"
	TierPlatinum LoyaltyTier = "Platinum"
)

// Valid reports whether the tier is one of the four known levels.
func (t LoyaltyTier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// Product is immutable reference data owned by the catalog provider.
type Product struct {
	// ID uniquely identifies the product in the catalog.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category is the product category label.
	Category Category `json:"category"`

	// BasePrice is the undiscounted list price. Always >= 0.
	BasePrice float64 `json:"base_price"`

	// StockLevel is the current stock count. Always >= 0.
	StockLevel int `json:"stock_level"`

	// DiscountPercent is the current promotional discount (0-100).
	DiscountPercent float64 `json:"discount_percent"`
}

// Validate checks the invariants the engine relies on.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product: empty id")
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("product %s: negative base price %.2f", p.ID, p.BasePrice)
	}
	if p.StockLevel < 0 {
		return fmt.Errorf("product %s: negative stock level %d", p.ID, p.StockLevel)
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return fmt.Errorf("product %s: discount %.1f out of range [0,100]", p.ID, p.DiscountPercent)
	}
	return nil
}

// CustomerProfile is immutable customer reference data for one curation session.
type CustomerProfile struct {
	// ID uniquely identifies the customer.
	ID string `json:"id"`

	// Name is the customer's display name.
	Name string `json:"name"`

	// PreferredCategories is ordered most-preferred first.
	PreferredCategories []Category `json:"preferred_categories"`

	// PurchaseCount is the number of past purchases.
	PurchaseCount int `json:"purchase_count"`

	// AverageOrderValue is the customer's mean order value.
	AverageOrderValue float64 `json:"average_order_value"`

	// LoyaltyTier is the loyalty program level.
	LoyaltyTier LoyaltyTier `json:"loyalty_tier"`
}

// Prefers reports whether the given category appears in the customer's
// preferred categories.
func (c *CustomerProfile) Prefers(cat Category) bool {
	for _, p := range c.PreferredCategories {
		if p == cat {
			return true
		}
	}
	return false
}
