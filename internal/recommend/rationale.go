// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package recommend

import (
	"hash/fnv"
	"strings"

	"github.com/iarecomend/curator/internal/catalog"
)

// rationaleKey addresses the template table: selection is keyed by
// (category, loyalty tier), with category-wide and generic fallbacks.
type rationaleKey struct {
	category catalog.Category
	tier     catalog.LoyaltyTier
}

// tierRationales override the category tables for segments whose pitch
// depends on the loyalty tier. "{tier}" interpolates the customer's tier.
var tierRationales = map[rationaleKey][]string{
	{catalog.CategoryNotebooks, catalog.TierGold}: {
		"{tier} customer with notebook purchase history - strong upgrade likelihood",
		"Loyal customer profile matches the typical two-year renewal window",
		"High purchase frequency suggests readiness for a performance upgrade",
	},
	{catalog.CategoryNotebooks, catalog.TierPlatinum}: {
		"{tier} customer - premium configuration fits the purchase history",
		"Top-tier profile with consistent investment in work equipment",
		"Highest-value segment, strong fit for flagship models",
	},
	{catalog.CategoryMonitors, catalog.TierPlatinum}: {
		"{tier} customer already invested in a multi-screen workspace",
		"Premium segment values color accuracy and screen real estate",
	},
	{catalog.CategoryPeripherals, catalog.TierBronze}: {
		"Accessible entry point for a first setup upgrade",
		"High-value accessory at a {tier}-friendly price point",
	},
}

// rationaleTemplates by category, used when no tier override applies.
var rationaleTemplates = map[catalog.Category][]string{
	catalog.CategoryNotebooks: {
		"{tier} customer with notebook purchase history - strong upgrade likelihood",
		"Based on the customer's last three technology purchases",
		"Equipment renewal trend of roughly every two years",
		"Intensive professional usage profile identified",
	},
	catalog.CategoryMonitors: {
		"Multi-monitor setups raise productivity significantly",
		"Customers with notebooks frequently add an external monitor",
		"Growing hybrid-work trend in this customer segment",
		"Compatible with equipment already purchased",
	},
	catalog.CategoryPeripherals: {
		"Natural complement to a work or gaming setup",
		"High satisfaction index in this category",
		"Essential accessory for productivity",
		"Frequently purchased together with computers",
	},
	catalog.CategoryAudio: {
		"Essential for online meetings and entertainment",
		"Audio quality valued by this customer profile",
		"Popular bundle with computer purchases",
		"Investment in listening comfort",
	},
	catalog.CategoryStorage: {
		"Proven performance upgrade",
		"Need identified in the customer's usage profile",
		"Solution for storage pressure",
		"Immediate return in speed",
	},
	catalog.CategoryErgonomics: {
		"Health and comfort rank high for this profile",
		"Investment in workplace well-being",
		"Reduces fatigue over long sessions",
		"Recommended by workplace specialists",
	},
}

// genericRationales cover categories without a dedicated template table.
var genericRationales = []string{
	"High added-value complement",
	"Improves organization and productivity",
	"Accessible price with high utility",
	"Simplifies connecting multiple devices",
}

// templatesFor resolves the template list for a (category, tier) key:
// tier override, then category table, then generic.
func templatesFor(category catalog.Category, tier catalog.LoyaltyTier) []string {
	if templates, ok := tierRationales[rationaleKey{category, tier}]; ok {
		return templates
	}
	if templates, ok := rationaleTemplates[category]; ok {
		return templates
	}
	return genericRationales
}

// rationaleFor picks a template deterministically from the table keyed by
// (category, loyalty tier). The index is a pure hash of (customer id,
// product id, tier), independent of the noise source, so noise tuning
// never changes rationale selection.
func rationaleFor(customer *catalog.CustomerProfile, p catalog.Product) string {
	templates := templatesFor(p.Category, customer.LoyaltyTier)

	h := fnv.New32a()
	h.Write([]byte(customer.ID))
	h.Write([]byte{'|'})
	h.Write([]byte(p.ID))
	h.Write([]byte{'|'})
	h.Write([]byte(customer.LoyaltyTier))
	tpl := templates[h.Sum32()%uint32(len(templates))]

	return strings.ReplaceAll(tpl, "{tier}", string(customer.LoyaltyTier))
}
