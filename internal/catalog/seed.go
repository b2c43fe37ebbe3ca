// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package catalog

// SeedProducts returns the demo catalog used by the standalone server and
// tests. Prices are list prices in BRL.
func SeedProducts() []Product {
	return []Product{
		{ID: "p01", Name: "Dell Inspiron 15 Notebook i5 11th Gen 8GB 256GB SSD", Category: CategoryNotebooks, BasePrice: 3299.99, StockLevel: 12, DiscountPercent: 0},
		{ID: "p02", Name: "LG 27\" UltraWide Full HD IPS 75Hz Monitor", Category: CategoryMonitors, BasePrice: 1799.99, StockLevel: 8, DiscountPercent: 10},
		{ID: "p03", Name: "Logitech MX Master 3 Wireless Mouse", Category: CategoryPeripherals, BasePrice: 449.99, StockLevel: 25, DiscountPercent: 0},
		{ID: "p04", Name: "Redragon K552 RGB Mechanical Keyboard", Category: CategoryPeripherals, BasePrice: 279.99, StockLevel: 18, DiscountPercent: 15},
		{ID: "p05", Name: "Logitech C920 Full HD 1080p Webcam", Category: CategoryAudio, BasePrice: 419.99, StockLevel: 15, DiscountPercent: 0},
		{ID: "p06", Name: "Kingston NV2 500GB M.2 NVMe SSD", Category: CategoryStorage, BasePrice: 289.99, StockLevel: 30, DiscountPercent: 0},
		{ID: "p07", Name: "HyperX Cloud II 7.1 Gaming Headset", Category: CategoryAudio, BasePrice: 549.99, StockLevel: 10, DiscountPercent: 20},
		{ID: "p08", Name: "7-in-1 USB-C Hub with HDMI and Ethernet", Category: CategoryAccessories, BasePrice: 159.99, StockLevel: 22, DiscountPercent: 0},
		{ID: "p09", Name: "Articulated Ergonomic Monitor Stand", Category: CategoryErgonomics, BasePrice: 189.99, StockLevel: 14, DiscountPercent: 0},
		{ID: "p10", Name: "Large Gaming Mousepad 90x40cm", Category: CategoryAccessories, BasePrice: 79.99, StockLevel: 35, DiscountPercent: 0},
		{ID: "p11", Name: "Lenovo IdeaPad 3 Notebook i7 16GB 512GB", Category: CategoryNotebooks, BasePrice: 4199.99, StockLevel: 6, DiscountPercent: 0},
		{ID: "p12", Name: "Samsung 24\" Curved Full HD 75Hz Monitor", Category: CategoryMonitors, BasePrice: 899.99, StockLevel: 11, DiscountPercent: 0},
	}
}

// SeedCustomers returns the demo customer profiles matching SeedProducts.
func SeedCustomers() []CustomerProfile {
	return []CustomerProfile{
		{
			ID:                  "c01",
			Name:                "Joao Silva Santos",
			PreferredCategories: []Category{CategoryNotebooks, CategoryPeripherals},
			PurchaseCount:       15,
			AverageOrderValue:   487.50,
			LoyaltyTier:         TierGold,
		},
		{
			ID:                  "c02",
			Name:                "Maria Oliveira Costa",
			PreferredCategories: []Category{CategoryMonitors, CategoryAudio},
			PurchaseCount:       28,
			AverageOrderValue:   625.80,
			LoyaltyTier:         TierPlatinum,
		},
		{
			ID:                  "c03",
			Name:                "Carlos Eduardo Mendes",
			PreferredCategories: []Category{CategoryAccessories, CategoryStorage},
			PurchaseCount:       8,
			AverageOrderValue:   312.40,
			LoyaltyTier:         TierSilver,
		},
	}
}
