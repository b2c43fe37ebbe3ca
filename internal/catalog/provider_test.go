// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryProvider_FetchProducts(t *testing.T) {
	p := NewMemoryProvider(SeedProducts(), SeedCustomers())
	ctx := context.Background()

	t.Run("empty filter returns full catalog", func(t *testing.T) {
		products, err := p.FetchProducts(ctx, ProductFilter{})
		if err != nil {
			t.Fatalf("FetchProducts: %v", err)
		}
		if len(products) != 12 {
			t.Errorf("got %d products, want 12", len(products))
		}
	})

	t.Run("category filter", func(t *testing.T) {
		products, err := p.FetchProducts(ctx, ProductFilter{
			Categories: []Category{CategoryNotebooks},
		})
		if err != nil {
			t.Fatalf("FetchProducts: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("got %d notebooks, want 2", len(products))
		}
		for _, prod := range products {
			if prod.Category != CategoryNotebooks {
				t.Errorf("product %s has category %s, want %s", prod.ID, prod.Category, CategoryNotebooks)
			}
		}
	})

	t.Run("in-stock filter", func(t *testing.T) {
		products := append(SeedProducts(), Product{
			ID: "p99", Name: "Out of stock", Category: CategoryAccessories, BasePrice: 10,
		})
		prov := NewMemoryProvider(products, nil)

		got, err := prov.FetchProducts(ctx, ProductFilter{InStockOnly: true})
		if err != nil {
			t.Fatalf("FetchProducts: %v", err)
		}
		for _, prod := range got {
			if prod.StockLevel == 0 {
				t.Errorf("in-stock filter returned zero-stock product %s", prod.ID)
			}
		}
		if len(got) != 12 {
			t.Errorf("got %d products, want 12", len(got))
		}
	})
}

func TestMemoryProvider_FetchCustomer(t *testing.T) {
	p := NewMemoryProvider(nil, SeedCustomers())
	ctx := context.Background()

	t.Run("known customer", func(t *testing.T) {
		c, err := p.FetchCustomer(ctx, "c01")
		if err != nil {
			t.Fatalf("FetchCustomer: %v", err)
		}
		if c.Name != "Joao Silva Santos" {
			t.Errorf("got name %q", c.Name)
		}
		if c.LoyaltyTier != TierGold {
			t.Errorf("got tier %s, want %s", c.LoyaltyTier, TierGold)
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := p.FetchCustomer(ctx, "nope")
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Errorf("got err %v, want ErrCustomerNotFound", err)
		}
	})
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{ID: "p01", Name: "x", Category: CategoryAudio, BasePrice: 10, StockLevel: 1}

	tests := []struct {
		name    string
		modify  func(*Product)
		wantErr bool
	}{
		{"valid", func(p *Product) {}, false},
		{"empty id", func(p *Product) { p.ID = "" }, true},
		{"negative price", func(p *Product) { p.BasePrice = -1 }, true},
		{"negative stock", func(p *Product) { p.StockLevel = -1 }, true},
		{"discount above 100", func(p *Product) { p.DiscountPercent = 101 }, true},
		{"discount below 0", func(p *Product) { p.DiscountPercent = -0.1 }, true},
		{"zero price is valid", func(p *Product) { p.BasePrice = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCustomerProfile_Prefers(t *testing.T) {
	c := CustomerProfile{PreferredCategories: []Category{CategoryNotebooks, CategoryPeripherals}}

	if !c.Prefers(CategoryNotebooks) {
		t.Error("expected Notebooks to be preferred")
	}
	if c.Prefers(CategoryMonitors) {
		t.Error("expected Monitors to not be preferred")
	}
}

func TestLoyaltyTier_Valid(t *testing.T) {
	for _, tier := range []LoyaltyTier{TierBronze, TierSilver, TierGold, TierPlatinum} {
		if !tier.Valid() {
			t.Errorf("tier %s should be valid", tier)
		}
	}
	if LoyaltyTier("Diamond").Valid() {
		t.Error("unknown tier should be invalid")
	}
}

func TestSeedData_Invariants(t *testing.T) {
	for _, p := range SeedProducts() {
		if err := p.Validate(); err != nil {
			t.Errorf("seed product invalid: %v", err)
		}
	}
	for _, c := range SeedCustomers() {
		if !c.LoyaltyTier.Valid() {
			t.Errorf("seed customer %s has invalid tier %s", c.ID, c.LoyaltyTier)
		}
	}
}
