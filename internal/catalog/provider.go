// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package catalog

import (
	"context"
	"fmt"
	"sync"
)

// ErrCustomerNotFound is returned when a profile lookup references an
// unknown customer id.
var ErrCustomerNotFound = fmt.Errorf("customer not found")

// ProductFilter narrows a catalog fetch. The zero value matches everything.
type ProductFilter struct {
	// Categories restricts results to the given categories when non-empty.
	Categories []Category

	// InStockOnly excludes products with zero stock.
	InStockOnly bool
}

// CatalogProvider supplies product reference data.
// Implementations must be side-effect-free and safe for concurrent use.
type CatalogProvider interface {
	// FetchProducts returns the catalog slice matching the filter.
	FetchProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
}

// ProfileProvider supplies customer profiles.
// Implementations must be side-effect-free and safe for concurrent use.
type ProfileProvider interface {
	// FetchCustomer returns the profile for the given customer id.
	// Returns ErrCustomerNotFound for unknown ids.
	FetchCustomer(ctx context.Context, id string) (*CustomerProfile, error)
}

// MemoryProvider implements CatalogProvider and ProfileProvider over
// in-memory slices. It backs the standalone server and tests; a deployment
// integrating a real catalog service supplies its own implementations.
type MemoryProvider struct {
	mu        sync.RWMutex
	products  []Product
	customers map[string]CustomerProfile
}

// NewMemoryProvider creates a provider over the given data.
func NewMemoryProvider(products []Product, customers []CustomerProfile) *MemoryProvider {
	byID := make(map[string]CustomerProfile, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	return &MemoryProvider{
		products:  products,
		customers: byID,
	}
}

// FetchProducts returns the catalog slice matching the filter.
func (p *MemoryProvider) FetchProducts(_ context.Context, filter ProductFilter) ([]Product, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	results := make([]Product, 0, len(p.products))
	for _, prod := range p.products {
		if filter.InStockOnly && prod.StockLevel == 0 {
			continue
		}
		if len(filter.Categories) > 0 && !containsCategory(filter.Categories, prod.Category) {
			continue
		}
		results = append(results, prod)
	}
	return results, nil
}

// FetchCustomer returns the profile for the given customer id.
func (p *MemoryProvider) FetchCustomer(_ context.Context, id string) (*CustomerProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return &c, nil
}

func containsCategory(cats []Category, c Category) bool {
	for _, cat := range cats {
		if cat == c {
			return true
		}
	}
	return false
}
