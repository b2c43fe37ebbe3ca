// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package recommend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iarecomend/curator/internal/catalog"
)

func testRanker(t *testing.T, cfg *Config) *Ranker {
	t.Helper()
	r, err := NewRanker(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRanker: %v", err)
	}
	return r
}

// scenarioCatalog builds a 12-product catalog: 5 Notebooks, 4 Peripherals,
// 3 Monitors.
func scenarioCatalog() []catalog.Product {
	var products []catalog.Product
	add := func(cat catalog.Category, n int) {
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("%s-%02d", cat, i)
			products = append(products, catalog.Product{
				ID:         id,
				Name:       id,
				Category:   cat,
				BasePrice:  100,
				StockLevel: 10,
			})
		}
	}
	add(catalog.CategoryNotebooks, 5)
	add(catalog.CategoryPeripherals, 4)
	add(catalog.CategoryMonitors, 3)
	return products
}

func scenarioCustomer() *catalog.CustomerProfile {
	return &catalog.CustomerProfile{
		ID:                  "c-test",
		Name:                "Test Customer",
		PreferredCategories: []catalog.Category{catalog.CategoryNotebooks, catalog.CategoryPeripherals},
		LoyaltyTier:         catalog.TierGold,
	}
}

func TestRank_DeterministicUnderFixedSeed(t *testing.T) {
	r := testRanker(t, nil)
	customer := scenarioCustomer()
	products := scenarioCatalog()

	first, err := r.Rank(customer, products, 6)
	if err != nil {
		t.Fatalf("first Rank: %v", err)
	}
	second, err := r.Rank(customer, products, 6)
	if err != nil {
		t.Fatalf("second Rank: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Product.ID != second[i].Product.ID {
			t.Errorf("position %d: product %s vs %s", i, first[i].Product.ID, second[i].Product.ID)
		}
		if first[i].Rank != second[i].Rank {
			t.Errorf("position %d: rank %d vs %d", i, first[i].Rank, second[i].Rank)
		}
		if first[i].Score != second[i].Score {
			t.Errorf("position %d: score %f vs %f", i, first[i].Score, second[i].Score)
		}
		if first[i].Confidence != second[i].Confidence {
			t.Errorf("position %d: confidence %f vs %f", i, first[i].Confidence, second[i].Confidence)
		}
	}
}

func TestRank_DifferentSeedsDiffer(t *testing.T) {
	customer := scenarioCustomer()
	products := scenarioCatalog()

	cfgA := DefaultConfig()
	cfgA.Seed = 1
	cfgB := DefaultConfig()
	cfgB.Seed = 99999

	a, err := testRanker(t, cfgA).Rank(customer, products, 8)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	b, err := testRanker(t, cfgB).Rank(customer, products, 8)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	same := true
	for i := range a {
		if a[i].Product.ID != b[i].Product.ID || a[i].Score != b[i].Score {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical rankings; noise source may be ignored")
	}
}

func TestRank_ConfidenceBound(t *testing.T) {
	// 10000 candidates across varied customers and seeds; every confidence
	// must stay within the band.
	products := scenarioCatalog()
	count := 0

	for seed := int64(0); count < 10000; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		r := testRanker(t, cfg)

		customer := scenarioCustomer()
		customer.ID = fmt.Sprintf("c-%d", seed)

		candidates, err := r.Rank(customer, products, 8)
		if err != nil {
			t.Fatalf("Rank: %v", err)
		}
		for _, c := range candidates {
			if c.Confidence < MinConfidence || c.Confidence > MaxConfidence {
				t.Fatalf("confidence %f out of band [%.1f, %.1f]", c.Confidence, MinConfidence, MaxConfidence)
			}
			count++
		}
	}
}

func TestRank_RankContiguity(t *testing.T) {
	r := testRanker(t, nil)
	products := scenarioCatalog()

	for _, desired := range []int{6, 7, 8} {
		t.Run(fmt.Sprintf("desired=%d", desired), func(t *testing.T) {
			candidates, err := r.Rank(scenarioCustomer(), products, desired)
			if err != nil {
				t.Fatalf("Rank: %v", err)
			}
			if len(candidates) != desired {
				t.Fatalf("got %d candidates, want %d", len(candidates), desired)
			}

			seen := make(map[int]bool)
			for _, c := range candidates {
				if c.Rank < 1 || c.Rank > len(candidates) {
					t.Errorf("rank %d outside 1..%d", c.Rank, len(candidates))
				}
				if seen[c.Rank] {
					t.Errorf("duplicate rank %d", c.Rank)
				}
				seen[c.Rank] = true
			}
		})
	}
}

func TestRank_AffinityScenario(t *testing.T) {
	// 5 Notebooks + 4 Peripherals = 9 affine products, desiredCount = 6:
	// no Monitor may appear in the result.
	r := testRanker(t, nil)
	candidates, err := r.Rank(scenarioCustomer(), scenarioCatalog(), 6)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(candidates) != 6 {
		t.Fatalf("got %d candidates, want 6", len(candidates))
	}
	for _, c := range candidates {
		if c.Product.Category == catalog.CategoryMonitors {
			t.Errorf("non-affine Monitor %s surfaced despite 9 affine products", c.Product.ID)
		}
	}
}

func TestRank_DegradedCatalog(t *testing.T) {
	// Fewer eligible products than desiredCount is the sole degraded-input
	// case: shorter output, no error.
	r := testRanker(t, nil)
	products := scenarioCatalog()[:4]

	candidates, err := r.Rank(scenarioCustomer(), products, 6)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(candidates) != 4 {
		t.Errorf("got %d candidates, want 4", len(candidates))
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	r := testRanker(t, nil)
	candidates, err := r.Rank(scenarioCustomer(), nil, 6)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates from empty catalog, want 0", len(candidates))
	}
}

func TestRank_DesiredCountValidation(t *testing.T) {
	r := testRanker(t, nil)
	products := scenarioCatalog()

	for _, desired := range []int{0, 5, 9, -1, 100} {
		t.Run(fmt.Sprintf("desired=%d", desired), func(t *testing.T) {
			_, err := r.Rank(scenarioCustomer(), products, desired)
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("got err %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestRank_NilCustomer(t *testing.T) {
	r := testRanker(t, nil)
	_, err := r.Rank(nil, scenarioCatalog(), 6)
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got err %v, want ErrMalformedInput", err)
	}
}

func TestRank_TieBreakByCatalogID(t *testing.T) {
	// With zero noise and zero decay all scores tie; order must then be
	// catalog id ascending.
	cfg := DefaultConfig()
	cfg.NoiseMagnitude = 0
	cfg.DecayStep = 0
	r := testRanker(t, cfg)

	candidates, err := r.Rank(scenarioCustomer(), scenarioCatalog(), 6)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].Product.ID >= candidates[i].Product.ID {
			t.Errorf("tie-break violated: %s before %s",
				candidates[i-1].Product.ID, candidates[i].Product.ID)
		}
	}
}

func TestNewRanker_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseWeight = -1
	if _, err := NewRanker(cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
}
