// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package recommend

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/iarecomend/curator/internal/catalog"
)

// ErrMalformedInput indicates a ranking request with parameters outside
// the accepted range. Recoverable at the call site.
var ErrMalformedInput = fmt.Errorf("malformed ranking input")

// Ranker produces ranked, scored candidates from a customer profile and a
// catalog slice. It is stateless apart from its configuration and safe for
// concurrent use.
type Ranker struct {
	config *Config
	logger zerolog.Logger
}

// NewRanker creates a ranker with the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(cfg *Config, logger zerolog.Logger) (*Ranker, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranker config: %w", err)
	}
	return &Ranker{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Rank returns desiredCount scored candidates for the customer, or fewer
// only when the catalog has fewer eligible products (the sole degraded-input
// case, not an error). desiredCount outside [MinDesiredCount,
// MaxDesiredCount] fails with ErrMalformedInput.
//
// The result is deterministic for identical inputs and seed: same order,
// same ranks, same scores, same confidences.
func (r *Ranker) Rank(customer *catalog.CustomerProfile, products []catalog.Product, desiredCount int) ([]Candidate, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: nil customer", ErrMalformedInput)
	}
	if desiredCount < MinDesiredCount || desiredCount > MaxDesiredCount {
		return nil, fmt.Errorf("%w: desired count %d outside [%d, %d]",
			ErrMalformedInput, desiredCount, MinDesiredCount, MaxDesiredCount)
	}

	rng := rand.New(rand.NewSource(r.requestSeed(customer.ID))) //nolint:gosec // bounded ranking noise, not crypto

	selected := r.selectCandidates(customer, products, desiredCount, rng)

	candidates := make([]Candidate, len(selected))
	for i, p := range selected {
		noise := symmetric(rng, r.config.NoiseMagnitude)
		variance := symmetric(rng, r.config.ConfidenceVariance)

		candidates[i] = Candidate{
			Product:    p,
			Score:      r.config.BaseWeight - float64(i)*r.config.DecayStep + noise,
			Confidence: clamp(r.config.BaseConfidence+variance, MinConfidence, MaxConfidence),
			Rationale:  rationaleFor(customer, p),
		}
	}

	// Descending by score, ties broken by catalog id ascending so that
	// ranking stays reproducible even under degenerate noise settings.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Product.ID < candidates[j].Product.ID
	})

	for i := range candidates {
		candidates[i].Rank = i + 1
	}

	r.logger.Debug().
		Str("customer", customer.ID).
		Int("requested", desiredCount).
		Int("returned", len(candidates)).
		Msg("ranking complete")

	return candidates, nil
}

// selectCandidates orders the catalog affine-first with a stable per-request
// shuffle inside each group, then takes the first desiredCount products.
func (r *Ranker) selectCandidates(customer *catalog.CustomerProfile, products []catalog.Product, desiredCount int, rng *rand.Rand) []catalog.Product {
	var affine, rest []catalog.Product
	for _, p := range products {
		if customer.Prefers(p.Category) {
			affine = append(affine, p)
		} else {
			rest = append(rest, p)
		}
	}

	// Group contents shuffle independently; the affine-before-rest order
	// is the invariant.
	rng.Shuffle(len(affine), func(i, j int) { affine[i], affine[j] = affine[j], affine[i] })
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	ordered := append(affine, rest...)
	if len(ordered) > desiredCount {
		ordered = ordered[:desiredCount]
	}
	return ordered
}

// requestSeed folds the customer id into the configured base seed so that
// different customers draw from different noise streams while repeated
// requests for one customer stay identical.
func (r *Ranker) requestSeed(customerID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(customerID))
	return r.config.Seed ^ int64(h.Sum64()) //nolint:gosec // deliberate wraparound
}

// symmetric draws uniformly from [-magnitude, +magnitude].
func symmetric(rng *rand.Rand, magnitude float64) float64 {
	return (rng.Float64()*2 - 1) * magnitude
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
