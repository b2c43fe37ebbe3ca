// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package recommend implements the candidate ranker: the deterministic
// post-processing applied to the upstream recommendation model's output.
//
// # Algorithm
//
// Given a customer profile and a catalog slice, the ranker:
//
//  1. Partitions the catalog into category-affine and non-affine products.
//     Affine products always sort ahead of non-affine ones; within each
//     group order is a stable pseudo-random shuffle seeded per request.
//  2. Selects the first desiredCount products.
//  3. Scores each selection with a position-decayed base weight plus
//     bounded symmetric noise, then sorts descending by score with ties
//     broken by catalog id ascending.
//  4. Assigns contiguous 1-based ranks and an in-band confidence derived
//     from the model's published precision plus bounded variance.
//  5. Attaches a rationale chosen deterministically from per-category
//     template tables keyed by loyalty tier.
//
// # Determinism
//
// The ranker is a pure function of its inputs and the configured seed.
// The per-request noise source is derived from the base seed and the
// customer id, so repeated calls with identical inputs produce identical
// ranked lists. This replaces the upstream model's unseeded randomness
// and is what makes ranking testable.
package recommend
