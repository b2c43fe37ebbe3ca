// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package recommend

import "github.com/iarecomend/curator/internal/catalog"

// Candidate is a scored, ranked product suggestion before human review.
// Candidates are never mutated after creation; reviewer edits happen on
// the curation item derived from a candidate.
type Candidate struct {
	// Product is the recommended product.
	Product catalog.Product `json:"product"`

	// Rank is the 1-based position after sorting. Rank values within one
	// ranking result are a contiguous 1..N sequence with no ties.
	Rank int `json:"rank"`

	// Confidence is the model confidence, always within
	// [MinConfidence, MaxConfidence].
	Confidence float64 `json:"confidence"`

	// Score is the internal sort key. Not exposed to reviewers.
	Score float64 `json:"-"`

	// Rationale is the human-readable justification.
	Rationale string `json:"rationale"`
}
