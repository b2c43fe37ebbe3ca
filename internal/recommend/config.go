// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package recommend

import "fmt"

// Candidate count bounds accepted by Rank. The upstream model is tuned to
// surface between six and eight candidates per consultation.
const (
	MinDesiredCount = 6
	MaxDesiredCount = 8
)

// Confidence band. Values outside this band are a defect, not a valid state.
const (
	MinConfidence = 70.0
	MaxConfidence = 95.0
)

// Config holds ranker tuning parameters.
type Config struct {
	// Seed is the base seed for the per-request noise source.
	// The effective per-request seed also folds in the customer id.
	Seed int64 `koanf:"seed"`

	// BaseWeight is the score assigned to the first selected position
	// before noise.
	BaseWeight float64 `koanf:"base_weight"`

	// DecayStep is the per-position score decay.
	DecayStep float64 `koanf:"decay_step"`

	// NoiseMagnitude bounds the symmetric score noise: noise is drawn
	// uniformly from [-NoiseMagnitude, +NoiseMagnitude].
	NoiseMagnitude float64 `koanf:"noise_magnitude"`

	// BaseConfidence is the model's published precision.
	BaseConfidence float64 `koanf:"base_confidence"`

	// ConfidenceVariance bounds the symmetric confidence variance.
	ConfidenceVariance float64 `koanf:"confidence_variance"`
}

// DefaultConfig returns the ranker defaults. BaseConfidence matches the
// 82% precision the upstream collaborative-filtering model reports.
func DefaultConfig() *Config {
	return &Config{
		Seed:               42,
		BaseWeight:         100,
		DecayStep:          5,
		NoiseMagnitude:     10,
		BaseConfidence:     82.0,
		ConfidenceVariance: 7.5,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.BaseWeight <= 0 {
		return fmt.Errorf("base_weight = %f, must be > 0", c.BaseWeight)
	}
	if c.DecayStep < 0 {
		return fmt.Errorf("decay_step = %f, must be >= 0", c.DecayStep)
	}
	if c.NoiseMagnitude < 0 {
		return fmt.Errorf("noise_magnitude = %f, must be >= 0", c.NoiseMagnitude)
	}
	if c.BaseConfidence < MinConfidence || c.BaseConfidence > MaxConfidence {
		return fmt.Errorf("base_confidence = %f, must be within [%.1f, %.1f]",
			c.BaseConfidence, MinConfidence, MaxConfidence)
	}
	if c.ConfidenceVariance < 0 {
		return fmt.Errorf("confidence_variance = %f, must be >= 0", c.ConfidenceVariance)
	}
	return nil
}
