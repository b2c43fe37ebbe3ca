// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("seed is set for determinism", func(t *testing.T) {
		if cfg.Seed == 0 {
			t.Error("Seed = 0, want non-zero for determinism")
		}
	})

	t.Run("base confidence is in band", func(t *testing.T) {
		if cfg.BaseConfidence < MinConfidence || cfg.BaseConfidence > MaxConfidence {
			t.Errorf("BaseConfidence = %f, want within [%.1f, %.1f]",
				cfg.BaseConfidence, MinConfidence, MaxConfidence)
		}
	})

	t.Run("validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"zero base weight", func(c *Config) { c.BaseWeight = 0 }, true},
		{"negative decay", func(c *Config) { c.DecayStep = -1 }, true},
		{"negative noise magnitude", func(c *Config) { c.NoiseMagnitude = -0.5 }, true},
		{"base confidence below band", func(c *Config) { c.BaseConfidence = 50 }, true},
		{"base confidence above band", func(c *Config) { c.BaseConfidence = 96 }, true},
		{"negative variance", func(c *Config) { c.ConfidenceVariance = -1 }, true},
		{"zero noise is valid", func(c *Config) { c.NoiseMagnitude = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
