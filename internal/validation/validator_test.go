// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type surfaceRequest struct {
	CustomerID   string `validate:"required"`
	AgentRef     string `validate:"required,max=100"`
	DesiredCount int    `validate:"min=6,max=8"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input surfaceRequest
	}{
		{
			name:  "lower bound",
			input: surfaceRequest{CustomerID: "c01", AgentRef: "Maria Santos", DesiredCount: 6},
		},
		{
			name:  "upper bound",
			input: surfaceRequest{CustomerID: "c02", AgentRef: "Carlos Lima", DesiredCount: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("Expected valid struct, got: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     surfaceRequest
		wantField string
	}{
		{
			name:      "missing customer",
			input:     surfaceRequest{AgentRef: "Maria Santos", DesiredCount: 6},
			wantField: "CustomerID",
		},
		{
			name:      "count below range",
			input:     surfaceRequest{CustomerID: "c01", AgentRef: "Maria Santos", DesiredCount: 5},
			wantField: "DesiredCount",
		},
		{
			name:      "count above range",
			input:     surfaceRequest{CustomerID: "c01", AgentRef: "Maria Santos", DesiredCount: 9},
			wantField: "DesiredCount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on field %s, got: %v", tt.wantField, err)
			}
		})
	}
}

type ruleRequest struct {
	Type string `validate:"required,ruletype"`
}

func TestValidateStruct_RuleType(t *testing.T) {
	for _, valid := range []string{"price_deviation", "min_confidence", "category_match", "stock_threshold", "custom"} {
		if err := ValidateStruct(&ruleRequest{Type: valid}); err != nil {
			t.Errorf("Type %q should be valid, got: %v", valid, err)
		}
	}
	for _, invalid := range []string{"PriceDeviation", "unknown", "price-deviation"} {
		if err := ValidateStruct(&ruleRequest{Type: invalid}); err == nil {
			t.Errorf("Type %q should fail validation", invalid)
		}
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&surfaceRequest{})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("Expected a message")
	}
	// Multiple failures list every field.
	if !strings.Contains(apiErr.Message, "CustomerID") || !strings.Contains(apiErr.Message, "DesiredCount") {
		t.Errorf("Expected both fields in message, got %q", apiErr.Message)
	}
	if apiErr.Details == nil {
		t.Error("Expected details for multi-field failure")
	}
}

func TestErrorMessages(t *testing.T) {
	type bounded struct {
		Price float64 `validate:"gte=0"`
	}
	err := ValidateStruct(&bounded{Price: -5})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "greater than or equal to 0") {
		t.Errorf("Expected translated gte message, got %q", msg)
	}
}
