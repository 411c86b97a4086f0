package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"pixels", "px", false},
		{"millimetres", "mm", false},
		{"micrometres", "µm", false},

		{"empty", "", true},
		{"too long", strings.Repeat("m", 20), true},
		{"digits", "mm2", true},
		{"spaces", "m m", true},
		{"comma", "m,", true},
		{"newline", "mm\n", true},
		{"control char", "m\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUnit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScaleFactor(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{1, false},
		{0.0254, false},
		{0, true},
		{-2, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidateScaleFactor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateScaleFactor(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateCounts(t *testing.T) {
	if err := ValidateSamples(1000); err != nil {
		t.Errorf("ValidateSamples(1000) = %v", err)
	}
	if err := ValidateSamples(0); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateSamples(0) code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
	if err := ValidateSamples(MaxSamples + 1); err == nil {
		t.Error("ValidateSamples above max should fail")
	}

	if err := ValidateSteps(100); err != nil {
		t.Errorf("ValidateSteps(100) = %v", err)
	}
	if err := ValidateSteps(-1); err == nil {
		t.Error("ValidateSteps(-1) should fail")
	}
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		alpha, beta float64
		wantErr     bool
	}{
		{0, 0, false},
		{1, 0, false},
		{0, 1, false},
		{0.3, 0.7, false},
		{0.07, 0.93, false},
		{0.6, 0.6, true},
		{-0.1, 0, true},
		{0, 1.1, true},
		{math.NaN(), 0, true},
	}

	for _, tt := range tests {
		err := ValidateWeights(tt.alpha, tt.beta)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWeights(%v, %v) error = %v, wantErr %v", tt.alpha, tt.beta, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidWeights) {
			t.Errorf("ValidateWeights(%v, %v) code = %v, want %v", tt.alpha, tt.beta, GetCode(err), ErrCodeInvalidWeights)
		}
	}

	if err := ValidateAlpha(0.5); err != nil {
		t.Errorf("ValidateAlpha(0.5) = %v", err)
	}
}
