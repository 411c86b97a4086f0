package errors

import (
	"math"
	"regexp"
	"unicode"
)

// Limits accepted from users. They keep a single request from asking for
// hours of CPU time.
const (
	MaxSamples = 100_000
	MaxSteps   = 1_000
	MaxUnitLen = 16
)

// unitRegex matches length unit labels such as "px", "mm" or "µm".
var unitRegex = regexp.MustCompile(`^\p{L}+$`)

// ValidateUnit validates a length unit label. Units end up in CSV headers,
// so they must be short letter-only strings.
func ValidateUnit(unit string) error {
	if unit == "" {
		return New(ErrCodeInvalidInput, "unit cannot be empty")
	}
	if len([]rune(unit)) > MaxUnitLen {
		return New(ErrCodeInvalidInput, "unit too long (max %d characters)", MaxUnitLen)
	}
	for _, r := range unit {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "unit contains invalid control characters")
		}
	}
	if !unitRegex.MatchString(unit) {
		return New(ErrCodeInvalidInput, "invalid unit: %q", unit)
	}
	return nil
}

// ValidateScaleFactor checks that a length scale factor is a positive finite number.
func ValidateScaleFactor(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return New(ErrCodeInvalidInput, "scale factor must be a positive number, got %v", f)
	}
	return nil
}

// ValidateSamples checks a random baseline size.
func ValidateSamples(n int) error {
	if n < 1 || n > MaxSamples {
		return New(ErrCodeInvalidInput, "samples must be between 1 and %d, got %d", MaxSamples, n)
	}
	return nil
}

// ValidateSteps checks a weight grid resolution.
func ValidateSteps(n int) error {
	if n < 1 || n > MaxSteps {
		return New(ErrCodeInvalidInput, "steps must be between 1 and %d, got %d", MaxSteps, n)
	}
	return nil
}

// ValidateAlpha checks a two-objective trade-off weight.
func ValidateAlpha(alpha float64) error {
	if !(alpha >= 0 && alpha <= 1) {
		return New(ErrCodeInvalidWeights, "alpha must be in [0, 1], got %v", alpha)
	}
	return nil
}

// ValidateWeights checks a three-objective weight pair: both in [0, 1] and
// summing to at most 1.
func ValidateWeights(alpha, beta float64) error {
	if err := ValidateAlpha(alpha); err != nil {
		return err
	}
	if !(beta >= 0 && beta <= 1) {
		return New(ErrCodeInvalidWeights, "beta must be in [0, 1], got %v", beta)
	}
	if alpha+beta > 1+1e-9 {
		return New(ErrCodeInvalidWeights, "alpha + beta must not exceed 1, got %v", alpha+beta)
	}
	return nil
}
