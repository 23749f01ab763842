package mortgage

import (
	"math"
	"testing"
)

func TestEffectiveHomeValue(t *testing.T) {
	if got := EffectiveHomeValue(650000, 400000); got != 650000 {
		t.Errorf("EffectiveHomeValue() = %v, expected provided home value", got)
	}
	if got := EffectiveHomeValue(0, 400000); math.Abs(got-500000) > 1e-6 {
		t.Errorf("EffectiveHomeValue() = %v, expected 500000 from 80%% LTV", got)
	}
}

func TestCalculateLTV(t *testing.T) {
	tests := []struct {
		name      string
		balance   float64
		homeValue float64
		expected  float64
	}{
		{"At origination", 400000, 500000, 0.8},
		{"Paid off", 0, 500000, 0},
		{"Zero home value", 400000, 0, 0},
		{"Zero everything", 0, 0, 0},
		{"Negative home value", 100, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateLTV(tt.balance, tt.homeValue)
			if math.IsNaN(result) || math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("CalculateLTV() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestShouldPMIBeActive(t *testing.T) {
	tests := []struct {
		ltv      float64
		expected bool
	}{
		{0.95, true},
		{0.7801, true},
		{0.78, false},
		{0.5, false},
		{0, false},
	}

	for _, tt := range tests {
		if got := ShouldPMIBeActive(tt.ltv); got != tt.expected {
			t.Errorf("ShouldPMIBeActive(%v) = %v, expected %v", tt.ltv, got, tt.expected)
		}
	}
}
