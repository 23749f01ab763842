package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 5.5, "$5.50"},
		{"Thousands", 2661.2055, "$2,661.21"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.5, "-$1,234.50"},
		{"Negative rounds to zero", -0.001, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %s, expected %s", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestCurrencyWhole(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{400000, "$400,000"},
		{999.5, "$1,000"},
		{-2500.4, "-$2,500"},
	}

	for _, tt := range tests {
		if got := CurrencyWhole(tt.amount); got != tt.expected {
			t.Errorf("CurrencyWhole(%v) = %s, expected %s", tt.amount, got, tt.expected)
		}
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-1234.567); got != "-1,234.57" {
		t.Errorf("NumericCurrency() = %s, expected -1,234.57", got)
	}
	if got := NumericCurrency(12); got != "12.00" {
		t.Errorf("NumericCurrency() = %s, expected 12.00", got)
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{2333.333333, "2333.33"},
		{1000, "1000.00"},
		{0, "0.00"},
		{1.005, "1.01"},
	}

	for _, tt := range tests {
		if got := Fixed(tt.amount); got != tt.expected {
			t.Errorf("Fixed(%v) = %s, expected %s", tt.amount, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(7, 2); got != "7.00%" {
		t.Errorf("Percent() = %s, expected 7.00%%", got)
	}
	if got := Percent(6.125, 1); got != "6.1%" {
		t.Errorf("Percent() = %s, expected 6.1%%", got)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(0.78); got != "78.00%" {
		t.Errorf("Ratio() = %s, expected 78.00%%", got)
	}
}
