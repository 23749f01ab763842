package mortgage

import (
	"math"
	"testing"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRatePct float64
		termYears     int
		expected      float64
		tolerance     float64
	}{
		{
			name:          "Standard 30-year mortgage",
			principal:     400000,
			annualRatePct: 7,
			termYears:     30,
			expected:      2661.21,
			tolerance:     0.5,
		},
		{
			name:          "15-year mortgage",
			principal:     300000,
			annualRatePct: 6,
			termYears:     15,
			expected:      2531.57,
			tolerance:     0.5,
		},
		{
			name:          "Zero interest loan",
			principal:     120000,
			annualRatePct: 0,
			termYears:     10,
			expected:      1000,
			tolerance:     0,
		},
		{
			name:          "High interest loan",
			principal:     100000,
			annualRatePct: 15,
			termYears:     30,
			expected:      1264.44,
			tolerance:     0.5,
		},
		{
			name:          "Zero principal",
			principal:     0,
			annualRatePct: 5,
			termYears:     30,
			expected:      0,
			tolerance:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyPayment(tt.principal, tt.annualRatePct, tt.termYears)

			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("MonthlyPayment() = %.4f, expected %.2f (±%.2f)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestMonthlyPaymentSmallPrincipal(t *testing.T) {
	payment := MonthlyPayment(1000, 5, 5)
	if payment <= 0 || payment >= 100 {
		t.Errorf("MonthlyPayment() = %.2f, expected between 0 and 100", payment)
	}
}

func TestMonthlyPaymentNonNegativeAndFinite(t *testing.T) {
	for _, principal := range []float64{0, 1, 50000, 2000000} {
		for _, rate := range []float64{0, 0.01, 3.5, 7, 15} {
			for _, term := range []int{1, 10, 15, 30} {
				result := MonthlyPayment(principal, rate, term)
				if result < 0 || math.IsNaN(result) || math.IsInf(result, 0) {
					t.Errorf("MonthlyPayment(%v, %v, %d) = %v, expected non-negative finite value",
						principal, rate, term, result)
				}
			}
		}
	}
}

func TestMonthlyPaymentZeroRateIsExact(t *testing.T) {
	for _, tc := range []struct {
		principal float64
		term      int
	}{{120000, 10}, {333333, 30}, {1, 1}} {
		want := tc.principal / float64(tc.term*12)
		if got := MonthlyPayment(tc.principal, 0, tc.term); got != want {
			t.Errorf("MonthlyPayment(%v, 0, %d) = %v, expected exactly %v", tc.principal, tc.term, got, want)
		}
	}
}

func TestBiWeeklyPayment(t *testing.T) {
	for _, rate := range []float64{0, 4.25, 7} {
		monthly := MonthlyPayment(400000, rate, 30)
		biWeekly := BiWeeklyPayment(400000, rate, 30)
		if biWeekly != monthly/2 {
			t.Errorf("BiWeeklyPayment() = %v, expected half of %v", biWeekly, monthly)
		}
	}
}

func TestAnnuityPaymentMatchesMonthlyPayment(t *testing.T) {
	tests := []struct {
		principal float64
		rate      float64
		term      int
	}{
		{400000, 7, 30},
		{250000, 3.125, 15},
		{100000, 0, 20},
	}

	for _, tt := range tests {
		closed := MonthlyPayment(tt.principal, tt.rate, tt.term)
		discount := annuityPayment(tt.principal, PeriodicRate(tt.rate, 12), tt.term*12)
		if math.Abs(closed-discount) > 1e-6 {
			t.Errorf("annuityPayment() = %v, MonthlyPayment() = %v, expected equivalence", discount, closed)
		}
	}
}

func TestInterestPayment(t *testing.T) {
	tests := []struct {
		name     string
		balance  float64
		rate     float64
		expected float64
	}{
		{"Standard mortgage interest", 200000, 6.0, 1000.0},
		{"First month at 7%", 400000, 7.0, 2333.33},
		{"Zero interest", 10000, 0.0, 0.0},
		{"Very small balance", 100, 6.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InterestPayment(tt.balance, PeriodicRate(tt.rate, 12))
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("InterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestPeriodicRate(t *testing.T) {
	if got := PeriodicRate(6, 12); math.Abs(got-0.005) > 1e-12 {
		t.Errorf("PeriodicRate(6, 12) = %v, expected 0.005", got)
	}
	if got := PeriodicRate(6, 0); got != 0 {
		t.Errorf("PeriodicRate(6, 0) = %v, expected 0", got)
	}
}

func TestLoanAmount(t *testing.T) {
	tests := []struct {
		homeValue float64
		downPct   float64
		expected  float64
	}{
		{500000, 20, 400000},
		{500000, 0, 500000},
		{500000, 100, 0},
		{350000, 3.5, 337750},
	}

	for _, tt := range tests {
		if got := LoanAmount(tt.homeValue, tt.downPct); math.Abs(got-tt.expected) > 1e-6 {
			t.Errorf("LoanAmount(%v, %v) = %v, expected %v", tt.homeValue, tt.downPct, got, tt.expected)
		}
	}
}
