package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-calculator/internal/comparison"
)

func TestFindScenario(t *testing.T) {
	results := []comparison.Result{
		{Name: "Current", Baseline: true},
		{Name: "15-Year"},
		{Name: "+$200/mo Extra"},
	}

	tests := []struct {
		name     string
		search   string
		expected bool
	}{
		{"Baseline", "Current", true},
		{"Special characters", "+$200/mo Extra", true},
		{"Missing", "30-Year", false},
		{"Case sensitive", "current", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindScenario(results, tt.search)
			if (result != nil) != tt.expected {
				t.Fatalf("FindScenario(%q) found = %v, expected %v", tt.search, result != nil, tt.expected)
			}
			if result != nil && result.Name != tt.search {
				t.Errorf("FindScenario(%q) returned %q", tt.search, result.Name)
			}
		})
	}
}

func TestFindScenarioReturnsPointer(t *testing.T) {
	results := []comparison.Result{{Name: "Current"}}
	found := FindScenario(results, "Current")
	if found == nil {
		t.Fatal("expected to find scenario")
	}
	found.InterestSavings = 42
	if results[0].InterestSavings != 42 {
		t.Errorf("expected pointer into the results slice")
	}
}

func TestFindScenarioNilResults(t *testing.T) {
	if FindScenario(nil, "Current") != nil {
		t.Errorf("expected nil for nil results")
	}
}

func TestCaptureStdout(t *testing.T) {
	output := CaptureStdout(t, func() {
		fmt.Print("captured")
	})
	if output != "captured" {
		t.Errorf("CaptureStdout() = %q, expected %q", output, "captured")
	}
}

func TestLoanInputs(t *testing.T) {
	inputs := LoanInputs()
	if inputs.FirstPaymentDate != "2024-01-01" {
		t.Errorf("FirstPaymentDate = %q, expected 2024-01-01", inputs.FirstPaymentDate)
	}
	if math.Abs(inputs.LoanAmount()-400000) > 1e-6 {
		t.Errorf("LoanAmount() = %v, expected 400000", inputs.LoanAmount())
	}
}
