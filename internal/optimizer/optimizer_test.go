package optimizer

import (
	"context"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

var fixedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func loanInputs() config.LoanInputs {
	inputs := config.DefaultLoanInputs()
	inputs.FirstPaymentDate = "2024-01-01"
	return inputs
}

func payments(t *testing.T, inputs config.LoanInputs) int {
	t.Helper()
	params, err := inputs.Parameters(fixedTime)
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}
	return len(mortgage.GenerateSchedule(params))
}

func TestOptimizeExtraPayment(t *testing.T) {
	runner := NewRunner(nil, fixedTime)
	summary, err := runner.Optimize(context.Background(), "Current", loanInputs(), config.OptimizerConfig{TargetYears: 20})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if !summary.Converged {
		t.Fatalf("expected convergence, got %+v", summary)
	}
	if summary.TargetPayments != 240 {
		t.Errorf("TargetPayments = %d, expected 240", summary.TargetPayments)
	}
	if summary.BaselinePayments != 360 {
		t.Errorf("BaselinePayments = %d, expected 360", summary.BaselinePayments)
	}
	if summary.Payments > 240 {
		t.Errorf("Payments = %d, expected at most 240", summary.Payments)
	}
	if summary.Value <= 0 || summary.InterestSaved <= 0 {
		t.Errorf("expected positive extra and savings, got %+v", summary)
	}

	// One cent less must miss the target.
	inputs := loanInputs()
	inputs.ExtraPayment = summary.Value - 0.01
	if n := payments(t, inputs); n <= 240 {
		t.Errorf("extra of %.2f already meets the target with %d payments", inputs.ExtraPayment, n)
	}
	inputs.ExtraPayment = summary.Value
	if n := payments(t, inputs); n > 240 {
		t.Errorf("optimized extra %.2f yields %d payments, expected at most 240", summary.Value, n)
	}
}

func TestOptimizeAnnualPayment(t *testing.T) {
	runner := NewRunner(nil, fixedTime)
	cfg := config.OptimizerConfig{Field: config.OptimizerFieldExtraAnnualPayment, TargetPayments: 300}
	summary, err := runner.Optimize(context.Background(), "Annual", loanInputs(), cfg)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if !summary.Converged || summary.Payments > 300 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Field != config.OptimizerFieldExtraAnnualPayment {
		t.Errorf("Field = %q, expected %q", summary.Field, config.OptimizerFieldExtraAnnualPayment)
	}
}

func TestOptimizeTargetAlreadyMet(t *testing.T) {
	runner := NewRunner(nil, fixedTime)
	summary, err := runner.Optimize(context.Background(), "Current", loanInputs(), config.OptimizerConfig{TargetYears: 30})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if summary.Value != 0 || !summary.Converged || summary.Iterations != 0 {
		t.Errorf("expected zero extra without iterations, got %+v", summary)
	}
	if len(summary.Notes) != 1 {
		t.Errorf("expected a note, got %v", summary.Notes)
	}
}

func TestOptimizeUnreachable(t *testing.T) {
	maxExtra := 100.0
	runner := NewRunner(nil, fixedTime)
	summary, err := runner.Optimize(context.Background(), "Current", loanInputs(),
		config.OptimizerConfig{TargetYears: 5, Max: &maxExtra})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if summary.Converged {
		t.Errorf("expected no convergence for unreachable target")
	}
	if summary.Value != maxExtra {
		t.Errorf("Value = %v, expected the upper bound %v", summary.Value, maxExtra)
	}
	if len(summary.Notes) == 0 {
		t.Errorf("expected an explanatory note")
	}
}

func TestOptimizeErrors(t *testing.T) {
	runner := NewRunner(nil, fixedTime)

	if _, err := runner.Optimize(context.Background(), "Current", loanInputs(), config.OptimizerConfig{}); err == nil {
		t.Errorf("expected error for missing target")
	}

	bad := loanInputs()
	bad.FirstPaymentDate = "not-a-date"
	if _, err := runner.Optimize(context.Background(), "Current", bad, config.OptimizerConfig{TargetYears: 20}); err == nil {
		t.Errorf("expected error for invalid inputs")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Optimize(ctx, "Current", loanInputs(), config.OptimizerConfig{TargetYears: 20}); err == nil {
		t.Errorf("expected error for cancelled context")
	}
}
