package config

import (
	"fmt"
	"math"
	"strings"
)

const (
	OptimizerFieldExtraPayment       = "extraPayment"
	OptimizerFieldExtraAnnualPayment = "extraAnnualPayment"

	defaultOptimizerTolerance     = 0.01
	defaultOptimizerMaxIterations = 100
)

// OptimizerConfig describes a payoff target: the smallest value of Field whose
// schedule finishes within the target.
type OptimizerConfig struct {
	Field          string   `json:"field,omitempty" yaml:"field,omitempty" mapstructure:"field"`
	TargetYears    float64  `json:"targetYears,omitempty" yaml:"targetYears,omitempty" mapstructure:"targetYears"`
	TargetPayments int      `json:"targetPayments,omitempty" yaml:"targetPayments,omitempty" mapstructure:"targetPayments"`
	Min            *float64 `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max            *float64 `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
	Tolerance      float64  `json:"tolerance,omitempty" yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations  int      `json:"maxIterations,omitempty" yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "extrapayment", "extra_payment", "extra-payment":
		return OptimizerFieldExtraPayment
	case "extraannualpayment", "extra_annual_payment", "extra-annual-payment":
		return OptimizerFieldExtraAnnualPayment
	default:
		return strings.TrimSpace(value)
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)
	if o.Tolerance <= 0 {
		o.Tolerance = defaultOptimizerTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultOptimizerMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	switch o.Field {
	case OptimizerFieldExtraPayment, OptimizerFieldExtraAnnualPayment:
	default:
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}
	if o.TargetPayments < 0 || o.TargetYears < 0 || math.IsNaN(o.TargetYears) {
		return fmt.Errorf("optimizer target must not be negative")
	}
	if o.TargetPayments == 0 && o.TargetYears == 0 {
		return fmt.Errorf("optimizer requires targetYears or targetPayments")
	}
	if o.Min != nil && *o.Min < 0 {
		return fmt.Errorf("optimizer minimum %.2f must not be negative", *o.Min)
	}
	if o.Min != nil && o.Max != nil && *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %.2f must be less than maximum %.2f", *o.Min, *o.Max)
	}
	return nil
}

// TargetPeriods converts the target into a payment count. TargetPayments wins
// when both are set; years round up to whole periods.
func (o *OptimizerConfig) TargetPeriods(periodsPerYear int) int {
	if o.TargetPayments > 0 {
		return o.TargetPayments
	}
	return int(math.Ceil(o.TargetYears*float64(periodsPerYear) - 1e-9))
}
