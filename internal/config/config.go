// Package config defines the calculator configuration and loads it from YAML.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected for dates in config files.
const DateTimeLayout = constants.DateLayout

// Configuration holds all configuration for the mortgage calculator.
type Configuration struct {
	Loan      LoanInputs       `yaml:"loan"`
	Scenarios []Scenario       `yaml:"scenarios,omitempty"`
	Optimizer *OptimizerConfig `yaml:"optimizer,omitempty"`
	Logging   logging.Config   `yaml:"logging,omitempty"`
	Output    OutputConfig     `yaml:"output,omitempty"`
}

// OutputConfig holds output format configuration options.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, pdf
	File   string `yaml:"file,omitempty"`   // pdf destination
}

// LoanInputs are the user-facing calculator inputs.
type LoanInputs struct {
	HomeValue          float64 `json:"homeValue" yaml:"homeValue"`
	DownPct            float64 `json:"downPct" yaml:"downPct"`
	Rate               float64 `json:"rate" yaml:"rate"`
	Term               int     `json:"term" yaml:"term"`
	TaxYr              float64 `json:"taxYr" yaml:"taxYr"`
	InsYr              float64 `json:"insYr" yaml:"insYr"`
	HOAMo              float64 `json:"hoaMo" yaml:"hoaMo"`
	PMIMo              float64 `json:"pmiMo" yaml:"pmiMo"`
	ExtraPayment       float64 `json:"extraPayment" yaml:"extraPayment"`
	PaymentInterval    int     `json:"paymentInterval" yaml:"paymentInterval"`
	ExtraAnnualPayment float64 `json:"extraAnnualPayment" yaml:"extraAnnualPayment"`
	StartPaymentNumber int     `json:"startPaymentNumber" yaml:"startPaymentNumber"`
	YearlyTaxReturn    float64 `json:"yearlyTaxReturn" yaml:"yearlyTaxReturn"`
	FirstPaymentDate   string  `json:"firstPaymentDate,omitempty" yaml:"firstPaymentDate,omitempty"`
	PaymentFrequency   string  `json:"paymentFrequency,omitempty" yaml:"paymentFrequency,omitempty"`
}

// DefaultLoanInputs returns the calculator's starting values.
func DefaultLoanInputs() LoanInputs {
	return LoanInputs{
		HomeValue:          500000,
		DownPct:            20,
		Rate:               7,
		Term:               30,
		TaxYr:              2700,
		InsYr:              1500,
		PaymentInterval:    1,
		StartPaymentNumber: 1,
		PaymentFrequency:   constants.FrequencyMonthly,
	}
}

// LoanAmount is the financed amount after the down payment.
func (in LoanInputs) LoanAmount() float64 {
	return mortgage.LoanAmount(in.HomeValue, in.DownPct)
}

// Escrows returns the monthly escrow items for these inputs.
func (in LoanInputs) Escrows() mortgage.Escrows {
	return mortgage.MonthlyEscrows(in.TaxYr, in.InsYr, in.HOAMo, in.PMIMo)
}

// Parameters converts the inputs into engine parameters. An empty first
// payment date resolves to today.
func (in LoanInputs) Parameters(now time.Time) (mortgage.LoanParameters, error) {
	start, err := datetime.ParseDate(in.FirstPaymentDate, now)
	if err != nil {
		return mortgage.LoanParameters{}, fmt.Errorf("invalid firstPaymentDate: %w", err)
	}
	frequency, err := mortgage.ParseFrequency(in.PaymentFrequency)
	if err != nil {
		return mortgage.LoanParameters{}, err
	}

	return mortgage.LoanParameters{
		LoanAmount:         in.LoanAmount(),
		AnnualRatePct:      in.Rate,
		TermYears:          in.Term,
		StartDate:          start,
		ExtraPayment:       in.ExtraPayment,
		PaymentInterval:    in.PaymentInterval,
		ExtraAnnualPayment: in.ExtraAnnualPayment,
		StartPaymentNumber: in.StartPaymentNumber,
		YearlyTaxReturn:    in.YearlyTaxReturn,
		HomeValue:          in.HomeValue,
		Frequency:          frequency,
	}, nil
}

// Clamp bounds every constrained input to its published range and describes
// each adjustment.
func (in LoanInputs) Clamp() (LoanInputs, []string) {
	var warnings []string
	clampFloat := func(key string, value *float64) {
		clamped, err := validation.ClampValue(key, *value)
		if err != nil || clamped == *value {
			return
		}
		warnings = append(warnings, fmt.Sprintf("%s %v is out of range, clamped to %v", key, *value, clamped))
		*value = clamped
	}
	clampInt := func(key string, value *int) {
		v := float64(*value)
		clampFloat(key, &v)
		*value = int(v)
	}

	clampFloat(validation.KeyHomeValue, &in.HomeValue)
	clampFloat(validation.KeyDownPct, &in.DownPct)
	clampFloat(validation.KeyRate, &in.Rate)
	clampInt(validation.KeyTerm, &in.Term)
	clampFloat(validation.KeyTaxYr, &in.TaxYr)
	clampFloat(validation.KeyInsYr, &in.InsYr)
	clampFloat(validation.KeyHOAMo, &in.HOAMo)
	clampFloat(validation.KeyPMIMo, &in.PMIMo)
	clampFloat(validation.KeyExtraPayment, &in.ExtraPayment)
	clampInt(validation.KeyPaymentInterval, &in.PaymentInterval)
	clampFloat(validation.KeyExtraAnnualPayment, &in.ExtraAnnualPayment)
	clampInt(validation.KeyStartPaymentNumber, &in.StartPaymentNumber)

	return in, warnings
}

// Scenario is a named set of overrides applied on top of the base loan.
type Scenario struct {
	Name      string    `json:"name" yaml:"name"`
	Active    bool      `json:"active" yaml:"active"`
	Overrides Overrides `json:"overrides" yaml:"overrides"`
}

// Overrides replaces the base loan inputs that are set.
type Overrides struct {
	HomeValue          *float64 `json:"homeValue,omitempty" yaml:"homeValue,omitempty"`
	DownPct            *float64 `json:"downPct,omitempty" yaml:"downPct,omitempty"`
	Rate               *float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Term               *int     `json:"term,omitempty" yaml:"term,omitempty"`
	ExtraPayment       *float64 `json:"extraPayment,omitempty" yaml:"extraPayment,omitempty"`
	PaymentInterval    *int     `json:"paymentInterval,omitempty" yaml:"paymentInterval,omitempty"`
	ExtraAnnualPayment *float64 `json:"extraAnnualPayment,omitempty" yaml:"extraAnnualPayment,omitempty"`
	StartPaymentNumber *int     `json:"startPaymentNumber,omitempty" yaml:"startPaymentNumber,omitempty"`
	YearlyTaxReturn    *float64 `json:"yearlyTaxReturn,omitempty" yaml:"yearlyTaxReturn,omitempty"`
	PaymentFrequency   *string  `json:"paymentFrequency,omitempty" yaml:"paymentFrequency,omitempty"`
}

// Apply returns base with every set override replaced.
func (o Overrides) Apply(base LoanInputs) LoanInputs {
	if o.HomeValue != nil {
		base.HomeValue = *o.HomeValue
	}
	if o.DownPct != nil {
		base.DownPct = *o.DownPct
	}
	if o.Rate != nil {
		base.Rate = *o.Rate
	}
	if o.Term != nil {
		base.Term = *o.Term
	}
	if o.ExtraPayment != nil {
		base.ExtraPayment = *o.ExtraPayment
	}
	if o.PaymentInterval != nil {
		base.PaymentInterval = *o.PaymentInterval
	}
	if o.ExtraAnnualPayment != nil {
		base.ExtraAnnualPayment = *o.ExtraAnnualPayment
	}
	if o.StartPaymentNumber != nil {
		base.StartPaymentNumber = *o.StartPaymentNumber
	}
	if o.YearlyTaxReturn != nil {
		base.YearlyTaxReturn = *o.YearlyTaxReturn
	}
	if o.PaymentFrequency != nil {
		base.PaymentFrequency = *o.PaymentFrequency
	}
	return base
}

// Inputs returns the scenario's effective loan inputs.
func (s Scenario) Inputs(base LoanInputs) LoanInputs {
	return s.Overrides.Apply(base)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("MORTGAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultLoanInputs()
	v.SetDefault("loan.homeValue", defaults.HomeValue)
	v.SetDefault("loan.downPct", defaults.DownPct)
	v.SetDefault("loan.rate", defaults.Rate)
	v.SetDefault("loan.term", defaults.Term)
	v.SetDefault("loan.taxYr", defaults.TaxYr)
	v.SetDefault("loan.insYr", defaults.InsYr)
	v.SetDefault("loan.paymentInterval", defaults.PaymentInterval)
	v.SetDefault("loan.startPaymentNumber", defaults.StartPaymentNumber)
	v.SetDefault("loan.paymentFrequency", defaults.PaymentFrequency)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration clamps the loan and every scenario into the published
// input ranges and returns a warning for each adjustment or inconsistency.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	loan, loanWarnings := c.Loan.Clamp()
	c.Loan = loan
	for _, w := range loanWarnings {
		warnings = append(warnings, "loan: "+w)
	}
	if _, err := mortgage.ParseFrequency(c.Loan.PaymentFrequency); err != nil {
		warnings = append(warnings, fmt.Sprintf("loan: %v, using %s", err, constants.FrequencyMonthly))
		c.Loan.PaymentFrequency = constants.FrequencyMonthly
	}

	seen := make(map[string]bool)
	for i := range c.Scenarios {
		scenario := &c.Scenarios[i]
		if scenario.Name == "" {
			scenario.Name = fmt.Sprintf("Scenario %d", i+1)
			warnings = append(warnings, fmt.Sprintf("scenario %d has no name, using %q", i+1, scenario.Name))
		}
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name %q", scenario.Name))
		}
		seen[scenario.Name] = true

		_, scenarioWarnings := scenario.Inputs(c.Loan).Clamp()
		for _, w := range scenarioWarnings {
			warnings = append(warnings, fmt.Sprintf("scenario %s: %s", scenario.Name, w))
		}
		scenario.Overrides = clampOverrides(scenario.Overrides)
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, fmt.Sprintf("%v, using %s", err, constants.OutputFormatPretty))
			c.Output.Format = constants.OutputFormatPretty
		}
	}

	return warnings
}

// clampOverrides bounds every set override to its published range.
func clampOverrides(o Overrides) Overrides {
	clampFloat := func(key string, value *float64) *float64 {
		if value == nil {
			return nil
		}
		clamped, err := validation.ClampValue(key, *value)
		if err != nil {
			return value
		}
		return &clamped
	}
	clampInt := func(key string, value *int) *int {
		if value == nil {
			return nil
		}
		clamped, err := validation.ClampValue(key, float64(*value))
		if err != nil {
			return value
		}
		n := int(clamped)
		return &n
	}

	o.HomeValue = clampFloat(validation.KeyHomeValue, o.HomeValue)
	o.DownPct = clampFloat(validation.KeyDownPct, o.DownPct)
	o.Rate = clampFloat(validation.KeyRate, o.Rate)
	o.Term = clampInt(validation.KeyTerm, o.Term)
	o.ExtraPayment = clampFloat(validation.KeyExtraPayment, o.ExtraPayment)
	o.PaymentInterval = clampInt(validation.KeyPaymentInterval, o.PaymentInterval)
	o.ExtraAnnualPayment = clampFloat(validation.KeyExtraAnnualPayment, o.ExtraAnnualPayment)
	o.StartPaymentNumber = clampInt(validation.KeyStartPaymentNumber, o.StartPaymentNumber)
	return o
}

// ActiveScenarios returns the scenarios flagged active, in order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}
