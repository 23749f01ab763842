package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// Input keys, matching the configuration field names.
const (
	KeyHomeValue          = "homeValue"
	KeyDownPct            = "downPct"
	KeyRate               = "rate"
	KeyTerm               = "term"
	KeyTaxYr              = "taxYr"
	KeyInsYr              = "insYr"
	KeyHOAMo              = "hoaMo"
	KeyPMIMo              = "pmiMo"
	KeyExtraPayment       = "extraPayment"
	KeyPaymentInterval    = "paymentInterval"
	KeyExtraAnnualPayment = "extraAnnualPayment"
	KeyStartPaymentNumber = "startPaymentNumber"
)

// InputConstraints is the published range of a calculator input.
type InputConstraints struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

var inputConstraints = map[string]InputConstraints{
	KeyHomeValue:          {Min: 50000, Max: 2000000, Step: 1000},
	KeyDownPct:            {Min: 0, Max: 100, Step: 1},
	KeyRate:               {Min: 0, Max: 15, Step: 0.01},
	KeyTerm:               {Min: 1, Max: 30, Step: 1},
	KeyTaxYr:              {Min: 0, Max: 50000, Step: 100},
	KeyInsYr:              {Min: 0, Max: 20000, Step: 100},
	KeyHOAMo:              {Min: 0, Max: 2000, Step: 10},
	KeyPMIMo:              {Min: 0, Max: 500, Step: 5},
	KeyExtraPayment:       {Min: 0, Max: 10000, Step: 50},
	KeyPaymentInterval:    {Min: 1, Max: 12, Step: 1},
	KeyExtraAnnualPayment: {Min: 0, Max: 50000, Step: 100},
	KeyStartPaymentNumber: {Min: 1, Max: 360, Step: 1},
}

// InputKeys returns every constrained input key in sorted order.
func InputKeys() []string {
	keys := make([]string, 0, len(inputConstraints))
	for key := range inputConstraints {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Constraint returns the published range for an input.
func Constraint(key string) (InputConstraints, error) {
	c, ok := inputConstraints[key]
	if !ok {
		return InputConstraints{}, fmt.Errorf("unknown input %q", key)
	}
	return c, nil
}

// ClampValue bounds value to the input's published range. NaN clamps to the minimum.
func ClampValue(key string, value float64) (float64, error) {
	c, err := Constraint(key)
	if err != nil {
		return value, err
	}
	if math.IsNaN(value) {
		return c.Min, nil
	}
	return mathutil.Clamp(value, c.Min, c.Max), nil
}

// ValidateInput reports whether value lies within the input's published range.
func ValidateInput(key string, value float64) (bool, error) {
	c, err := Constraint(key)
	if err != nil {
		return false, err
	}
	return value >= c.Min && value <= c.Max, nil
}
