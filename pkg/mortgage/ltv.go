package mortgage

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// EffectiveHomeValue returns homeValue when set, otherwise the value implied
// by an 80% loan-to-value at origination.
func EffectiveHomeValue(homeValue, loanAmount float64) float64 {
	if homeValue > 0 {
		return homeValue
	}
	return loanAmount / constants.DefaultOriginationLTV
}

// CalculateLTV returns balance / homeValue, or 0 when the home value is not
// positive.
func CalculateLTV(balance, homeValue float64) float64 {
	return mathutil.SafeDivide(balance, homeValue)
}

// ShouldPMIBeActive reports whether mortgage insurance still applies at the
// given loan-to-value ratio.
func ShouldPMIBeActive(ltv float64) bool {
	return ltv > constants.PMIRemovalLTV
}
