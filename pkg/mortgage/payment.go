// Package mortgage computes fixed-rate mortgage payments, escrow breakdowns and
// amortization schedules with extra payments, tax-return accrual and
// loan-to-value based mortgage insurance tracking.
package mortgage

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// PeriodicRate converts an annual percentage rate (7 means 7%) into the rate
// applied each period.
func PeriodicRate(annualRatePct float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return annualRatePct / constants.PercentageMultiplier / float64(periodsPerYear)
}

// MonthlyPayment calculates the fixed monthly principal and interest payment
// using the standard annuity formula. A zero rate is amortized straight-line.
func MonthlyPayment(principal, annualRatePct float64, termYears int) float64 {
	r := PeriodicRate(annualRatePct, constants.MonthsPerYear)
	n := float64(termYears * constants.MonthsPerYear)
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * (r * growth) / (growth - 1)
}

// BiWeeklyPayment is half of the monthly payment.
func BiWeeklyPayment(principal, annualRatePct float64, termYears int) float64 {
	return MonthlyPayment(principal, annualRatePct, termYears) / 2
}

// InterestPayment calculates the interest accrued on a balance for one period.
func InterestPayment(balance, periodicRate float64) float64 {
	return balance * periodicRate
}

// LoanAmount derives the financed amount from a home value and a down
// payment percentage.
func LoanAmount(homeValue, downPct float64) float64 {
	return homeValue * (1 - downPct/constants.PercentageMultiplier)
}

// annuityPayment is the discount-factor form of the annuity formula used by
// the schedule generator. It is numerically equivalent to MonthlyPayment for
// monthly periods.
func annuityPayment(principal, periodicRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodicRate == 0 {
		return principal / float64(periods)
	}
	return principal * periodicRate / (1 - math.Pow(1+periodicRate, -float64(periods)))
}
