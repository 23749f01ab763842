// Package format renders currency, percentages and ratios for display and export.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), constants.CurrencyPlaces)
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// CurrencyWhole returns a currency string without cents (e.g., "$400,000").
func CurrencyWhole(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 0)
	if amount < 0 && formatted != "0" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), constants.CurrencyPlaces)
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Fixed returns a plain two-decimal string with no separators (e.g., "2333.33"),
// suitable for CSV cells.
func Fixed(amount float64) string {
	return mathutil.RoundDecimal(amount).StringFixed(constants.CurrencyPlaces)
}

// Percent renders a percentage value (7 means 7%) with the given decimals, e.g. "7.00%".
func Percent(value float64, decimals int32) string {
	if !mathutil.IsFinite(value) {
		value = 0
	}
	return decimal.NewFromFloat(value).Round(decimals).StringFixed(decimals) + "%"
}

// Ratio renders a 0..1 ratio as a percentage, e.g. 0.78 as "78.00%".
func Ratio(value float64) string {
	return Percent(value*constants.PercentageMultiplier, 2)
}

func formatPositive(value float64, places int32) string {
	if !mathutil.IsFinite(value) {
		value = 0
	}
	formatted := decimal.NewFromFloat(value).Round(places).StringFixed(places)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
