// Package format renders numbers and currency amounts for display.
//
// Rounding is half away from zero, applied to the shortest decimal
// representation of the value, so 1.005 renders as "1.01" at two decimals.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Number returns value with a fixed number of decimals and thousands
// separators (e.g., "-1,234.56"). Negative decimals are treated as zero.
func Number(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if special, ok := nonFinite(value); ok {
		return special
	}

	rounded := decimal.NewFromFloat(value).Round(int32(decimals))
	formatted := rounded.Abs().StringFixed(int32(decimals))
	if rounded.IsNegative() {
		return "-" + group(formatted)
	}
	return group(formatted)
}

// Currency returns an amount with two decimals prefixed by symbol
// (e.g., "-$1,234.56" or "₹8,312.00").
func Currency(amount float64, symbol string) string {
	formatted := Number(amount, constants.CurrencyDecimals)
	if strings.HasPrefix(formatted, "-") {
		return "-" + symbol + formatted[1:]
	}
	return symbol + formatted
}

// Percent returns a percentage with trailing zeros trimmed (e.g., "18%", "7.25%").
func Percent(value float64) string {
	if special, ok := nonFinite(value); ok {
		return special + "%"
	}
	return decimal.NewFromFloat(value).Round(constants.CurrencyDecimals).String() + "%"
}

// nonFinite renders NaN and the infinities, which decimal cannot represent.
func nonFinite(value float64) (string, bool) {
	switch {
	case math.IsNaN(value):
		return "NaN", true
	case math.IsInf(value, 1):
		return "∞", true
	case math.IsInf(value, -1):
		return "-∞", true
	}
	return "", false
}

func group(formatted string) string {
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
