// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CurrencyEqual reports whether two amounts agree to the cent.
func CurrencyEqual(val1, val2 float64) bool {
	return WithinTolerance(val1, val2, constants.CurrencyTolerance)
}

// PercentToFactor turns a percentage into a growth factor, e.g. 18 -> 1.18.
func PercentToFactor(percentage float64) float64 {
	return 1 + percentage/constants.PercentageMultiplier
}
