package history

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/format"
)

// EMISummary describes a loan calculation, e.g.
// "₹100,000 @ 10% for 12 months" / "EMI: ₹8,791.59".
func EMISummary(symbol string, terms calculator.LoanTerms, unit calculator.TenureUnit, result calculator.EMIResult) (label, value string) {
	tenure := terms.TenureMonths
	if unit == calculator.TenureYears {
		tenure = terms.TenureMonths / calculator.TenureToMonths(1, calculator.TenureYears)
	}
	label = fmt.Sprintf("%s%s @ %s for %d %s",
		symbol, format.Number(terms.Principal, 0), format.Percent(terms.AnnualRatePercent), tenure, unit)
	value = "EMI: " + format.Currency(result.EMI, symbol)
	return label, value
}

// GSTSummary describes a GST calculation.
func GSTSummary(symbol string, query calculator.GSTQuery, result calculator.GSTResult) (label, value string) {
	label = fmt.Sprintf("%s%s @ %s (%s)",
		symbol, format.Number(query.Amount, 0), format.Percent(query.RatePercent), query.Mode.Label())
	value = "GST: " + format.Currency(result.GSTAmount, symbol)
	return label, value
}

// CurrencySummary describes a conversion; symbols are looked up by the caller.
func CurrencySummary(fromSymbol, toSymbol string, result calculator.CurrencyResult) (label, value string) {
	label = format.Currency(result.OriginalAmount, fromSymbol) + " " + result.From
	value = format.Currency(result.ConvertedAmount, toSymbol) + " " + result.To
	return label, value
}

// BMISummary describes a BMI calculation using the measurements as entered.
func BMISummary(weight, height float64, imperial bool, result calculator.BMIResult) (label, value string) {
	weightUnit, heightUnit := "kg", "cm"
	if imperial {
		weightUnit, heightUnit = "lb", "in"
	}
	label = fmt.Sprintf("%s %s, %s %s", trimFloat(weight), weightUnit, trimFloat(height), heightUnit)
	value = fmt.Sprintf("BMI: %s (%s)", format.Number(result.BMI, 1), result.Category)
	return label, value
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
