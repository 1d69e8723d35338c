// Package output provides utilities for formatting and displaying
// calculation results.
package output

import (
	"fmt"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/format"
)

// Row is one labelled, display-ready value. Tag is an optional styling
// hint such as "success", "warning" or a BMI category tag.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tag   string `json:"tag,omitempty"`
}

// Report is a titled set of rows.
type Report struct {
	Title   string `json:"title"`
	Rows    []Row  `json:"rows"`
	Summary string `json:"summary,omitempty"`
}

// EMIRows lays out a loan result.
func EMIRows(symbol string, result calculator.EMIResult) []Row {
	return []Row{
		{Label: "Monthly EMI", Value: format.Currency(result.EMI, symbol), Tag: "success"},
		{Label: "Total Interest", Value: format.Currency(result.TotalInterest, symbol), Tag: "warning"},
		{Label: "Total Amount", Value: format.Currency(result.TotalAmount, symbol)},
	}
}

// GSTRows lays out a GST result; labels depend on the mode.
func GSTRows(symbol string, mode calculator.GSTMode, result calculator.GSTResult) []Row {
	baseLabel, finalLabel := "Base Amount", "Final Amount (Incl. GST)"
	if mode == calculator.ExtractGST {
		baseLabel, finalLabel = "Base Amount (Excl. GST)", "Total Amount"
	}
	return []Row{
		{Label: baseLabel, Value: format.Currency(result.BaseAmount, symbol)},
		{Label: "GST Amount", Value: format.Currency(result.GSTAmount, symbol), Tag: "warning"},
		{Label: finalLabel, Value: format.Currency(result.FinalAmount, symbol), Tag: "success"},
	}
}

// CurrencyRows lays out a conversion.
func CurrencyRows(fromSymbol, toSymbol string, result calculator.CurrencyResult) []Row {
	return []Row{
		{Label: fmt.Sprintf("Original (%s)", result.From), Value: format.Currency(result.OriginalAmount, fromSymbol)},
		{Label: fmt.Sprintf("Converted (%s)", result.To), Value: format.Currency(result.ConvertedAmount, toSymbol), Tag: "success"},
		{
			Label: "Exchange Rate",
			Value: fmt.Sprintf("1 %s = %s %s", result.From, format.Number(result.ExchangeRate, 4), result.To),
			Tag:   "warning",
		},
	}
}

// BMIRows lays out a BMI result.
func BMIRows(result calculator.BMIResult) []Row {
	return []Row{
		{Label: "Your BMI", Value: format.Number(result.BMI, 1), Tag: result.CategoryTag},
		{Label: "Category", Value: string(result.Category), Tag: result.CategoryTag},
	}
}
