package calculator

import (
	"github.com/iwvelando/finance-calculator/pkg/currency"
)

// CurrencyQuery holds the inputs of a currency conversion.
type CurrencyQuery struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// CurrencyResult holds a conversion; ConvertedAmount = OriginalAmount * ExchangeRate.
type CurrencyResult struct {
	OriginalAmount  float64 `json:"originalAmount"`
	ConvertedAmount float64 `json:"convertedAmount"`
	ExchangeRate    float64 `json:"exchangeRate"`
	From            string  `json:"from"`
	To              string  `json:"to"`
}

// Convert runs the query against table.
func (q CurrencyQuery) Convert(table *currency.Table) (CurrencyResult, error) {
	return ConvertCurrency(table, q.Amount, q.From, q.To)
}

// ConvertCurrency converts amount through the pivot currency. The reported
// exchange rate is the direct ratio rate[to]/rate[from]. A nil table means
// the built-in one. Unknown codes yield an error wrapping
// currency.ErrUnknownCurrency.
func ConvertCurrency(table *currency.Table, amount float64, from, to string) (CurrencyResult, error) {
	if table == nil {
		table = currency.Default()
	}

	src, err := table.Lookup(from)
	if err != nil {
		return CurrencyResult{}, err
	}
	dst, err := table.Lookup(to)
	if err != nil {
		return CurrencyResult{}, err
	}

	result := CurrencyResult{
		OriginalAmount: amount,
		From:           src.Code,
		To:             dst.Code,
	}

	if src.Code == dst.Code {
		result.ConvertedAmount = amount
		result.ExchangeRate = 1
		return result, nil
	}

	amountInPivot := amount / src.RateToUSD
	result.ConvertedAmount = amountInPivot * dst.RateToUSD
	result.ExchangeRate = dst.RateToUSD / src.RateToUSD
	return result, nil
}
