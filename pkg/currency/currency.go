// Package currency holds the static exchange-rate table used by the
// currency converter. Rates are quoted against the US dollar and never
// change once a Table has been built.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
)

// ErrUnknownCurrency is returned when a code is not present in a Table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes a single supported currency.
type Currency struct {
	Code      string  `json:"code" yaml:"code"`
	RateToUSD float64 `json:"rateToUSD" yaml:"rateToUSD"`
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Name      string  `json:"name" yaml:"name"`
}

// Table is an immutable lookup of currencies keyed by code.
type Table struct {
	order []string
	byKey map[string]Currency
}

// defaultCurrencies are approximate rates for demonstration purposes.
var defaultCurrencies = []Currency{
	{Code: "USD", RateToUSD: 1, Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", RateToUSD: 0.92, Symbol: "€", Name: "Euro"},
	{Code: "GBP", RateToUSD: 0.79, Symbol: "£", Name: "British Pound"},
	{Code: "INR", RateToUSD: 83.12, Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", RateToUSD: 149.50, Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", RateToUSD: 1.53, Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", RateToUSD: 1.36, Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", RateToUSD: 0.88, Symbol: "CHF", Name: "Swiss Franc"},
	{Code: "CNY", RateToUSD: 7.24, Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "SGD", RateToUSD: 1.34, Symbol: "S$", Name: "Singapore Dollar"},
}

var defaultTable = mustNewTable(defaultCurrencies)

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// DefaultCurrencies returns a copy of the built-in currency list.
func DefaultCurrencies() []Currency {
	return append([]Currency(nil), defaultCurrencies...)
}

// NewTable builds a table from the given currencies, keeping their order.
// Codes are normalized to upper case; duplicates and non-positive rates are
// rejected, and the pivot currency must be present at rate 1.
func NewTable(currencies []Currency) (*Table, error) {
	t := &Table{
		order: make([]string, 0, len(currencies)),
		byKey: make(map[string]Currency, len(currencies)),
	}

	for _, c := range currencies {
		c.Code = NormalizeCode(c.Code)
		if c.Code == "" {
			return nil, fmt.Errorf("currency code must not be empty")
		}
		if _, exists := t.byKey[c.Code]; exists {
			return nil, fmt.Errorf("duplicate currency code %s", c.Code)
		}
		if c.RateToUSD <= 0 {
			return nil, fmt.Errorf("currency %s: rate must be positive, got %v", c.Code, c.RateToUSD)
		}
		if c.Symbol == "" {
			c.Symbol = c.Code
		}
		if c.Name == "" {
			c.Name = c.Code
		}
		t.order = append(t.order, c.Code)
		t.byKey[c.Code] = c
	}

	pivot, ok := t.byKey[constants.PivotCurrency]
	if !ok {
		return nil, fmt.Errorf("pivot currency %s is missing", constants.PivotCurrency)
	}
	if pivot.RateToUSD != 1 {
		return nil, fmt.Errorf("pivot currency %s must have rate 1, got %v", constants.PivotCurrency, pivot.RateToUSD)
	}

	return t, nil
}

func mustNewTable(currencies []Currency) *Table {
	t, err := NewTable(currencies)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in currency table: %v", err))
	}
	return t
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the currency for code.
func (t *Table) Lookup(code string) (Currency, error) {
	c, ok := t.byKey[NormalizeCode(code)]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// Has reports whether code is in the table.
func (t *Table) Has(code string) bool {
	_, ok := t.byKey[NormalizeCode(code)]
	return ok
}

// Rate returns the rate of code against the pivot currency.
func (t *Table) Rate(code string) (float64, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return 0, err
	}
	return c.RateToUSD, nil
}

// Symbol returns the display symbol for code, or the code itself if unknown.
func (t *Table) Symbol(code string) string {
	if c, err := t.Lookup(code); err == nil {
		return c.Symbol
	}
	return NormalizeCode(code)
}

// Codes returns the currency codes in declaration order.
func (t *Table) Codes() []string {
	return append([]string(nil), t.order...)
}

// Currencies returns every currency in declaration order.
func (t *Table) Currencies() []Currency {
	out := make([]Currency, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.byKey[code])
	}
	return out
}

// Len returns the number of currencies in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// WithOverrides returns a new table where each override replaces the
// matching currency field by field (zero fields keep the existing value)
// and unknown codes are appended.
func (t *Table) WithOverrides(overrides []Currency) (*Table, error) {
	merged := t.Currencies()
	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.Code] = i
	}

	for _, o := range overrides {
		code := NormalizeCode(o.Code)
		i, exists := index[code]
		if !exists {
			o.Code = code
			index[code] = len(merged)
			merged = append(merged, o)
			continue
		}
		if o.RateToUSD != 0 {
			merged[i].RateToUSD = o.RateToUSD
		}
		if o.Symbol != "" {
			merged[i].Symbol = o.Symbol
		}
		if o.Name != "" {
			merged[i].Name = o.Name
		}
	}

	return NewTable(merged)
}
