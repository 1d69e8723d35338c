package calculator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
)

// GSTMode selects whether GST is added to or extracted from an amount.
type GSTMode string

const (
	// AddGST treats the amount as exclusive of GST.
	AddGST GSTMode = "add"
	// ExtractGST treats the amount as inclusive of GST.
	ExtractGST GSTMode = "extract"
)

// Label returns the human-readable name of the mode.
func (m GSTMode) Label() string {
	if m == ExtractGST {
		return "Extract GST"
	}
	return "Add GST"
}

// ParseGSTMode accepts "add", "extract" or "subtract". An empty string
// means AddGST.
func ParseGSTMode(s string) (GSTMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "add", "exclusive":
		return AddGST, nil
	case "extract", "subtract", "inclusive":
		return ExtractGST, nil
	}
	return "", fmt.Errorf("unsupported GST mode %q", s)
}

// GSTRate is a selectable GST slab.
type GSTRate struct {
	Percent float64 `json:"percent" mapstructure:"percent"`
	Label   string  `json:"label" mapstructure:"label"`
}

// StandardGSTRates are the slabs offered by default.
var StandardGSTRates = []GSTRate{
	{Percent: 0, Label: "0% (Exempt)"},
	{Percent: 5, Label: "5% GST"},
	{Percent: 12, Label: "12% GST"},
	{Percent: 18, Label: "18% GST"},
	{Percent: 28, Label: "28% GST"},
}

// GSTQuery holds the inputs of a GST calculation.
type GSTQuery struct {
	Amount      float64 `json:"amount"`
	RatePercent float64 `json:"ratePercent"`
	Mode        GSTMode `json:"mode"`
}

// GSTResult always satisfies FinalAmount = BaseAmount + GSTAmount.
type GSTResult struct {
	BaseAmount  float64 `json:"baseAmount"`
	GSTAmount   float64 `json:"gstAmount"`
	FinalAmount float64 `json:"finalAmount"`
}

// GST computes the tax breakdown for the query.
func (q GSTQuery) GST() GSTResult {
	return ComputeGST(q.Amount, q.RatePercent, q.Mode)
}

// ComputeGST adds GST to an exclusive amount, or extracts it from an
// inclusive one.
func ComputeGST(amount, ratePercent float64, mode GSTMode) GSTResult {
	if mode == ExtractGST {
		// amount = base + base*rate/100, so base = amount / (1 + rate/100)
		base := amount / mathutil.PercentToFactor(ratePercent)
		return GSTResult{
			BaseAmount:  base,
			GSTAmount:   amount - base,
			FinalAmount: amount,
		}
	}

	gst := amount * ratePercent / constants.PercentageMultiplier
	return GSTResult{
		BaseAmount:  amount,
		GSTAmount:   gst,
		FinalAmount: amount + gst,
	}
}
