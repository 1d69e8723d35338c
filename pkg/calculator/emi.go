// Package calculator implements the four calculators: loan EMI, GST,
// currency conversion and BMI. Every function is pure; callers are
// expected to validate input with the validation package first.
package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
)

// TenureUnit is the unit a loan tenure was entered in.
type TenureUnit string

const (
	TenureMonths TenureUnit = "months"
	TenureYears  TenureUnit = "years"
)

// ParseTenureUnit accepts "months" or "years" (case-insensitive). An empty
// string means months.
func ParseTenureUnit(s string) (TenureUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "month", "months", "m":
		return TenureMonths, nil
	case "year", "years", "y":
		return TenureYears, nil
	}
	return "", fmt.Errorf("unsupported tenure unit %q", s)
}

// TenureToMonths converts a tenure in the given unit to months.
func TenureToMonths(value int, unit TenureUnit) int {
	if unit == TenureYears {
		return value * constants.MonthsPerYear
	}
	return value
}

// LoanTerms holds the inputs of an EMI calculation.
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TenureMonths      int     `json:"tenureMonths"`
}

// EMIResult holds the values for a given loan.
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalInterest float64 `json:"totalInterest"`
}

// EMI computes the installment for the terms.
func (l LoanTerms) EMI() EMIResult {
	return ComputeEMI(l.Principal, l.AnnualRatePercent, l.TenureMonths)
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.MonthsPerYear / constants.PercentageMultiplier
}

// ComputeEMI calculates the equated monthly installment using the standard
// amortization formula EMI = P*r*(1+r)^n / ((1+r)^n - 1).
func ComputeEMI(principal, annualRatePercent float64, tenureMonths int) EMIResult {
	monthlyRate := MonthlyRate(annualRatePercent)
	power := math.Pow(1+monthlyRate, float64(tenureMonths))
	if monthlyRate == 0 || power == 1 {
		// For zero interest, simply divide the principal by term
		return EMIResult{
			EMI:           principal / float64(tenureMonths),
			TotalAmount:   principal,
			TotalInterest: 0,
		}
	}

	// power/(power-1) tends to 1 once the compounding overflows
	growth := 1.0
	if !math.IsInf(power, 1) {
		growth = power / (power - 1)
	}
	emi := principal * monthlyRate * growth
	totalAmount := emi * float64(tenureMonths)

	return EMIResult{
		EMI:           emi,
		TotalAmount:   totalAmount,
		TotalInterest: totalAmount - principal,
	}
}
