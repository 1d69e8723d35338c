// Package loans builds month-by-month amortization schedules for loans
// repaid with a fixed installment.
package loans

import (
	"fmt"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given installment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * calculator.MonthlyRate(annualInterestRate)
}

// ScheduleGenerator provides utilities for generating loan amortization schedules
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the complete amortization schedule for a loan.
// Every installment equals the EMI except the last, which clears whatever
// balance floating point error left behind.
func (g *ScheduleGenerator) GenerateSchedule(terms calculator.LoanTerms) ([]Payment, error) {
	if terms.TenureMonths <= 0 {
		return nil, fmt.Errorf("tenure must be positive, got %d months", terms.TenureMonths)
	}
	if terms.TenureMonths > constants.MaxTenureMonths {
		return nil, fmt.Errorf("tenure must not exceed %d months, got %d", constants.MaxTenureMonths, terms.TenureMonths)
	}
	if terms.Principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %.2f", terms.Principal)
	}
	if terms.AnnualRatePercent < 0 {
		return nil, fmt.Errorf("interest rate must not be negative, got %.2f", terms.AnnualRatePercent)
	}

	monthlyPayment := terms.EMI().EMI
	schedule := make([]Payment, 0, terms.TenureMonths)
	remaining := terms.Principal

	for month := 1; month <= terms.TenureMonths; month++ {
		current := Payment{Month: month, Payment: monthlyPayment}
		current.Interest = CalculateInterestPayment(remaining, terms.AnnualRatePercent)
		current.Principal = monthlyPayment - current.Interest

		if month == terms.TenureMonths || mathutil.Round(remaining-current.Principal) == 0 {
			// We will get machine error otherwise so just settle the balance.
			current.Principal = remaining
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0.00
			schedule = append(schedule, current)
			if month < terms.TenureMonths {
				g.logger.Debug(fmt.Sprintf("loan repaid after %d of %d months", month, terms.TenureMonths),
					zap.String("op", "loans.GenerateSchedule"),
				)
			}
			break
		}

		current.RemainingPrincipal = remaining - current.Principal
		remaining = current.RemainingPrincipal
		schedule = append(schedule, current)
	}

	var principalPaid float64
	for _, p := range schedule {
		principalPaid += p.Principal
	}
	if !mathutil.CurrencyEqual(principalPaid, terms.Principal) {
		g.logger.Warn("schedule principal does not match loan principal",
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("principal", terms.Principal),
			zap.Float64("repaid", principalPaid),
		)
	}

	return schedule, nil
}

// Totals sums the payments and the interest across a schedule.
func Totals(schedule []Payment) (paid, interest float64) {
	for _, p := range schedule {
		paid += p.Payment
		interest += p.Interest
	}
	return paid, interest
}
