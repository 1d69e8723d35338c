package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/history"
	"github.com/iwvelando/finance-calculator/pkg/loans"
	"github.com/iwvelando/finance-calculator/pkg/output"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"go.uber.org/zap"
)

// EMIOutcome is a completed loan calculation.
type EMIOutcome struct {
	Calculation
	Terms  calculator.LoanTerms `json:"terms"`
	Result calculator.EMIResult `json:"result"`
}

// ScheduleOutcome is the month-by-month breakdown of a loan.
type ScheduleOutcome struct {
	Terms    calculator.LoanTerms `json:"terms"`
	Result   calculator.EMIResult `json:"result"`
	Schedule []loans.Payment      `json:"schedule"`
}

// GSTOutcome is a completed GST calculation.
type GSTOutcome struct {
	Calculation
	Query  calculator.GSTQuery  `json:"query"`
	Result calculator.GSTResult `json:"result"`
}

// CurrencyOutcome is a completed conversion.
type CurrencyOutcome struct {
	Calculation
	Query  calculator.CurrencyQuery  `json:"query"`
	Result calculator.CurrencyResult `json:"result"`
}

// BMIOutcome is a completed BMI calculation.
type BMIOutcome struct {
	Calculation
	Query  calculator.BMIQuery  `json:"query"`
	Result calculator.BMIResult `json:"result"`
}

// EMI validates the form and, when it is valid, computes the installment.
func (s *Service) EMI(form validation.EMIForm) (EMIOutcome, validation.Errors) {
	terms, errs := validation.ParseEMI(form)
	if !errs.Valid() {
		s.rejected(KindEMI, errs)
		return EMIOutcome{}, errs
	}

	result := terms.EMI()
	unit, _ := calculator.ParseTenureUnit(form.TenureUnit)
	label, value := history.EMISummary(s.symbol, terms, unit, result)
	entry := s.record(KindEMI, label, value)

	return EMIOutcome{
		Calculation: newCalculation(KindEMI, output.EMIRows(s.symbol, result), entry),
		Terms:       terms,
		Result:      result,
	}, errs
}

// EMISchedule validates the form and amortizes the loan. Schedules are a
// view of a loan rather than a new calculation, so nothing is added to
// the history.
func (s *Service) EMISchedule(form validation.EMIForm) (ScheduleOutcome, validation.Errors, error) {
	terms, errs := validation.ParseEMI(form)
	if !errs.Valid() {
		s.rejected(KindEMI, errs)
		return ScheduleOutcome{}, errs, nil
	}

	schedule, err := s.schedules.GenerateSchedule(terms)
	if err != nil {
		s.recorder.ObserveCalculation(string(KindEMI), OutcomeError)
		return ScheduleOutcome{}, errs, fmt.Errorf("failed to generate schedule: %w", err)
	}

	s.logger.Debug("schedule generated",
		zap.String("op", "service.EMISchedule"),
		zap.Int("payments", len(schedule)),
	)
	return ScheduleOutcome{Terms: terms, Result: terms.EMI(), Schedule: schedule}, errs, nil
}

// GST validates the form and, when it is valid, computes the tax.
func (s *Service) GST(form validation.GSTForm) (GSTOutcome, validation.Errors) {
	if strings.TrimSpace(form.Rate) == "" {
		form.Rate = strconv.FormatFloat(s.DefaultGSTRate(), 'f', -1, 64)
	}
	query, errs := validation.ParseGST(form)
	if !errs.Valid() {
		s.rejected(KindGST, errs)
		return GSTOutcome{}, errs
	}

	result := query.GST()
	label, value := history.GSTSummary(s.symbol, query, result)
	entry := s.record(KindGST, label, value)

	return GSTOutcome{
		Calculation: newCalculation(KindGST, output.GSTRows(s.symbol, query.Mode, result), entry),
		Query:       query,
		Result:      result,
	}, errs
}

// Currency validates the form and, when it is valid, converts the amount.
// The error is only non-nil if the table rejects a code that passed
// validation.
func (s *Service) Currency(form validation.CurrencyForm) (CurrencyOutcome, validation.Errors, error) {
	query, errs := validation.ParseCurrency(form, s.table)
	if !errs.Valid() {
		s.rejected(KindCurrency, errs)
		return CurrencyOutcome{}, errs, nil
	}

	result, err := query.Convert(s.table)
	if err != nil {
		s.recorder.ObserveCalculation(string(KindCurrency), OutcomeError)
		s.logger.Error("currency conversion failed",
			zap.String("op", "service.currency"),
			zap.String("from", query.From),
			zap.String("to", query.To),
			zap.Error(err),
		)
		return CurrencyOutcome{}, errs, fmt.Errorf("failed to convert %s to %s: %w", query.From, query.To, err)
	}

	fromSymbol, toSymbol := s.table.Symbol(result.From), s.table.Symbol(result.To)
	label, value := history.CurrencySummary(fromSymbol, toSymbol, result)
	entry := s.record(KindCurrency, label, value)

	return CurrencyOutcome{
		Calculation: newCalculation(KindCurrency, output.CurrencyRows(fromSymbol, toSymbol, result), entry),
		Query:       query,
		Result:      result,
	}, errs, nil
}

// BMI validates the form and, when it is valid, computes the index.
func (s *Service) BMI(form validation.BMIForm) (BMIOutcome, validation.Errors) {
	query, errs := validation.ParseBMI(form)
	if !errs.Valid() {
		s.rejected(KindBMI, errs)
		return BMIOutcome{}, errs
	}

	result := query.BMI()

	// The history shows the measurements as entered, not the metric ones.
	weight, height, imperial := form.Entered()
	label, value := history.BMISummary(weight, height, imperial, result)
	entry := s.record(KindBMI, label, value)

	return BMIOutcome{
		Calculation: newCalculation(KindBMI, output.BMIRows(result), entry),
		Query:       query,
		Result:      result,
	}, errs
}
