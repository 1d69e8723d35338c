package validation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/currency"
)

// Form field names used as keys in Errors.
const (
	FieldPrincipal    = "principal"
	FieldInterestRate = "interestRate"
	FieldTenure       = "tenure"
	FieldTenureUnit   = "tenureUnit"
	FieldAmount       = "amount"
	FieldGSTRate      = "gstRate"
	FieldMode         = "mode"
	FieldCurrency     = "currency"
	FieldWeight       = "weight"
	FieldHeight       = "height"
	FieldUnit         = "unit"
)

// Unit systems accepted by the BMI form.
const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

// Errors maps a form field to a human-readable message. An empty set means
// the form is valid.
type Errors map[string]string

// Valid reports whether no field failed validation.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// String renders the errors as "field: message" pairs in field order.
func (e Errors) String() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// EMIForm is the raw input of the loan calculator.
type EMIForm struct {
	Principal    string `json:"principal"`
	InterestRate string `json:"interestRate"`
	Tenure       string `json:"tenure"`
	TenureUnit   string `json:"tenureUnit"`
}

// GSTForm is the raw input of the GST calculator. An empty rate selects
// the default slab and an empty mode adds GST.
type GSTForm struct {
	Amount string `json:"amount"`
	Rate   string `json:"gstRate"`
	Mode   string `json:"mode"`
}

// CurrencyForm is the raw input of the currency converter.
type CurrencyForm struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// BMIForm is the raw input of the BMI calculator. Imperial forms carry
// pounds and inches.
type BMIForm struct {
	Weight string `json:"weight"`
	Height string `json:"height"`
	Unit   string `json:"unit"`
}

// ValidateEMI checks a loan form.
func ValidateEMI(form EMIForm) Errors {
	errs := Errors{}

	if v, ok := parseNumber(form.Principal); !ok || v <= 0 || v > constants.MaxAmount {
		errs[FieldPrincipal] = "Please enter a valid principal amount"
	}
	if v, ok := parseNumber(form.InterestRate); !ok || v < 0 || v > constants.MaxInterestRatePercent {
		errs[FieldInterestRate] = "Please enter a valid interest rate"
	}
	unit, err := calculator.ParseTenureUnit(form.TenureUnit)
	if err != nil {
		errs[FieldTenureUnit] = "Please select months or years"
	}
	if v, ok := parseInteger(form.Tenure); !ok || v <= 0 || !withinTenureLimit(v, unit) {
		errs[FieldTenure] = "Please enter a valid tenure"
	}

	return errs
}

// withinTenureLimit compares in the entered unit so the conversion to
// months cannot overflow.
func withinTenureLimit(tenure int, unit calculator.TenureUnit) bool {
	if unit == calculator.TenureYears {
		return tenure <= constants.MaxTenureMonths/constants.MonthsPerYear
	}
	return tenure <= constants.MaxTenureMonths
}

// ParseEMI validates a loan form and converts it to loan terms with the
// tenure expressed in months.
func ParseEMI(form EMIForm) (calculator.LoanTerms, Errors) {
	errs := ValidateEMI(form)
	if !errs.Valid() {
		return calculator.LoanTerms{}, errs
	}

	principal, _ := parseNumber(form.Principal)
	rate, _ := parseNumber(form.InterestRate)
	tenure, _ := parseInteger(form.Tenure)
	unit, _ := calculator.ParseTenureUnit(form.TenureUnit)

	return calculator.LoanTerms{
		Principal:         principal,
		AnnualRatePercent: rate,
		TenureMonths:      calculator.TenureToMonths(tenure, unit),
	}, errs
}

// ValidateGST checks a GST form.
func ValidateGST(form GSTForm) Errors {
	errs := Errors{}

	if v, ok := parseNumber(form.Amount); !ok || v <= 0 || v > constants.MaxAmount {
		errs[FieldAmount] = "Please enter a valid amount"
	}
	if strings.TrimSpace(form.Rate) != "" {
		if v, ok := parseNumber(form.Rate); !ok || v < 0 || v > constants.MaxGSTRatePercent {
			errs[FieldGSTRate] = "Please select a valid GST rate"
		}
	}
	if _, err := calculator.ParseGSTMode(form.Mode); err != nil {
		errs[FieldMode] = "Please choose to add or extract GST"
	}

	return errs
}

// ParseGST validates a GST form and converts it to a query.
func ParseGST(form GSTForm) (calculator.GSTQuery, Errors) {
	errs := ValidateGST(form)
	if !errs.Valid() {
		return calculator.GSTQuery{}, errs
	}

	amount, _ := parseNumber(form.Amount)
	rate := constants.DefaultGSTRate
	if strings.TrimSpace(form.Rate) != "" {
		rate, _ = parseNumber(form.Rate)
	}
	mode, _ := calculator.ParseGSTMode(form.Mode)

	return calculator.GSTQuery{Amount: amount, RatePercent: rate, Mode: mode}, errs
}

// ValidateCurrency checks a conversion form against table. A nil table
// means the built-in one.
func ValidateCurrency(form CurrencyForm, table *currency.Table) Errors {
	if table == nil {
		table = currency.Default()
	}
	errs := Errors{}

	amount, ok := parseNumber(form.Amount)
	if !ok || amount <= 0 || amount > constants.MaxAmount {
		errs[FieldAmount] = "Please enter a valid amount"
	}

	from := currency.NormalizeCode(form.From)
	to := currency.NormalizeCode(form.To)
	switch {
	case from == "" || to == "":
		errs[FieldCurrency] = "Please select both currencies"
	case !table.Has(from):
		errs[FieldCurrency] = fmt.Sprintf("Unsupported currency: %s", from)
	case !table.Has(to):
		errs[FieldCurrency] = fmt.Sprintf("Unsupported currency: %s", to)
	case from == to:
		errs[FieldCurrency] = "Please select different currencies"
	}

	// Configured rates may be extreme enough to overflow the conversion.
	if errs.Valid() {
		fromRate, _ := table.Rate(from)
		toRate, _ := table.Rate(to)
		if !finite(amount / fromRate * toRate) {
			errs[FieldAmount] = "Please enter a valid amount"
		}
	}

	return errs
}

// ParseCurrency validates a conversion form and converts it to a query
// with normalized codes.
func ParseCurrency(form CurrencyForm, table *currency.Table) (calculator.CurrencyQuery, Errors) {
	errs := ValidateCurrency(form, table)
	if !errs.Valid() {
		return calculator.CurrencyQuery{}, errs
	}

	amount, _ := parseNumber(form.Amount)
	return calculator.CurrencyQuery{
		Amount: amount,
		From:   currency.NormalizeCode(form.From),
		To:     currency.NormalizeCode(form.To),
	}, errs
}

// ValidateBMI checks a BMI form. Metric values above the plausibility
// limits are flagged as likely typos.
func ValidateBMI(form BMIForm) Errors {
	errs := Errors{}

	unit, unitOK := parseUnit(form.Unit)
	if !unitOK {
		errs[FieldUnit] = "Please select metric or imperial units"
	}

	weight, ok := parseNumber(form.Weight)
	if !ok || weight <= 0 {
		errs[FieldWeight] = "Please enter a valid weight"
	}
	height, ok := parseNumber(form.Height)
	if !ok || height <= 0 {
		errs[FieldHeight] = "Please enter a valid height"
	}

	if unit == UnitMetric {
		if weight > constants.MaxPlausibleWeightKg {
			errs[FieldWeight] = "Weight seems too high. Please check your input."
		}
		if height > constants.MaxPlausibleHeightCm {
			errs[FieldHeight] = "Height seems too high. Please check your input."
		}
	}

	// A vanishing height squares to zero and the index overflows.
	if errs.Valid() {
		if unit == UnitImperial {
			weight, height = calculator.ImperialToMetric(weight, height)
		}
		if !finite(calculator.ComputeBMI(weight, height).BMI) {
			errs[FieldHeight] = "Please enter a valid height"
		}
	}

	return errs
}

// ParseBMI validates a BMI form and converts it to a metric query.
func ParseBMI(form BMIForm) (calculator.BMIQuery, Errors) {
	errs := ValidateBMI(form)
	if !errs.Valid() {
		return calculator.BMIQuery{}, errs
	}

	weight, _ := parseNumber(form.Weight)
	height, _ := parseNumber(form.Height)
	if unit, _ := parseUnit(form.Unit); unit == UnitImperial {
		weight, height = calculator.ImperialToMetric(weight, height)
	}

	return calculator.BMIQuery{WeightKg: weight, HeightCm: height}, errs
}

// IsImperial reports whether the form carries imperial measurements.
func (f BMIForm) IsImperial() bool {
	unit, _ := parseUnit(f.Unit)
	return unit == UnitImperial
}

// Entered returns the measurements as typed, before any unit conversion.
// Unparsable values come back as zero.
func (f BMIForm) Entered() (weight, height float64, imperial bool) {
	weight, _ = parseNumber(f.Weight)
	height, _ = parseNumber(f.Height)
	return weight, height, f.IsImperial()
}

func parseUnit(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", UnitMetric:
		return UnitMetric, true
	case UnitImperial:
		return UnitImperial, true
	}
	return "", false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func parseNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

func parseInteger(s string) (int, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return v, true
}
