package validation

import (
	"reflect"
	"testing"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/currency"
)

func TestValidateEMI(t *testing.T) {
	tests := []struct {
		name     string
		form     EMIForm
		expected Errors
	}{
		{
			name:     "Valid monthly loan",
			form:     EMIForm{Principal: "100000", InterestRate: "10", Tenure: "12"},
			expected: Errors{},
		},
		{
			name:     "Zero interest is allowed",
			form:     EMIForm{Principal: "5000", InterestRate: "0", Tenure: "5", TenureUnit: "years"},
			expected: Errors{},
		},
		{
			name: "All fields missing",
			form: EMIForm{},
			expected: Errors{
				FieldPrincipal:    "Please enter a valid principal amount",
				FieldInterestRate: "Please enter a valid interest rate",
				FieldTenure:       "Please enter a valid tenure",
			},
		},
		{
			name: "Non-positive principal and negative rate",
			form: EMIForm{Principal: "0", InterestRate: "-1", Tenure: "12"},
			expected: Errors{
				FieldPrincipal:    "Please enter a valid principal amount",
				FieldInterestRate: "Please enter a valid interest rate",
			},
		},
		{
			name:     "Fractional tenure is rejected",
			form:     EMIForm{Principal: "1000", InterestRate: "5", Tenure: "1.5"},
			expected: Errors{FieldTenure: "Please enter a valid tenure"},
		},
		{
			name:     "Garbage numbers are rejected",
			form:     EMIForm{Principal: "12abc", InterestRate: "5", Tenure: "12"},
			expected: Errors{FieldPrincipal: "Please enter a valid principal amount"},
		},
		{
			name:     "NaN is rejected",
			form:     EMIForm{Principal: "NaN", InterestRate: "5", Tenure: "12"},
			expected: Errors{FieldPrincipal: "Please enter a valid principal amount"},
		},
		{
			name:     "Tenure limit is inclusive",
			form:     EMIForm{Principal: "1000", InterestRate: "5", Tenure: "100", TenureUnit: "years"},
			expected: Errors{},
		},
		{
			name:     "Tenure over a hundred years",
			form:     EMIForm{Principal: "1000", InterestRate: "5", Tenure: "1201"},
			expected: Errors{FieldTenure: "Please enter a valid tenure"},
		},
		{
			name:     "Year count that would overflow in months",
			form:     EMIForm{Principal: "1000", InterestRate: "5", Tenure: "768614336404564651", TenureUnit: "years"},
			expected: Errors{FieldTenure: "Please enter a valid tenure"},
		},
		{
			name: "Huge principal and rate",
			form: EMIForm{Principal: "1e308", InterestRate: "1e6", Tenure: "12"},
			expected: Errors{
				FieldPrincipal:    "Please enter a valid principal amount",
				FieldInterestRate: "Please enter a valid interest rate",
			},
		},
		{
			name:     "Unknown tenure unit",
			form:     EMIForm{Principal: "1000", InterestRate: "5", Tenure: "12", TenureUnit: "weeks"},
			expected: Errors{FieldTenureUnit: "Please select months or years"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateEMI(tt.form)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ValidateEMI() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseEMIConvertsYears(t *testing.T) {
	terms, errs := ParseEMI(EMIForm{Principal: " 250000 ", InterestRate: "8.5", Tenure: "20", TenureUnit: "years"})
	if !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := calculator.LoanTerms{Principal: 250000, AnnualRatePercent: 8.5, TenureMonths: 240}
	if terms != expected {
		t.Errorf("ParseEMI() = %+v, expected %+v", terms, expected)
	}
}

func TestParseEMIInvalidReturnsZeroTerms(t *testing.T) {
	terms, errs := ParseEMI(EMIForm{Principal: "-5", InterestRate: "5", Tenure: "12"})
	if errs.Valid() {
		t.Fatal("expected validation errors")
	}
	if terms != (calculator.LoanTerms{}) {
		t.Errorf("expected zero terms, got %+v", terms)
	}
}

func TestValidateGST(t *testing.T) {
	tests := []struct {
		name     string
		form     GSTForm
		expected Errors
	}{
		{"Valid add", GSTForm{Amount: "1000", Rate: "18", Mode: "add"}, Errors{}},
		{"Valid subtract alias", GSTForm{Amount: "1180", Rate: "18", Mode: "subtract"}, Errors{}},
		{"Defaults", GSTForm{Amount: "1"}, Errors{}},
		{"Non-slab rate accepted", GSTForm{Amount: "1", Rate: "3"}, Errors{}},
		{"Missing amount", GSTForm{Rate: "5"}, Errors{FieldAmount: "Please enter a valid amount"}},
		{"Zero amount", GSTForm{Amount: "0"}, Errors{FieldAmount: "Please enter a valid amount"}},
		{"Negative rate", GSTForm{Amount: "10", Rate: "-5"}, Errors{FieldGSTRate: "Please select a valid GST rate"}},
		{"Huge amount", GSTForm{Amount: "1e308", Rate: "28"}, Errors{FieldAmount: "Please enter a valid amount"}},
		{"Rate above one hundred", GSTForm{Amount: "10", Rate: "101"}, Errors{FieldGSTRate: "Please select a valid GST rate"}},
		{"Bad mode", GSTForm{Amount: "10", Mode: "double"}, Errors{FieldMode: "Please choose to add or extract GST"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateGST(tt.form)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ValidateGST() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseGST(t *testing.T) {
	query, errs := ParseGST(GSTForm{Amount: "1000"})
	if !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := calculator.GSTQuery{Amount: 1000, RatePercent: 18, Mode: calculator.AddGST}
	if query != expected {
		t.Errorf("ParseGST() = %+v, expected %+v", query, expected)
	}

	query, errs = ParseGST(GSTForm{Amount: "1180", Rate: "0", Mode: "extract"})
	if !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if query.RatePercent != 0 || query.Mode != calculator.ExtractGST {
		t.Errorf("ParseGST() = %+v, expected zero rate extract", query)
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		name     string
		form     CurrencyForm
		expected Errors
	}{
		{"Valid", CurrencyForm{Amount: "100", From: "USD", To: "INR"}, Errors{}},
		{"Lowercase codes", CurrencyForm{Amount: "100", From: "usd", To: "eur"}, Errors{}},
		{"Same currency", CurrencyForm{Amount: "100", From: "USD", To: "usd"}, Errors{FieldCurrency: "Please select different currencies"}},
		{"Unknown target", CurrencyForm{Amount: "100", From: "USD", To: "XYZ"}, Errors{FieldCurrency: "Unsupported currency: XYZ"}},
		{"Unknown source", CurrencyForm{Amount: "100", From: "abc", To: "USD"}, Errors{FieldCurrency: "Unsupported currency: ABC"}},
		{"Huge amount", CurrencyForm{Amount: "1e308", From: "USD", To: "JPY"}, Errors{FieldAmount: "Please enter a valid amount"}},
		{"Missing code", CurrencyForm{Amount: "100", From: "USD"}, Errors{FieldCurrency: "Please select both currencies"}},
		{
			name: "Bad amount and same currency",
			form: CurrencyForm{Amount: "-1", From: "EUR", To: "EUR"},
			expected: Errors{
				FieldAmount:   "Please enter a valid amount",
				FieldCurrency: "Please select different currencies",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCurrency(tt.form, currency.Default())
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ValidateCurrency() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestValidateCurrencyCustomTable(t *testing.T) {
	table, err := currency.NewTable([]currency.Currency{{Code: "USD", RateToUSD: 1}, {Code: "NZD", RateToUSD: 1.65}})
	if err != nil {
		t.Fatalf("NewTable error = %v", err)
	}

	if errs := ValidateCurrency(CurrencyForm{Amount: "1", From: "USD", To: "NZD"}, table); !errs.Valid() {
		t.Errorf("expected NZD to be accepted, got %v", errs)
	}
	if errs := ValidateCurrency(CurrencyForm{Amount: "1", From: "USD", To: "INR"}, table); errs.Valid() {
		t.Error("expected INR to be rejected by a table without it")
	}
}

func TestValidateCurrencyOverflowingRate(t *testing.T) {
	table, err := currency.NewTable([]currency.Currency{{Code: "USD", RateToUSD: 1}, {Code: "ZZZ", RateToUSD: 1e300}})
	if err != nil {
		t.Fatalf("NewTable error = %v", err)
	}

	if errs := ValidateCurrency(CurrencyForm{Amount: "1000", From: "USD", To: "ZZZ"}, table); !errs.Valid() {
		t.Errorf("expected a finite conversion to be accepted, got %v", errs)
	}

	errs := ValidateCurrency(CurrencyForm{Amount: "1e15", From: "USD", To: "ZZZ"}, table)
	expected := Errors{FieldAmount: "Please enter a valid amount"}
	if !reflect.DeepEqual(errs, expected) {
		t.Errorf("ValidateCurrency() = %v, expected %v", errs, expected)
	}
}

func TestParseCurrency(t *testing.T) {
	query, errs := ParseCurrency(CurrencyForm{Amount: "100", From: " usd", To: "inr "}, nil)
	if !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := calculator.CurrencyQuery{Amount: 100, From: "USD", To: "INR"}
	if query != expected {
		t.Errorf("ParseCurrency() = %+v, expected %+v", query, expected)
	}
}

func TestValidateBMI(t *testing.T) {
	tests := []struct {
		name     string
		form     BMIForm
		expected Errors
	}{
		{"Valid metric", BMIForm{Weight: "70", Height: "175"}, Errors{}},
		{"Valid imperial", BMIForm{Weight: "154", Height: "69", Unit: "imperial"}, Errors{}},
		{"Imperial has no upper bound", BMIForm{Weight: "900", Height: "400", Unit: "imperial"}, Errors{}},
		{
			name: "Missing values",
			form: BMIForm{},
			expected: Errors{
				FieldWeight: "Please enter a valid weight",
				FieldHeight: "Please enter a valid height",
			},
		},
		{
			name: "Implausible metric values",
			form: BMIForm{Weight: "501", Height: "301", Unit: "metric"},
			expected: Errors{
				FieldWeight: "Weight seems too high. Please check your input.",
				FieldHeight: "Height seems too high. Please check your input.",
			},
		},
		{"Limits are inclusive", BMIForm{Weight: "500", Height: "300"}, Errors{}},
		{"Vanishing height", BMIForm{Weight: "70", Height: "1e-200"}, Errors{FieldHeight: "Please enter a valid height"}},
		{"Vanishing imperial height", BMIForm{Weight: "150", Height: "1e-170", Unit: "imperial"}, Errors{FieldHeight: "Please enter a valid height"}},
		{"Unknown unit", BMIForm{Weight: "70", Height: "175", Unit: "stone"}, Errors{FieldUnit: "Please select metric or imperial units"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateBMI(tt.form)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ValidateBMI() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseBMIConvertsImperial(t *testing.T) {
	form := BMIForm{Weight: "154", Height: "69", Unit: "Imperial"}
	query, errs := ParseBMI(form)
	if !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !form.IsImperial() {
		t.Error("expected imperial form")
	}

	weight, height, imperial := form.Entered()
	if weight != 154 || height != 69 || !imperial {
		t.Errorf("Entered() = %v, %v, %v", weight, height, imperial)
	}

	kg, cm := calculator.ImperialToMetric(154, 69)
	if query.WeightKg != kg || query.HeightCm != cm {
		t.Errorf("ParseBMI() = %+v, expected %v kg %v cm", query, kg, cm)
	}
}

func TestErrorsHelpers(t *testing.T) {
	errs := Errors{FieldTenure: "bad tenure", FieldAmount: "bad amount"}

	if errs.Valid() {
		t.Error("expected invalid")
	}
	if fields := errs.Fields(); !reflect.DeepEqual(fields, []string{FieldAmount, FieldTenure}) {
		t.Errorf("Fields() = %v", fields)
	}
	if s := errs.String(); s != "amount: bad amount; tenure: bad tenure" {
		t.Errorf("String() = %q", s)
	}
	if !(Errors{}).Valid() {
		t.Error("empty errors should be valid")
	}
}
