package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/currency"
	"github.com/iwvelando/finance-calculator/pkg/testutil"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"go.uber.org/zap"
)

type countingRecorder struct {
	counts map[string]int
}

func (r *countingRecorder) ObserveCalculation(calc, outcome string) {
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[calc+"/"+outcome]++
}

func newTestService(t *testing.T) (*Service, *countingRecorder) {
	t.Helper()
	recorder := &countingRecorder{}
	return New(zap.NewNop(), Options{Recorder: recorder}), recorder
}

func TestEMI(t *testing.T) {
	svc, recorder := newTestService(t)

	outcome, errs := svc.EMI(validation.EMIForm{Principal: "100000", InterestRate: "10", Tenure: "1", TenureUnit: "years"})
	if !errs.Valid() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}

	if outcome.Terms.TenureMonths != 12 {
		t.Errorf("expected 12 months, got %d", outcome.Terms.TenureMonths)
	}
	if outcome.Report.Rows[0].Value != "₹8,791.59" {
		t.Errorf("unexpected EMI row: %+v", outcome.Report.Rows[0])
	}
	if outcome.Entry.Label != "₹100,000 @ 10% for 1 years" {
		t.Errorf("unexpected history label: %q", outcome.Entry.Label)
	}
	if outcome.Report.Title != "Loan / EMI Calculator" {
		t.Errorf("unexpected title: %q", outcome.Report.Title)
	}
	if recorder.counts["emi/success"] != 1 {
		t.Errorf("expected one recorded success, got %v", recorder.counts)
	}

	entries, err := svc.History(KindEMI)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	found := testutil.FindEntry(entries, "₹100,000")
	if found == nil || found.ID != outcome.Entry.ID {
		t.Errorf("expected the calculation in history, got %+v", entries)
	}
}

func TestEMISchedule(t *testing.T) {
	svc, _ := newTestService(t)

	outcome, errs, err := svc.EMISchedule(validation.EMIForm{Principal: "240000", InterestRate: "6", Tenure: "30", TenureUnit: "years"})
	if err != nil {
		t.Fatalf("EMISchedule() error = %v", err)
	}
	if !errs.Valid() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if len(outcome.Schedule) != 360 {
		t.Fatalf("expected 360 payments, got %d", len(outcome.Schedule))
	}
	if outcome.Schedule[359].RemainingPrincipal != 0 {
		t.Errorf("expected the loan to be repaid")
	}

	entries, _ := svc.History(KindEMI)
	if len(entries) != 0 {
		t.Errorf("schedules must not be recorded, got %d entries", len(entries))
	}

	_, errs, err = svc.EMISchedule(validation.EMIForm{Principal: "abc", InterestRate: "6", Tenure: "12"})
	if err != nil || errs.Valid() {
		t.Errorf("expected validation errors only, got errs=%v err=%v", errs, err)
	}
}

func TestInvalidFormSkipsCalculationAndHistory(t *testing.T) {
	svc, recorder := newTestService(t)

	outcome, errs := svc.EMI(validation.EMIForm{Principal: "0", InterestRate: "10", Tenure: "12"})
	if errs.Valid() {
		t.Fatal("expected validation errors")
	}
	if _, ok := errs[validation.FieldPrincipal]; !ok {
		t.Errorf("expected principal error, got %v", errs)
	}
	if outcome.Result != (calculator.EMIResult{}) {
		t.Errorf("expected empty result, got %+v", outcome.Result)
	}

	entries, _ := svc.History(KindEMI)
	if len(entries) != 0 {
		t.Errorf("invalid input must not reach history, got %+v", entries)
	}
	if recorder.counts["emi/invalid"] != 1 {
		t.Errorf("expected one recorded rejection, got %v", recorder.counts)
	}
}

func TestGST(t *testing.T) {
	svc, _ := newTestService(t)

	outcome, errs := svc.GST(validation.GSTForm{Amount: "1000", Rate: "18", Mode: "add"})
	if !errs.Valid() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if outcome.Result.FinalAmount != 1180 {
		t.Errorf("expected final amount 1180, got %v", outcome.Result.FinalAmount)
	}
	if outcome.Entry.Value != "GST: ₹180.00" {
		t.Errorf("unexpected history value: %q", outcome.Entry.Value)
	}

	_, errs = svc.GST(validation.GSTForm{Amount: ""})
	if errs[validation.FieldAmount] == "" {
		t.Errorf("expected amount error, got %v", errs)
	}
}

func TestDefaultGSTRate(t *testing.T) {
	svc, _ := newTestService(t)
	if got := svc.DefaultGSTRate(); got != constants.DefaultGSTRate {
		t.Errorf("DefaultGSTRate() = %v, expected %v", got, constants.DefaultGSTRate)
	}

	custom := New(zap.NewNop(), Options{GSTRates: []calculator.GSTRate{{Percent: 5}, {Percent: 15}, {Percent: 0}}})
	if got := custom.DefaultGSTRate(); got != 15 {
		t.Errorf("DefaultGSTRate() = %v, expected the highest slab 15", got)
	}

	outcome, errs := custom.GST(validation.GSTForm{Amount: "200"})
	if !errs.Valid() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if outcome.Query.RatePercent != 15 || outcome.Result.GSTAmount != 30 {
		t.Errorf("expected the 15%% slab to apply, got %+v", outcome.Query)
	}
}

func TestEMIRejectsOversizedTenure(t *testing.T) {
	svc, _ := newTestService(t)

	_, errs, err := svc.EMISchedule(validation.EMIForm{Principal: "1000", InterestRate: "5", Tenure: "20000000"})
	if err != nil {
		t.Fatalf("EMISchedule() error = %v", err)
	}
	if errs[validation.FieldTenure] != "Please enter a valid tenure" {
		t.Errorf("expected tenure error, got %v", errs)
	}
}

func TestCurrency(t *testing.T) {
	svc, _ := newTestService(t)

	outcome, errs, err := svc.Currency(validation.CurrencyForm{Amount: "100", From: "usd", To: "inr"})
	if err != nil {
		t.Fatalf("Currency() error = %v", err)
	}
	if !errs.Valid() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if outcome.Entry.Label != "$100.00 USD" || outcome.Entry.Value != "₹8,312.00 INR" {
		t.Errorf("unexpected history entry: %+v", outcome.Entry)
	}

	_, errs, err = svc.Currency(validation.CurrencyForm{Amount: "100", From: "USD", To: "USD"})
	if err != nil {
		t.Fatalf("Currency() error = %v", err)
	}
	if errs[validation.FieldCurrency] != "Please select different currencies" {
		t.Errorf("expected same-currency error, got %v", errs)
	}
}

func TestBMIHistoryUsesEnteredUnits(t *testing.T) {
	svc, _ := newTestService(t)

	outcome, errs := svc.BMI(validation.BMIForm{Weight: "154", Height: "69", Unit: "imperial"})
	if !errs.Valid() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if !strings.HasPrefix(outcome.Entry.Label, "154 lb, 69 in") {
		t.Errorf("unexpected history label: %q", outcome.Entry.Label)
	}
	if outcome.Result.Category != calculator.Normal {
		t.Errorf("expected Normal, got %s", outcome.Result.Category)
	}
}

func TestHistoryIsCappedPerCalculator(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 1; i <= 15; i++ {
		svc.BMI(validation.BMIForm{Weight: fmt.Sprint(50 + i), Height: "170"})
	}
	svc.GST(validation.GSTForm{Amount: "10"})

	bmi, _ := svc.History(KindBMI)
	if len(bmi) != constants.MaxHistoryEntries {
		t.Fatalf("expected %d BMI entries, got %d", constants.MaxHistoryEntries, len(bmi))
	}
	if !strings.HasPrefix(bmi[0].Label, "65 kg") {
		t.Errorf("expected newest entry first, got %q", bmi[0].Label)
	}

	gst, _ := svc.History(KindGST)
	if len(gst) != 1 {
		t.Errorf("expected one GST entry, got %d", len(gst))
	}

	if err := svc.ClearHistory(KindBMI); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	bmi, _ = svc.History(KindBMI)
	if len(bmi) != 0 {
		t.Errorf("expected BMI history to be cleared, got %d", len(bmi))
	}
	gst, _ = svc.History(KindGST)
	if len(gst) != 1 {
		t.Errorf("clearing BMI must not touch GST history")
	}
}

func TestHistoryUnknownKind(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.History("mortgage"); err == nil {
		t.Error("expected error for unknown calculator")
	}
	if err := svc.ClearHistory("mortgage"); err == nil {
		t.Error("expected error for unknown calculator")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(strings.ToUpper(string(k)))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("loan"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestNewFromConfig(t *testing.T) {
	conf := config.Default()
	conf.Display.CurrencySymbol = "$"
	conf.Currencies = []currency.Currency{{Code: "NZD", RateToUSD: 1.65, Symbol: "NZ$"}}
	conf.GSTRates = []calculator.GSTRate{{Percent: 10, Label: "10% GST"}}

	svc, err := NewFromConfig(zap.NewNop(), conf, nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if !svc.CurrencyTable().Has("NZD") {
		t.Error("expected configured currency")
	}
	if rates := svc.GSTRates(); len(rates) != 1 || rates[0].Percent != 10 {
		t.Errorf("unexpected GST rates: %+v", rates)
	}

	outcome, _ := svc.EMI(validation.EMIForm{Principal: "1200", InterestRate: "0", Tenure: "12"})
	if outcome.Report.Rows[0].Value != "$100.00" {
		t.Errorf("expected configured symbol, got %q", outcome.Report.Rows[0].Value)
	}

	conf.Currencies = []currency.Currency{{Code: "XAU", RateToUSD: -1}}
	if _, err := NewFromConfig(zap.NewNop(), conf, nil); err == nil {
		t.Error("expected error for invalid currency table")
	}
}
