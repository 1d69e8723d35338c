// Package service wires validation, calculation and history together for
// the command line and HTTP front-ends.
package service

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/currency"
	"github.com/iwvelando/finance-calculator/pkg/history"
	"github.com/iwvelando/finance-calculator/pkg/loans"
	"github.com/iwvelando/finance-calculator/pkg/output"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"go.uber.org/zap"
)

// Kind names a calculator.
type Kind string

const (
	KindEMI      Kind = "emi"
	KindGST      Kind = "gst"
	KindCurrency Kind = "currency"
	KindBMI      Kind = "bmi"
)

// Kinds lists every calculator.
func Kinds() []Kind {
	return []Kind{KindEMI, KindGST, KindCurrency, KindBMI}
}

// ParseKind resolves a calculator name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown calculator %q", s)
}

// Title returns the display title of the calculator.
func (k Kind) Title() string {
	switch k {
	case KindEMI:
		return "Loan / EMI Calculator"
	case KindGST:
		return "GST / Tax Calculator"
	case KindCurrency:
		return "Currency Converter"
	case KindBMI:
		return "BMI Calculator"
	}
	return string(k)
}

// Recorder receives one observation per calculation request.
type Recorder interface {
	ObserveCalculation(calculator, outcome string)
}

// Outcomes passed to a Recorder.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveCalculation(string, string) {}

// Options configures a Service.
type Options struct {
	Currencies     *currency.Table
	GSTRates       []calculator.GSTRate
	CurrencySymbol string
	Recorder       Recorder
}

// Service runs calculations and keeps one history per calculator.
type Service struct {
	logger    *zap.Logger
	table     *currency.Table
	gstRates  []calculator.GSTRate
	symbol    string
	recorder  Recorder
	schedules *loans.ScheduleGenerator
	histories map[Kind]*history.List
}

// New constructs a Service. Zero-valued options fall back to the built-in
// currency table, the standard GST slabs and the rupee symbol.
func New(logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Currencies == nil {
		opts.Currencies = currency.Default()
	}
	if len(opts.GSTRates) == 0 {
		opts.GSTRates = calculator.StandardGSTRates
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = config.DefaultCurrencySymbol
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	histories := make(map[Kind]*history.List, len(Kinds()))
	for _, k := range Kinds() {
		histories[k] = history.New(0)
	}

	return &Service{
		logger:    logger,
		table:     opts.Currencies,
		gstRates:  append([]calculator.GSTRate(nil), opts.GSTRates...),
		symbol:    opts.CurrencySymbol,
		recorder:  opts.Recorder,
		schedules: loans.NewScheduleGenerator(logger),
		histories: histories,
	}
}

// NewFromConfig constructs a Service from a loaded configuration.
func NewFromConfig(logger *zap.Logger, conf *config.Configuration, recorder Recorder) (*Service, error) {
	table, err := conf.CurrencyTable()
	if err != nil {
		return nil, err
	}
	return New(logger, Options{
		Currencies:     table,
		GSTRates:       conf.GSTSlabs(),
		CurrencySymbol: conf.Display.CurrencySymbol,
		Recorder:       recorder,
	}), nil
}

// Currencies returns the supported currencies in declaration order.
func (s *Service) Currencies() []currency.Currency {
	return s.table.Currencies()
}

// CurrencyTable returns the table conversions run against.
func (s *Service) CurrencyTable() *currency.Table {
	return s.table
}

// CurrencySymbol returns the symbol used for loan and GST amounts.
func (s *Service) CurrencySymbol() string {
	return s.symbol
}

// GSTRates returns the selectable GST slabs.
func (s *Service) GSTRates() []calculator.GSTRate {
	return append([]calculator.GSTRate(nil), s.gstRates...)
}

// DefaultGSTRate returns the slab used when a form leaves the rate empty:
// 18% when it is offered, otherwise the highest configured slab.
func (s *Service) DefaultGSTRate() float64 {
	highest := s.gstRates[0].Percent
	for _, rate := range s.gstRates {
		if rate.Percent == constants.DefaultGSTRate {
			return rate.Percent
		}
		if rate.Percent > highest {
			highest = rate.Percent
		}
	}
	return highest
}

// History returns the entries of a calculator, newest first.
func (s *Service) History(kind Kind) ([]history.Entry, error) {
	list, ok := s.histories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown calculator %q", kind)
	}
	return list.Entries(), nil
}

// ClearHistory empties the history of a calculator.
func (s *Service) ClearHistory(kind Kind) error {
	list, ok := s.histories[kind]
	if !ok {
		return fmt.Errorf("unknown calculator %q", kind)
	}
	list.Clear()
	s.logger.Debug("history cleared",
		zap.String("op", "service.ClearHistory"),
		zap.String("calculator", string(kind)),
	)
	return nil
}

func (s *Service) rejected(kind Kind, errs validation.Errors) {
	s.recorder.ObserveCalculation(string(kind), OutcomeInvalid)
	s.logger.Debug("validation failed",
		zap.String("op", "service."+string(kind)),
		zap.Strings("fields", errs.Fields()),
	)
}

func (s *Service) record(kind Kind, label, value string) history.Entry {
	entry := s.histories[kind].Add(label, value)
	s.recorder.ObserveCalculation(string(kind), OutcomeSuccess)
	s.logger.Info("calculation completed",
		zap.String("op", "service."+string(kind)),
		zap.String("label", label),
		zap.String("value", value),
	)
	return entry
}

// Calculation is the shared part of every calculator outcome.
type Calculation struct {
	Report output.Report `json:"report"`
	Entry  history.Entry `json:"history"`
}

func newCalculation(kind Kind, rows []output.Row, entry history.Entry) Calculation {
	return Calculation{
		Report: output.Report{
			Title:   kind.Title(),
			Rows:    rows,
			Summary: entry.Label + " => " + entry.Value,
		},
		Entry: entry,
	}
}
