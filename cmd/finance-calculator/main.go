package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/internal/logging"
	"github.com/iwvelando/finance-calculator/internal/service"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/output"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitInvalid = 2
)

const usage = `usage: finance-calculator [-config file] [-output-format pretty|csv|json] [-log-level level] <command> [flags]

commands:
  emi         loan installment (-principal -rate -tenure -tenure-unit [-schedule])
  gst         goods and services tax (-amount -rate -mode)
  currency    currency conversion (-amount -from -to)
  bmi         body mass index (-weight -height -unit)
  currencies  list supported currencies
`

func main() {
	// A missing .env is normal; anything in it only seeds FINCALC_* overrides.
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	svc          *service.Service
	logger       *zap.Logger
	outputFormat string
	symbol       string
	stdout       io.Writer
	stderr       io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("finance-calculator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return exitInvalid
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitInvalid
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return exitError
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		return exitInvalid
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	svc, err := service.NewFromConfig(logger, conf, nil)
	if err != nil {
		logger.Error("failed to build calculator service",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return exitError
	}

	a := &app{
		svc:          svc,
		logger:       logger,
		outputFormat: outputFormat,
		symbol:       svc.CurrencySymbol(),
		stdout:       stdout,
		stderr:       stderr,
	}

	command, rest := flags.Arg(0), flags.Args()[1:]
	switch command {
	case "emi":
		return a.emi(rest)
	case "gst":
		return a.gst(rest)
	case "currency":
		return a.currency(rest)
	case "bmi":
		return a.bmi(rest)
	case "currencies":
		return a.currencies()
	}
	fmt.Fprintf(stderr, "unknown command %q\n", command)
	flags.Usage()
	return exitInvalid
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) emi(args []string) int {
	var form validation.EMIForm
	fs := a.newFlagSet("emi")
	fs.StringVar(&form.Principal, "principal", "", "loan amount")
	fs.StringVar(&form.InterestRate, "rate", "", "annual interest rate in percent")
	fs.StringVar(&form.Tenure, "tenure", "", "loan tenure")
	fs.StringVar(&form.TenureUnit, "tenure-unit", "months", "tenure unit: months, years")
	schedule := fs.Bool("schedule", false, "print the month-by-month amortization schedule instead")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	if *schedule {
		return a.emiSchedule(form)
	}
	outcome, errs := a.svc.EMI(form)
	return a.finish(outcome.Report, errs)
}

func (a *app) emiSchedule(form validation.EMIForm) int {
	outcome, errs, err := a.svc.EMISchedule(form)
	if err != nil {
		a.logger.Error("schedule failed",
			zap.String("op", "main.emiSchedule"),
			zap.Error(err),
		)
		return exitError
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return exitInvalid
	}
	return a.written(output.WriteSchedule(a.stdout, a.outputFormat, a.symbol, outcome.Schedule))
}

func (a *app) gst(args []string) int {
	var form validation.GSTForm
	fs := a.newFlagSet("gst")
	fs.StringVar(&form.Amount, "amount", "", "amount")
	fs.StringVar(&form.Rate, "rate", "", "GST rate in percent (default 18, or the highest configured slab)")
	fs.StringVar(&form.Mode, "mode", "add", "add GST to the amount or extract it: add, extract")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	outcome, errs := a.svc.GST(form)
	return a.finish(outcome.Report, errs)
}

func (a *app) currency(args []string) int {
	var form validation.CurrencyForm
	fs := a.newFlagSet("currency")
	fs.StringVar(&form.Amount, "amount", "", "amount to convert")
	fs.StringVar(&form.From, "from", constants.PivotCurrency, "source currency code")
	fs.StringVar(&form.To, "to", "INR", "target currency code")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	outcome, errs, err := a.svc.Currency(form)
	if err != nil {
		a.logger.Error("conversion failed",
			zap.String("op", "main.currency"),
			zap.Error(err),
		)
		return exitError
	}
	return a.finish(outcome.Report, errs)
}

func (a *app) bmi(args []string) int {
	var form validation.BMIForm
	fs := a.newFlagSet("bmi")
	fs.StringVar(&form.Weight, "weight", "", "weight in kg (lb when imperial)")
	fs.StringVar(&form.Height, "height", "", "height in cm (in when imperial)")
	fs.StringVar(&form.Unit, "unit", validation.UnitMetric, "unit system: metric, imperial")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	outcome, errs := a.svc.BMI(form)
	return a.finish(outcome.Report, errs)
}

func (a *app) currencies() int {
	return a.written(output.WriteCurrencies(a.stdout, a.outputFormat, a.svc.CurrencyTable()))
}

// finish prints validation errors field by field, or the report when the
// input was valid.
func (a *app) finish(report output.Report, errs validation.Errors) int {
	if !errs.Valid() {
		a.printErrors(errs)
		return exitInvalid
	}
	return a.written(output.Write(a.stdout, a.outputFormat, report))
}

func (a *app) printErrors(errs validation.Errors) {
	for _, field := range errs.Fields() {
		fmt.Fprintf(a.stderr, "%s: %s\n", field, errs[field])
	}
}

func (a *app) written(err error) int {
	if err == nil {
		return exitOK
	}
	a.logger.Error("failed to write output",
		zap.String("op", "main"),
		zap.Error(err),
	)
	return exitError
}
