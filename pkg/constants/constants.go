// Package constants provides shared constants for the finance-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyDecimals is the number of decimals shown for currency amounts
	CurrencyDecimals = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// PivotCurrency is the reference currency every rate is quoted against
	PivotCurrency = "USD"

	// DefaultGSTRate is the GST slab preselected when no rate is supplied
	DefaultGSTRate = 18.0

	// MaxTenureMonths caps loan tenures at 100 years
	MaxTenureMonths = 1200

	// MaxAmount caps principal and amount inputs (one quadrillion)
	MaxAmount = 1e15

	// MaxInterestRatePercent caps the annual interest rate
	MaxInterestRatePercent = 1000.0

	// MaxGSTRatePercent caps the GST rate
	MaxGSTRatePercent = 100.0
)

// Health constants
const (
	// CentimetresPerMetre converts heights in centimetres to metres
	CentimetresPerMetre = 100.0

	// KilogramsPerPound converts imperial weights to kilograms
	KilogramsPerPound = 0.453592

	// CentimetresPerInch converts imperial heights to centimetres
	CentimetresPerInch = 2.54

	// BMIUnderweightLimit is the lower bound of the normal BMI range
	BMIUnderweightLimit = 18.5

	// BMINormalLimit is the lower bound of the overweight BMI range
	BMINormalLimit = 25.0

	// BMIOverweightLimit is the lower bound of the obese BMI range
	BMIOverweightLimit = 30.0

	// MaxPlausibleWeightKg flags metric weights that are likely typos
	MaxPlausibleWeightKg = 500.0

	// MaxPlausibleHeightCm flags metric heights that are likely typos
	MaxPlausibleHeightCm = 300.0
)

// History constants
const (
	// MaxHistoryEntries is the number of calculations kept per calculator
	MaxHistoryEntries = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix namespaces environment overrides (e.g. FINCALC_LOGGING_LEVEL)
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// RequestIDHeader carries the per-request correlation ID
	RequestIDHeader = "X-Request-ID"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
