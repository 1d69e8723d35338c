// Package config defines the data structures related to configuration and
// includes functions for loading the calculator configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/currency"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for finance-calculator.
type Configuration struct {
	Logging    LoggingConfig        `yaml:"logging,omitempty"`
	Output     OutputConfig         `yaml:"output,omitempty"`
	Display    DisplayConfig        `yaml:"display,omitempty"`
	Currencies []currency.Currency  `yaml:"currencies,omitempty"`
	GSTRates   []calculator.GSTRate `yaml:"gstRates,omitempty" mapstructure:"gstRates"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// DisplayConfig holds presentation options shared by the front-ends.
type DisplayConfig struct {
	// CurrencySymbol prefixes loan and GST amounts.
	CurrencySymbol string `yaml:"currencySymbol,omitempty" mapstructure:"currencySymbol"`
}

// DefaultCurrencySymbol is used for loan and GST amounts when none is configured.
const DefaultCurrencySymbol = "₹"

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Display: DisplayConfig{CurrencySymbol: DefaultCurrencySymbol},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register the keys so environment overrides reach Unmarshal.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("display.currencySymbol", DefaultCurrencySymbol)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults (plus any
// environment overrides).
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return decode(v)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads the YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if configuration.Display.CurrencySymbol == "" {
		configuration.Display.CurrencySymbol = DefaultCurrencySymbol
	}
	return &configuration, nil
}

// CurrencyTable returns the built-in table with the configured currencies
// applied on top.
func (c *Configuration) CurrencyTable() (*currency.Table, error) {
	if len(c.Currencies) == 0 {
		return currency.Default(), nil
	}
	table, err := currency.Default().WithOverrides(c.Currencies)
	if err != nil {
		return nil, fmt.Errorf("invalid currencies: %w", err)
	}
	return table, nil
}

// GSTSlabs returns the configured GST slabs, skipping negative rates, or the
// standard slabs when none are configured.
func (c *Configuration) GSTSlabs() []calculator.GSTRate {
	slabs := make([]calculator.GSTRate, 0, len(c.GSTRates))
	for _, rate := range c.GSTRates {
		if rate.Percent < 0 {
			continue
		}
		if rate.Label == "" {
			rate.Label = fmt.Sprintf("%v%% GST", rate.Percent)
		}
		slabs = append(slabs, rate)
	}
	if len(slabs) == 0 {
		return append([]calculator.GSTRate(nil), calculator.StandardGSTRates...)
	}
	return slabs
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		warnings = append(warnings, err.Error())
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		warnings = append(warnings, fmt.Sprintf("invalid log format: %s", c.Logging.Format))
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	seen := make(map[float64]bool)
	for _, rate := range c.GSTRates {
		if rate.Percent < 0 {
			warnings = append(warnings, fmt.Sprintf("GST rate %v is negative and will be ignored", rate.Percent))
			continue
		}
		if seen[rate.Percent] {
			warnings = append(warnings, fmt.Sprintf("GST rate %v is listed more than once", rate.Percent))
		}
		seen[rate.Percent] = true
	}

	for _, cur := range c.Currencies {
		if !currency.Default().Has(cur.Code) && cur.RateToUSD == 0 {
			warnings = append(warnings, fmt.Sprintf("currency %s has no rate", currency.NormalizeCode(cur.Code)))
		}
	}

	return warnings
}
