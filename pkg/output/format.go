package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders report in the named format.
func Write(w io.Writer, outputFormat string, report Report) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	default:
		return PrettyFormat(w, report)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report Report) error {
	width := len("Result")
	for _, row := range report.Rows {
		if n := len([]rune(row.Label)); n > width {
			width = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", report.Title)
	fmt.Fprintf(&b, "%-*s | Value\n", width, "Result")
	fmt.Fprintf(&b, "%s | _____\n", strings.Repeat("_", width))
	for _, row := range report.Rows {
		fmt.Fprintf(&b, "%s | %s\n", padRight(row.Label, width), row.Value)
	}
	if report.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", report.Summary)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "value"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := cw.Write([]string{row.Label, row.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteCurrencies renders a currency table in the named format.
func WriteCurrencies(w io.Writer, outputFormat string, table *currency.Table) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvCurrencies(w, table)
	case constants.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table.Currencies())
	default:
		return PrettyCurrencies(w, table)
	}
}

// CsvCurrencies outputs one record per currency with the unrounded rate.
func CsvCurrencies(w io.Writer, table *currency.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "symbol", "rateToUSD", "name"}); err != nil {
		return err
	}
	for _, c := range table.Currencies() {
		record := []string{c.Code, c.Symbol, strconv.FormatFloat(c.RateToUSD, 'f', -1, 64), c.Name}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettyCurrencies lists a currency table with rates against the pivot.
func PrettyCurrencies(w io.Writer, table *currency.Table) error {
	p := message.NewPrinter(language.English)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Supported currencies (per 1 %s) ---\n", constants.PivotCurrency)
	fmt.Fprintf(&b, "Code | Symbol | Rate       | Name\n")
	fmt.Fprintf(&b, "____ | ______ | __________ | ____\n")
	for _, c := range table.Currencies() {
		_, _ = p.Fprintf(&b, "%-4s | %-6s | %10.4f | %s\n", c.Code, c.Symbol, c.RateToUSD, c.Name)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
