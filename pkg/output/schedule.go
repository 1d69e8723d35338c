package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/format"
	"github.com/iwvelando/finance-calculator/pkg/loans"
)

// WriteSchedule renders an amortization schedule in the named format.
func WriteSchedule(w io.Writer, outputFormat, symbol string, schedule []loans.Payment) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return ScheduleCsvFormat(w, schedule)
	case constants.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schedule)
	default:
		return SchedulePrettyFormat(w, symbol, schedule)
	}
}

// SchedulePrettyFormat prints one aligned line per installment.
func SchedulePrettyFormat(w io.Writer, symbol string, schedule []loans.Payment) error {
	var b strings.Builder
	b.WriteString("--- Amortization Schedule ---\n")
	b.WriteString("Month | EMI            | Principal      | Interest       | Balance\n")
	b.WriteString("_____ | ______________ | ______________ | ______________ | _______\n")
	for _, p := range schedule {
		fmt.Fprintf(&b, "%5d | %s | %s | %s | %s\n",
			p.Month,
			padRight(format.Currency(p.Payment, symbol), 14),
			padRight(format.Currency(p.Principal, symbol), 14),
			padRight(format.Currency(p.Interest, symbol), 14),
			format.Currency(p.RemainingPrincipal, symbol),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ScheduleCsvFormat outputs the schedule with plain two-decimal amounts.
func ScheduleCsvFormat(w io.Writer, schedule []loans.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "payment", "principal", "interest", "balance"}); err != nil {
		return err
	}
	for _, p := range schedule {
		record := []string{
			fmt.Sprintf("%d", p.Month),
			fmt.Sprintf("%.2f", p.Payment),
			fmt.Sprintf("%.2f", p.Principal),
			fmt.Sprintf("%.2f", p.Interest),
			fmt.Sprintf("%.2f", p.RemainingPrincipal),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
