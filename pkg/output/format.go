// Package output provides utilities for formatting and displaying amortization
// schedules and scenario comparisons.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/mortgage-calculator/internal/comparison"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ScheduleCSVHeader lists the schedule export columns.
var ScheduleCSVHeader = []string{
	"Payment #",
	"Date",
	"Interest Rate",
	"Interest Due",
	"Payment Due",
	"Extra Payments",
	"Additional Payment",
	"Principal Paid",
	"Balance",
	"Year",
	"Tax Returned",
	"Cumulative Tax Returned",
	"PMI Active",
	"LTV",
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report Report) {
	_ = WritePretty(os.Stdout, report)
}

// WritePretty writes the human-readable report to w.
func WritePretty(w io.Writer, report Report) error {
	p := message.NewPrinter(language.English)
	for i, result := range report.Results {
		if err := writeResult(w, p, result); err != nil {
			return err
		}
		if i < len(report.Results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	if len(report.Results) > 1 {
		_, _ = fmt.Fprintf(w, "\n")
		if err := writeComparison(w, p, report.Results); err != nil {
			return err
		}
	}
	if report.Optimization != nil {
		_, _ = fmt.Fprintf(w, "\n")
		return writeOptimization(w, *report.Optimization)
	}
	return nil
}

func writeResult(w io.Writer, p *message.Printer, result comparison.Result) error {
	summary := result.Summary
	frequency := result.Parameters.Frequency
	if frequency == "" {
		frequency = mortgage.Monthly
	}

	_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
	_, _ = fmt.Fprintf(w, "Home value:           %s\n", format.CurrencyWhole(result.Inputs.HomeValue))
	_, _ = fmt.Fprintf(w, "Loan amount:          %s\n", format.Currency(result.LoanAmount))
	_, _ = fmt.Fprintf(w, "Rate and term:        %s over %d years, %s\n",
		format.Percent(result.Inputs.Rate, 3), result.Inputs.Term, frequency)
	_, _ = fmt.Fprintf(w, "Monthly P&I:          %s\n", format.Currency(result.MonthlyPayment))
	if frequency == mortgage.BiWeekly {
		_, _ = fmt.Fprintf(w, "Bi-weekly payment:    %s\n", format.Currency(summary.ScheduledPayment))
	}
	_, _ = fmt.Fprintf(w, "Monthly escrows:      %s\n", format.Currency(result.Escrows.Total()))
	_, _ = fmt.Fprintf(w, "Full monthly payment: %s\n", format.Currency(result.FullPayment))
	_, _ = fmt.Fprintf(w, "Total interest:       %s\n", format.Currency(summary.TotalInterest))
	_, _ = fmt.Fprintf(w, "Total paid:           %s\n", format.Currency(summary.TotalPaid))
	if summary.TotalExtra > 0 {
		_, _ = fmt.Fprintf(w, "Total extra:          %s\n", format.Currency(summary.TotalExtra))
	}
	if summary.TotalTaxReturned != 0 {
		_, _ = fmt.Fprintf(w, "Tax returned:         %s\n", format.Currency(summary.TotalTaxReturned))
	}
	_, _ = fmt.Fprintf(w, "Payments:             %d\n", summary.Payments)
	if summary.Payments > 0 {
		_, _ = fmt.Fprintf(w, "Payoff date:          %s (%.1f years)\n",
			datetime.FormatDate(summary.PayoffDate), summary.YearsToPayoff)
	}
	if result.Inputs.PMIMo > 0 && summary.PMIRemovalPayment > 0 {
		_, _ = fmt.Fprintf(w, "PMI drops off:        payment #%d (%s)\n",
			summary.PMIRemovalPayment, datetime.FormatDate(summary.PMIRemovalDate))
	}

	_, _ = fmt.Fprintf(w, "Payment | Date       | Interest Due | Principal Paid | Extra Payments | Balance         | PMI | LTV\n")
	_, _ = fmt.Fprintf(w, "_______ | __________ | ____________ | ______________ | ______________ | _______________ | ___ | ______\n")
	for _, payment := range result.Schedule {
		pmi := "no"
		if payment.PMIActive {
			pmi = "yes"
		}
		_, err := p.Fprintf(w, "%7d | %s | $%11.2f | $%13.2f | $%13.2f | $%14.2f | %-3s | %s\n",
			payment.PaymentNumber,
			datetime.FormatDate(payment.PaymentDate),
			payment.InterestDue,
			payment.PrincipalPaid,
			payment.ExtraPayments+payment.AdditionalPayment,
			payment.RemainingBalance,
			pmi,
			format.Ratio(payment.LTV),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeComparison(w io.Writer, p *message.Printer, results []comparison.Result) error {
	_, _ = fmt.Fprintf(w, "--- Scenario comparison ---\n")
	_, _ = fmt.Fprintf(w, "%-20s | %-12s | %-15s | %-16s | %-11s | %s\n",
		"Scenario", "Monthly P&I", "Total Interest", "Interest Savings", "Payoff Time", "Time Saved")
	_, _ = fmt.Fprintf(w, "%-20s | %-12s | %-15s | %-16s | %-11s | %s\n",
		"________", "___________", "______________", "________________", "___________", "__________")
	for _, result := range results {
		savings, saved := "-", "-"
		if !result.Baseline {
			savings = format.Currency(result.InterestSavings)
			saved = p.Sprintf("%.1f years", result.YearsSaved)
		}
		_, err := fmt.Fprintf(w, "%-20s | %12s | %15s | %16s | %11s | %s\n",
			result.Name,
			format.Currency(result.MonthlyPayment),
			format.Currency(result.Summary.TotalInterest),
			savings,
			p.Sprintf("%.1f years", result.Summary.YearsToPayoff),
			saved,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeOptimization(w io.Writer, summary optimization.Summary) error {
	status := "converged"
	if !summary.Converged {
		status = "not converged"
	}
	_, _ = fmt.Fprintf(w, "Optimization adjustments:\n")
	_, err := fmt.Fprintf(w, "  %s (%s): %s -> %s, %d payments (target %d, was %d), interest saved %s, %d iterations, %s\n",
		summary.Scenario,
		summary.Field,
		summary.OriginalDisplay,
		summary.ValueDisplay,
		summary.Payments,
		summary.TargetPayments,
		summary.BaselinePayments,
		format.Currency(summary.InterestSaved),
		summary.Iterations,
		status,
	)
	for _, note := range summary.Notes {
		_, _ = fmt.Fprintf(w, "  note: %s\n", note)
	}
	return err
}

// CsvFormat outputs every scenario's schedule in comma-separated value format.
func CsvFormat(report Report) {
	_ = WriteCSV(os.Stdout, report)
}

// WriteCSV writes every scenario's schedule to w, prefixing each row with the
// scenario name.
func WriteCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"Scenario"}, ScheduleCSVHeader...)); err != nil {
		return err
	}
	for _, result := range report.Results {
		for _, payment := range result.Schedule {
			if err := writer.Write(append([]string{result.Name}, scheduleRow(payment)...)); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteScheduleCSV writes a single schedule to w.
func WriteScheduleCSV(w io.Writer, schedule []mortgage.AmortizationPayment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ScheduleCSVHeader); err != nil {
		return err
	}
	for _, payment := range schedule {
		if err := writer.Write(scheduleRow(payment)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func scheduleRow(p mortgage.AmortizationPayment) []string {
	return []string{
		strconv.Itoa(p.PaymentNumber),
		datetime.FormatDate(p.PaymentDate),
		format.Fixed(p.InterestRate),
		format.Fixed(p.InterestDue),
		format.Fixed(p.PaymentAmount),
		format.Fixed(p.ExtraPayments),
		format.Fixed(p.AdditionalPayment),
		format.Fixed(p.PrincipalPaid),
		format.Fixed(p.RemainingBalance),
		strconv.Itoa(p.Year),
		format.Fixed(p.TaxReturned),
		format.Fixed(p.CumulativeTaxReturned),
		strconv.FormatBool(p.PMIActive),
		strconv.FormatFloat(roundLTV(p.LTV), 'f', ltvPlaces, 64),
	}
}

// JSONFormat outputs the report, schedules included, as indented JSON.
func JSONFormat(report Report) {
	_ = WriteJSON(os.Stdout, report)
}

// WriteJSON writes the report, schedules included, to w as indented JSON.
func WriteJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewJSONReport(report, true))
}
