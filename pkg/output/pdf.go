package output

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/mortgage-calculator/internal/comparison"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 5.0
)

var scheduleTableHeaders = []string{"#", "Date", "Interest", "Payment", "Extra", "Principal", "Balance", "PMI"}
var scheduleTableWidths = []float64{12, 24, 22, 22, 22, 24, 30, 24}

// pdfReport renders a mortgage summary and amortization schedule.
type pdfReport struct {
	pdf         *fpdf.Fpdf
	result      comparison.Result
	comparisons []comparison.Result
	generated   time.Time
}

// GeneratePDFReport renders result as a PDF document. When comparisons holds
// more than one result a comparison table is included.
func GeneratePDFReport(result comparison.Result, comparisons []comparison.Result, generated time.Time) ([]byte, error) {
	report := &pdfReport{
		pdf:         fpdf.New("P", "mm", "A4", ""),
		result:      result,
		comparisons: comparisons,
		generated:   generated,
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)
	report.pdf.SetFooterFunc(report.drawFooter)

	report.addSummaryPage()
	if len(comparisons) > 1 {
		report.addComparison()
	}
	report.addSchedule()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDFFormat writes the baseline report with all comparisons to path.
func PDFFormat(report Report, path string) error {
	if len(report.Results) == 0 {
		return fmt.Errorf("no results to render")
	}
	data, err := GeneratePDFReport(report.Results[0], report.Results, time.Now())
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write PDF to %s: %w", path, err)
	}
	return nil
}

func (r *pdfReport) addSummaryPage() {
	inputs := r.result.Inputs
	summary := r.result.Summary

	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 143, 81)
	r.pdf.CellFormat(contentWidth, 12, "Mortgage Summary", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 7, r.result.Name, "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.drawSectionHeader("Loan Details")
	downPayment := inputs.HomeValue * inputs.DownPct / 100
	r.drawKeyValues([][2]string{
		{"Home Value", format.Currency(inputs.HomeValue)},
		{"Loan Amount", format.Currency(r.result.LoanAmount)},
		{"Down Payment", fmt.Sprintf("%s (%s)", format.Percent(inputs.DownPct, 0), format.Currency(downPayment))},
		{"Interest Rate", format.Percent(inputs.Rate, 3)},
		{"Loan Term", fmt.Sprintf("%d years", inputs.Term)},
		{"Monthly Payment (P&I)", format.Currency(r.result.MonthlyPayment)},
		{"Full Monthly Payment", format.Currency(r.result.FullPayment)},
	})

	r.drawSectionHeader("Loan Totals")
	totals := [][2]string{
		{"Total Interest Paid", format.Currency(summary.TotalInterest)},
		{"Total Amount Paid", format.Currency(summary.TotalPaid)},
		{"Number of Payments", strconv.Itoa(summary.Payments)},
	}
	if summary.Payments > 0 {
		totals = append(totals, [2]string{"Payoff Date", summary.PayoffDate.Format("January 2, 2006")})
	}
	if summary.TotalExtra > 0 {
		totals = append(totals, [2]string{"Extra Principal Paid", format.Currency(summary.TotalExtra)})
	}
	if summary.TotalTaxReturned != 0 {
		totals = append(totals, [2]string{"Tax Returned", format.Currency(summary.TotalTaxReturned)})
	}
	r.drawKeyValues(totals)

	if inputs.PMIMo > 0 && summary.PMIRemovalPayment > 0 {
		r.drawSectionHeader("PMI Information")
		r.drawKeyValues([][2]string{
			{"PMI Drops Off", fmt.Sprintf("Payment #%d", summary.PMIRemovalPayment)},
			{"Drop-off Month", summary.PMIRemovalDate.Format("January 2006")},
		})
	}

	r.drawSectionHeader("Monthly Escrow Breakdown")
	widths := []float64{80, 50, 50}
	r.drawTableHeader([]string{"Item", "Annual", "Monthly"}, widths)
	escrows := r.result.Escrows
	r.drawTableRow([]string{"Property Tax", format.Currency(inputs.TaxYr), format.Currency(escrows.TaxMo)}, widths, false)
	r.drawTableRow([]string{"Home Insurance", format.Currency(inputs.InsYr), format.Currency(escrows.InsuranceMo)}, widths, false)
	if inputs.HOAMo > 0 {
		r.drawTableRow([]string{"HOA Fees", format.Currency(inputs.HOAMo * 12), format.Currency(escrows.HOAMo)}, widths, false)
	}
	if inputs.PMIMo > 0 {
		r.drawTableRow([]string{"PMI", format.Currency(inputs.PMIMo * 12), format.Currency(escrows.PMIMo)}, widths, false)
	}
	r.drawTableRow([]string{"Total", format.Currency(escrows.Total() * 12), format.Currency(escrows.Total())}, widths, true)
}

func (r *pdfReport) addComparison() {
	r.pdf.Ln(6)
	r.drawSectionHeader("Loan Comparison")
	widths := []float64{44, 28, 30, 30, 24, 24}
	r.drawTableHeader([]string{"Scenario", "Monthly P&I", "Total Interest", "Savings", "Payoff", "Saved"}, widths)
	for _, result := range r.comparisons {
		savings, saved := "-", "-"
		if !result.Baseline {
			savings = format.Currency(result.InterestSavings)
			saved = fmt.Sprintf("%.1f yrs", result.YearsSaved)
		}
		r.drawTableRow([]string{
			result.Name,
			format.Currency(result.MonthlyPayment),
			format.Currency(result.Summary.TotalInterest),
			savings,
			fmt.Sprintf("%.1f yrs", result.Summary.YearsToPayoff),
			saved,
		}, widths, result.Baseline)
	}
}

func (r *pdfReport) addSchedule() {
	r.pdf.AddPage()
	r.drawSectionHeader("Amortization Schedule")
	r.drawTableHeader(scheduleTableHeaders, scheduleTableWidths)

	_, pageHeight := r.pdf.GetPageSize()
	for _, payment := range r.result.Schedule {
		if r.pdf.GetY()+rowHeight > pageHeight-marginBottom {
			r.pdf.AddPage()
			r.drawTableHeader(scheduleTableHeaders, scheduleTableWidths)
		}
		pmi := "No"
		if payment.PMIActive {
			pmi = "Yes"
		}
		r.drawTableRow([]string{
			strconv.Itoa(payment.PaymentNumber),
			datetime.FormatDate(payment.PaymentDate),
			format.NumericCurrency(payment.InterestDue),
			format.NumericCurrency(payment.PaymentAmount),
			format.NumericCurrency(payment.ExtraPayments + payment.AdditionalPayment),
			format.NumericCurrency(payment.PrincipalPaid),
			format.NumericCurrency(payment.RemainingBalance),
			pmi,
		}, scheduleTableWidths, false)
	}
}

func (r *pdfReport) drawFooter() {
	r.pdf.SetY(-15)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(156, 163, 175)
	text := fmt.Sprintf("Generated on %s - page %d", r.generated.Format("January 2, 2006"), r.pdf.PageNo())
	r.pdf.CellFormat(contentWidth, 8, text, "", 0, "C", false, 0, "")
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(55, 65, 81)
	r.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 143, 81)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawKeyValues(rows [][2]string) {
	r.pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		r.pdf.SetTextColor(107, 114, 128)
		r.pdf.CellFormat(70, 6, row[0], "", 0, "L", false, 0, "")
		r.pdf.SetTextColor(31, 41, 55)
		r.pdf.CellFormat(contentWidth-70, 6, row[1], "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(243, 244, 246)
	r.pdf.SetTextColor(31, 41, 55)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(255, 255, 255)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 8)
		r.pdf.SetFillColor(240, 253, 244)
	} else {
		r.pdf.SetFont("Arial", "", 8)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
