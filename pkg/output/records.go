package output

import (
	"github.com/iwvelando/mortgage-calculator/internal/comparison"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/optimization"
	"github.com/shopspring/decimal"
)

// ltvPlaces keeps loan-to-value ratios at basis-point precision.
const ltvPlaces = 4

// Report is everything a single run produces.
type Report struct {
	Results      []comparison.Result
	Optimization *optimization.Summary
}

// PaymentRecord is an AmortizationPayment rounded for export.
type PaymentRecord struct {
	PaymentNumber         int     `json:"paymentNumber"`
	PaymentDate           string  `json:"paymentDate"`
	InterestRate          float64 `json:"interestRate"`
	InterestDue           float64 `json:"interestDue"`
	PaymentAmount         float64 `json:"paymentAmount"`
	ExtraPayments         float64 `json:"extraPayments"`
	AdditionalPayment     float64 `json:"additionalPayment"`
	PrincipalPaid         float64 `json:"principalPaid"`
	RemainingBalance      float64 `json:"remainingBalance"`
	Year                  int     `json:"year"`
	TaxReturned           float64 `json:"taxReturned"`
	CumulativeTaxReturned float64 `json:"cumulativeTaxReturned"`
	PMIActive             bool    `json:"pmiActive"`
	LTV                   float64 `json:"ltv"`
}

// SummaryRecord is a schedule Summary rounded for export.
type SummaryRecord struct {
	Payments          int     `json:"payments"`
	ScheduledPayment  float64 `json:"scheduledPayment"`
	TotalInterest     float64 `json:"totalInterest"`
	TotalPaid         float64 `json:"totalPaid"`
	TotalExtra        float64 `json:"totalExtra"`
	TotalTaxReturned  float64 `json:"totalTaxReturned"`
	PayoffDate        string  `json:"payoffDate,omitempty"`
	YearsToPayoff     float64 `json:"yearsToPayoff"`
	PMIRemovalPayment int     `json:"pmiRemovalPayment,omitempty"`
	PMIRemovalDate    string  `json:"pmiRemovalDate,omitempty"`
}

// ScenarioRecord is one comparison result rounded for export.
type ScenarioRecord struct {
	Name            string            `json:"name"`
	Baseline        bool              `json:"baseline"`
	Inputs          config.LoanInputs `json:"inputs"`
	LoanAmount      float64           `json:"loanAmount"`
	MonthlyPayment  float64           `json:"monthlyPayment"`
	Escrows         mortgage.Escrows  `json:"escrows"`
	FullPayment     float64           `json:"fullPayment"`
	InterestSavings float64           `json:"interestSavings"`
	YearsSaved      float64           `json:"yearsSaved"`
	Summary         SummaryRecord     `json:"summary"`
	Schedule        []PaymentRecord   `json:"schedule,omitempty"`
}

// JSONReport is the document written for the json output format.
type JSONReport struct {
	Scenarios    []ScenarioRecord      `json:"scenarios"`
	Optimization *optimization.Summary `json:"optimization,omitempty"`
}

// NewPaymentRecord rounds a payment to cents.
func NewPaymentRecord(p mortgage.AmortizationPayment) PaymentRecord {
	return PaymentRecord{
		PaymentNumber:         p.PaymentNumber,
		PaymentDate:           datetime.FormatDate(p.PaymentDate),
		InterestRate:          mathutil.RoundCents(p.InterestRate),
		InterestDue:           mathutil.RoundCents(p.InterestDue),
		PaymentAmount:         mathutil.RoundCents(p.PaymentAmount),
		ExtraPayments:         mathutil.RoundCents(p.ExtraPayments),
		AdditionalPayment:     mathutil.RoundCents(p.AdditionalPayment),
		PrincipalPaid:         mathutil.RoundCents(p.PrincipalPaid),
		RemainingBalance:      mathutil.RoundCents(p.RemainingBalance),
		Year:                  p.Year,
		TaxReturned:           mathutil.RoundCents(p.TaxReturned),
		CumulativeTaxReturned: mathutil.RoundCents(p.CumulativeTaxReturned),
		PMIActive:             p.PMIActive,
		LTV:                   roundLTV(p.LTV),
	}
}

// NewPaymentRecords rounds every payment in a schedule.
func NewPaymentRecords(schedule []mortgage.AmortizationPayment) []PaymentRecord {
	records := make([]PaymentRecord, len(schedule))
	for i, payment := range schedule {
		records[i] = NewPaymentRecord(payment)
	}
	return records
}

// NewSummaryRecord rounds a summary to cents.
func NewSummaryRecord(s mortgage.Summary) SummaryRecord {
	record := SummaryRecord{
		Payments:          s.Payments,
		ScheduledPayment:  mathutil.RoundCents(s.ScheduledPayment),
		TotalInterest:     mathutil.RoundCents(s.TotalInterest),
		TotalPaid:         mathutil.RoundCents(s.TotalPaid),
		TotalExtra:        mathutil.RoundCents(s.TotalExtra),
		TotalTaxReturned:  mathutil.RoundCents(s.TotalTaxReturned),
		YearsToPayoff:     mathutil.RoundCents(s.YearsToPayoff),
		PMIRemovalPayment: s.PMIRemovalPayment,
	}
	if !s.PayoffDate.IsZero() {
		record.PayoffDate = datetime.FormatDate(s.PayoffDate)
	}
	if !s.PMIRemovalDate.IsZero() {
		record.PMIRemovalDate = datetime.FormatDate(s.PMIRemovalDate)
	}
	return record
}

// NewScenarioRecord rounds a comparison result. The schedule is omitted unless
// withSchedule is set.
func NewScenarioRecord(r comparison.Result, withSchedule bool) ScenarioRecord {
	record := ScenarioRecord{
		Name:           r.Name,
		Baseline:       r.Baseline,
		Inputs:         r.Inputs,
		LoanAmount:     mathutil.RoundCents(r.LoanAmount),
		MonthlyPayment: mathutil.RoundCents(r.MonthlyPayment),
		Escrows: mortgage.Escrows{
			TaxMo:       mathutil.RoundCents(r.Escrows.TaxMo),
			InsuranceMo: mathutil.RoundCents(r.Escrows.InsuranceMo),
			HOAMo:       mathutil.RoundCents(r.Escrows.HOAMo),
			PMIMo:       mathutil.RoundCents(r.Escrows.PMIMo),
		},
		FullPayment:     mathutil.RoundCents(r.FullPayment),
		InterestSavings: mathutil.RoundCents(r.InterestSavings),
		YearsSaved:      mathutil.RoundCents(r.YearsSaved),
		Summary:         NewSummaryRecord(r.Summary),
	}
	if withSchedule {
		record.Schedule = NewPaymentRecords(r.Schedule)
	}
	return record
}

// NewJSONReport rounds every result in a report.
func NewJSONReport(report Report, withSchedule bool) JSONReport {
	records := make([]ScenarioRecord, len(report.Results))
	for i, result := range report.Results {
		records[i] = NewScenarioRecord(result, withSchedule)
	}
	return JSONReport{Scenarios: records, Optimization: report.Optimization}
}

func roundLTV(ltv float64) float64 {
	if !mathutil.IsFinite(ltv) {
		return 0
	}
	return decimal.NewFromFloat(ltv).Round(ltvPlaces).InexactFloat64()
}
