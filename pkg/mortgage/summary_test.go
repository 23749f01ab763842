package mortgage

import (
	"math"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
)

func TestSummarizeZeroInterest(t *testing.T) {
	schedule := GenerateSchedule(baseParams(120000, 0, 10, "2024-01-01"))
	summary := Summarize(schedule, Monthly)

	if summary.Payments != 120 {
		t.Errorf("Payments = %d, expected 120", summary.Payments)
	}
	if summary.TotalInterest != 0 {
		t.Errorf("TotalInterest = %v, expected 0", summary.TotalInterest)
	}
	if math.Abs(summary.TotalPaid-120000) > 1e-6 {
		t.Errorf("TotalPaid = %v, expected 120000", summary.TotalPaid)
	}
	if summary.YearsToPayoff != 10 {
		t.Errorf("YearsToPayoff = %v, expected 10", summary.YearsToPayoff)
	}
	if datetime.FormatDate(summary.PayoffDate) != "2033-12-01" {
		t.Errorf("PayoffDate = %s, expected 2033-12-01", datetime.FormatDate(summary.PayoffDate))
	}
	if summary.ScheduledPayment != 1000 {
		t.Errorf("ScheduledPayment = %v, expected 1000", summary.ScheduledPayment)
	}
}

func TestSummarizeStandardLoan(t *testing.T) {
	params := baseParams(400000, 7, 30, "2024-01-01")
	params.HomeValue = 500000
	params.YearlyTaxReturn = 1200
	schedule := GenerateSchedule(params)
	summary := Summarize(schedule, Monthly)

	// 360 payments of ~2661.21 less the 400k principal.
	expectedInterest := summary.ScheduledPayment*360 - 400000
	if math.Abs(summary.TotalInterest-expectedInterest) > 1.0 {
		t.Errorf("TotalInterest = %.2f, expected ~%.2f", summary.TotalInterest, expectedInterest)
	}
	if summary.TotalExtra != 0 {
		t.Errorf("TotalExtra = %v, expected 0", summary.TotalExtra)
	}
	if math.Abs(summary.TotalTaxReturned-36000) > 1e-6 {
		t.Errorf("TotalTaxReturned = %v, expected 36000", summary.TotalTaxReturned)
	}

	if summary.PMIRemovalPayment == 0 {
		t.Fatal("expected PMI to be removed during the loan")
	}
	removal := schedule[summary.PMIRemovalPayment-1]
	if removal.PMIActive || !schedule[summary.PMIRemovalPayment-2].PMIActive {
		t.Errorf("PMIRemovalPayment %d is not the first inactive payment", summary.PMIRemovalPayment)
	}
	if !summary.PMIRemovalDate.Equal(removal.PaymentDate) {
		t.Errorf("PMIRemovalDate = %s, expected %s", summary.PMIRemovalDate, removal.PaymentDate)
	}
}

func TestSummarizeCountsExtras(t *testing.T) {
	params := baseParams(200000, 6, 30, "2024-01-01")
	params.ExtraPayment = 100
	params.ExtraAnnualPayment = 1000
	schedule := GenerateSchedule(params)
	summary := Summarize(schedule, Monthly)

	var want float64
	for _, payment := range schedule {
		want += payment.ExtraPayments + payment.AdditionalPayment
	}
	if math.Abs(summary.TotalExtra-want) > 1e-6 {
		t.Errorf("TotalExtra = %v, expected %v", summary.TotalExtra, want)
	}
	if summary.YearsToPayoff >= 30 {
		t.Errorf("YearsToPayoff = %v, expected early payoff", summary.YearsToPayoff)
	}
}

func TestSummarizeBiWeekly(t *testing.T) {
	params := baseParams(300000, 6, 30, "2024-01-05")
	params.Frequency = BiWeekly
	schedule := GenerateSchedule(params)
	summary := Summarize(schedule, BiWeekly)

	if summary.PeriodsPerYear != 26 {
		t.Errorf("PeriodsPerYear = %d, expected 26", summary.PeriodsPerYear)
	}
	if math.Abs(summary.YearsToPayoff-float64(len(schedule))/26) > 1e-12 {
		t.Errorf("YearsToPayoff = %v, expected payments / 26", summary.YearsToPayoff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, Monthly)
	if summary.Payments != 0 || summary.TotalPaid != 0 || !summary.PayoffDate.IsZero() {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}
