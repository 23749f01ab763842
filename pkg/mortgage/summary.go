package mortgage

import "time"

// Summary aggregates a schedule into the figures shown next to it.
type Summary struct {
	Payments          int
	PeriodsPerYear    int
	ScheduledPayment  float64
	TotalInterest     float64
	TotalPaid         float64
	TotalExtra        float64
	TotalTaxReturned  float64
	PayoffDate        time.Time
	YearsToPayoff     float64
	PMIRemovalPayment int
	PMIRemovalDate    time.Time
}

// Summarize computes totals over a schedule. Total paid counts the full
// scheduled payment plus extras for every period, including the final one.
// PMIRemovalPayment is the first payment with mortgage insurance inactive, or
// 0 when it never turns off.
func Summarize(schedule []AmortizationPayment, frequency Frequency) Summary {
	summary := Summary{
		Payments:       len(schedule),
		PeriodsPerYear: frequency.PeriodsPerYear(),
	}
	if len(schedule) == 0 {
		return summary
	}

	summary.ScheduledPayment = schedule[0].PaymentAmount
	for _, payment := range schedule {
		summary.TotalInterest += payment.InterestDue
		summary.TotalPaid += payment.TotalPaid()
		summary.TotalExtra += payment.ExtraPayments + payment.AdditionalPayment
		if summary.PMIRemovalPayment == 0 && !payment.PMIActive {
			summary.PMIRemovalPayment = payment.PaymentNumber
			summary.PMIRemovalDate = payment.PaymentDate
		}
	}

	last := schedule[len(schedule)-1]
	summary.TotalTaxReturned = last.CumulativeTaxReturned
	summary.PayoffDate = last.PaymentDate
	summary.YearsToPayoff = float64(len(schedule)) / float64(summary.PeriodsPerYear)
	return summary
}
