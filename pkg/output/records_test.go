package output

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

func TestNewPaymentRecord(t *testing.T) {
	payment := mortgage.AmortizationPayment{
		PaymentNumber:         12,
		PaymentDate:           time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		InterestRate:          7,
		InterestDue:           2299.8349999,
		PaymentAmount:         2661.2114,
		ExtraPayments:         100,
		PrincipalPaid:         361.376,
		RemainingBalance:      395741.005,
		Year:                  2024,
		TaxReturned:           100,
		CumulativeTaxReturned: 1200,
		PMIActive:             true,
		LTV:                   0.791482011,
	}

	record := NewPaymentRecord(payment)

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"InterestDue", record.InterestDue, 2299.83},
		{"PaymentAmount", record.PaymentAmount, 2661.21},
		{"PrincipalPaid", record.PrincipalPaid, 361.38},
		{"RemainingBalance", record.RemainingBalance, 395741.01},
		{"LTV", record.LTV, 0.7915},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.expected) > 1e-9 {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
		}
	}
	if record.PaymentDate != "2024-12-01" || !record.PMIActive || record.Year != 2024 {
		t.Errorf("unexpected record %+v", record)
	}
}

func TestNewSummaryRecordEmpty(t *testing.T) {
	record := NewSummaryRecord(mortgage.Summary{})
	if record.PayoffDate != "" || record.PMIRemovalDate != "" {
		t.Errorf("expected empty dates for empty summary, got %+v", record)
	}
}

func TestRoundLTVNonFinite(t *testing.T) {
	if got := roundLTV(math.Inf(1)); got != 0 {
		t.Errorf("roundLTV(+Inf) = %v, expected 0", got)
	}
}
