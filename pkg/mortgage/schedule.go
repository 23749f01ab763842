package mortgage

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"go.uber.org/zap"
)

// Frequency is the payment cadence of a schedule.
type Frequency string

const (
	// Monthly schedules one payment per calendar month.
	Monthly Frequency = constants.FrequencyMonthly
	// BiWeekly schedules a half payment every 14 days.
	BiWeekly Frequency = constants.FrequencyBiWeekly
)

// ParseFrequency maps a config value onto a Frequency. Empty means Monthly.
func ParseFrequency(value string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.FrequencyMonthly:
		return Monthly, nil
	case constants.FrequencyBiWeekly, "bi-weekly":
		return BiWeekly, nil
	default:
		return "", fmt.Errorf("unknown payment frequency %q, expected %s or %s",
			value, constants.FrequencyMonthly, constants.FrequencyBiWeekly)
	}
}

// PeriodsPerYear returns the number of payment periods in a year.
func (f Frequency) PeriodsPerYear() int {
	if f == BiWeekly {
		return constants.BiWeeklyPeriodsPerYear
	}
	return constants.MonthsPerYear
}

// LoanParameters holds the inputs for one schedule calculation.
type LoanParameters struct {
	LoanAmount         float64
	AnnualRatePct      float64
	TermYears          int
	StartDate          time.Time
	ExtraPayment       float64
	PaymentInterval    int
	ExtraAnnualPayment float64
	StartPaymentNumber int
	YearlyTaxReturn    float64
	HomeValue          float64
	Frequency          Frequency
}

// Validate reports inputs the schedule generator cannot amortize meaningfully.
func (p LoanParameters) Validate() error {
	var errs []error
	amounts := []struct {
		name          string
		value         float64
		allowNegative bool
	}{
		{"loan amount", p.LoanAmount, false},
		{"interest rate", p.AnnualRatePct, false},
		{"extra payment", p.ExtraPayment, false},
		{"extra annual payment", p.ExtraAnnualPayment, false},
		{"home value", p.HomeValue, false},
		{"yearly tax return", p.YearlyTaxReturn, true},
	}
	for _, amount := range amounts {
		if math.IsNaN(amount.value) || math.IsInf(amount.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite", amount.name))
		} else if amount.value < 0 && !amount.allowNegative {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %.2f", amount.name, amount.value))
		}
	}
	if p.TermYears <= 0 {
		errs = append(errs, fmt.Errorf("term must be at least one year, got %d", p.TermYears))
	}
	if p.PaymentInterval < 0 {
		errs = append(errs, fmt.Errorf("payment interval must be positive, got %d", p.PaymentInterval))
	}
	if p.StartDate.IsZero() {
		errs = append(errs, errors.New("start date is required"))
	}
	if p.Frequency != "" {
		if _, err := ParseFrequency(string(p.Frequency)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Normalize clamps the interval and start payment number to 1 and defaults the
// frequency to Monthly so the generator never divides by zero.
func (p LoanParameters) Normalize() LoanParameters {
	if p.PaymentInterval < 1 {
		p.PaymentInterval = 1
	}
	if p.StartPaymentNumber < 1 {
		p.StartPaymentNumber = 1
	}
	if f, err := ParseFrequency(string(p.Frequency)); err == nil {
		p.Frequency = f
	} else {
		p.Frequency = Monthly
	}
	return p
}

// TotalPeriods is the nominal number of payments over the full term.
func (p LoanParameters) TotalPeriods() int {
	if p.TermYears <= 0 {
		return 0
	}
	return p.TermYears * p.Frequency.PeriodsPerYear()
}

// PaymentDate returns the due date of the given 1-based payment number.
func (p LoanParameters) PaymentDate(paymentNumber int) time.Time {
	if p.Frequency == BiWeekly {
		return datetime.AddDays(p.StartDate, constants.BiWeeklyPeriodDays*(paymentNumber-1))
	}
	return datetime.AddMonths(p.StartDate, paymentNumber-1)
}

// ScheduledPayment returns the fixed principal and interest payment per period.
func (p LoanParameters) ScheduledPayment() float64 {
	if p.Frequency == BiWeekly {
		return BiWeeklyPayment(p.LoanAmount, p.AnnualRatePct, p.TermYears)
	}
	return annuityPayment(p.LoanAmount, PeriodicRate(p.AnnualRatePct, constants.MonthsPerYear), p.TotalPeriods())
}

// extraDue reports whether the periodic extra payment applies to payment i.
func (p LoanParameters) extraDue(i int) bool {
	return i >= p.StartPaymentNumber && (i-p.StartPaymentNumber)%p.PaymentInterval == 0
}

// AmortizationPayment holds the values for a given payment.
type AmortizationPayment struct {
	PaymentNumber         int
	PaymentDate           time.Time
	InterestRate          float64
	InterestDue           float64
	PaymentAmount         float64
	ExtraPayments         float64
	AdditionalPayment     float64
	PrincipalPaid         float64
	RemainingBalance      float64
	Year                  int
	TaxReturned           float64
	CumulativeTaxReturned float64
	PMIActive             bool
	LTV                   float64
}

// TotalPaid is the cash applied this period: scheduled plus extra and annual payments.
func (p AmortizationPayment) TotalPaid() float64 {
	return p.PaymentAmount + p.ExtraPayments + p.AdditionalPayment
}

// scheduleState is threaded from one period to the next.
type scheduleState struct {
	balance        float64
	cumulativeTax  float64
	lastAnnualYear int
}

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the payment ledger for a loan, stopping in the
// period where the balance first reaches zero. Parameters are normalized
// first; a non-positive term or loan amount yields an empty schedule.
func (g *ScheduleGenerator) GenerateSchedule(params LoanParameters) []AmortizationPayment {
	p := params.Normalize()
	totalPeriods := p.TotalPeriods()
	if totalPeriods == 0 || p.LoanAmount <= 0 {
		return []AmortizationPayment{}
	}

	homeValue := EffectiveHomeValue(p.HomeValue, p.LoanAmount)
	if p.HomeValue <= 0 {
		g.logger.Debug(fmt.Sprintf("no home value provided, assuming %.2f from loan amount %.2f",
			homeValue, p.LoanAmount),
			zap.String("op", "mortgage.GenerateSchedule"),
		)
	}

	period := periodContext{
		params:       p,
		periodicRate: PeriodicRate(p.AnnualRatePct, p.Frequency.PeriodsPerYear()),
		payment:      p.ScheduledPayment(),
		taxPerPeriod: p.YearlyTaxReturn / float64(p.Frequency.PeriodsPerYear()),
		homeValue:    homeValue,
	}

	schedule := make([]AmortizationPayment, 0, totalPeriods)
	state := scheduleState{balance: p.LoanAmount}
	pmiWasActive := ShouldPMIBeActive(CalculateLTV(p.LoanAmount, homeValue))

	for i := 1; i <= totalPeriods && state.balance > 0; i++ {
		var record AmortizationPayment
		state, record = period.step(state, i)
		schedule = append(schedule, record)

		if record.AdditionalPayment > 0 {
			g.logger.Debug(fmt.Sprintf("%s: applying annual extra payment %.2f",
				datetime.FormatDate(record.PaymentDate), record.AdditionalPayment),
				zap.String("op", "mortgage.GenerateSchedule"),
			)
		}
		if pmiWasActive && !record.PMIActive {
			g.logger.Debug(fmt.Sprintf("%s: loan-to-value %.4f reached, mortgage insurance removed at payment %d",
				datetime.FormatDate(record.PaymentDate), record.LTV, record.PaymentNumber),
				zap.String("op", "mortgage.GenerateSchedule"),
			)
			pmiWasActive = false
		}
	}

	if n := len(schedule); n < totalPeriods {
		g.logger.Debug(fmt.Sprintf("loan paid off after %d of %d payments", n, totalPeriods),
			zap.String("op", "mortgage.GenerateSchedule"),
		)
	}

	return schedule
}

// GenerateSchedule creates a schedule without logging.
func GenerateSchedule(params LoanParameters) []AmortizationPayment {
	return NewScheduleGenerator(nil).GenerateSchedule(params)
}

// periodContext holds the values that stay fixed across all periods.
type periodContext struct {
	params       LoanParameters
	periodicRate float64
	payment      float64
	taxPerPeriod float64
	homeValue    float64
}

// step applies payment i to the state and returns the next state with the
// emitted record.
func (c periodContext) step(state scheduleState, i int) (scheduleState, AmortizationPayment) {
	date := c.params.PaymentDate(i)
	interest := InterestPayment(state.balance, c.periodicRate)
	principal := c.payment - interest

	extra := 0.0
	if c.params.extraDue(i) {
		extra = c.params.ExtraPayment
	}

	additional := 0.0
	if datetime.IsJanuary(date) && date.Year() != state.lastAnnualYear {
		additional = c.params.ExtraAnnualPayment
		state.lastAnnualYear = date.Year()
	}

	state.balance = math.Max(0, state.balance-(principal+extra+additional))
	state.cumulativeTax += c.taxPerPeriod

	ltv := CalculateLTV(state.balance, c.homeValue)

	return state, AmortizationPayment{
		PaymentNumber:         i,
		PaymentDate:           date,
		InterestRate:          c.params.AnnualRatePct,
		InterestDue:           interest,
		PaymentAmount:         c.payment,
		ExtraPayments:         extra,
		AdditionalPayment:     additional,
		PrincipalPaid:         principal,
		RemainingBalance:      state.balance,
		Year:                  date.Year(),
		TaxReturned:           c.taxPerPeriod,
		CumulativeTaxReturned: state.cumulativeTax,
		PMIActive:             ShouldPMIBeActive(ltv),
		LTV:                   ltv,
	}
}
