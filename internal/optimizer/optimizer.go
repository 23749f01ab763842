// Package optimizer searches for the smallest extra payment that pays a loan
// off within a target number of payments.
package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/optimization"
	"go.uber.org/zap"
)

// Runner executes payoff optimizations.
type Runner struct {
	logger    *zap.Logger
	generator *mortgage.ScheduleGenerator
	fixedTime time.Time
}

type evaluation struct {
	value    float64
	payments int
	interest float64
}

func (e evaluation) feasible(target int) bool {
	return e.payments <= target
}

// NewRunner constructs a Runner. A zero fixedTime resolves empty payment dates
// to the current day.
func NewRunner(logger *zap.Logger, fixedTime time.Time) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fixedTime.IsZero() {
		fixedTime = time.Now()
	}
	// The search regenerates the schedule many times; keep the generator quiet.
	return &Runner{logger: logger, generator: mortgage.NewScheduleGenerator(nil), fixedTime: fixedTime}
}

// Optimize finds the smallest value of the configured field, within its
// bounds, whose schedule has at most the target number of payments. The
// payment count never increases as the extra amount grows, so a bisection
// over the bounds converges on the threshold.
func (r *Runner) Optimize(ctx context.Context, name string, inputs config.LoanInputs, cfg config.OptimizerConfig) (optimization.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return optimization.Summary{}, err
	}
	params, err := inputs.Parameters(r.fixedTime)
	if err != nil {
		return optimization.Summary{}, err
	}
	if err := params.Validate(); err != nil {
		return optimization.Summary{}, err
	}

	target := cfg.TargetPeriods(params.Frequency.PeriodsPerYear())
	original := fieldValue(params, cfg.Field)
	baseline := r.evaluate(params, cfg.Field, original)

	minVal := 0.0
	if cfg.Min != nil {
		minVal = *cfg.Min
	}
	maxVal := params.LoanAmount
	if cfg.Max != nil {
		maxVal = *cfg.Max
	}

	summary := optimization.Summary{
		Scenario:         name,
		Field:            cfg.Field,
		TargetPayments:   target,
		Original:         original,
		OriginalDisplay:  format.Currency(original),
		BaselinePayments: baseline.payments,
	}

	lowerEval := r.evaluate(params, cfg.Field, minVal)
	if lowerEval.feasible(target) {
		r.finish(&summary, baseline, lowerEval, 0, true)
		summary.Notes = append(summary.Notes, fmt.Sprintf("target of %d payments met at the minimum %s", target, format.Currency(minVal)))
		return summary, nil
	}

	upperEval := r.evaluate(params, cfg.Field, maxVal)
	if !upperEval.feasible(target) {
		r.finish(&summary, baseline, upperEval, 0, false)
		summary.Notes = append(summary.Notes, fmt.Sprintf("unable to pay off within %d payments using %s to %s",
			target, format.Currency(minVal), format.Currency(maxVal)))
		r.logger.Warn(fmt.Sprintf("payoff target of %d payments is unreachable for scenario %s", target, name),
			zap.String("op", "optimizer.Optimize"),
		)
		return summary, nil
	}

	lo, hi := lowerEval, upperEval
	iterations := 0
	for iterations < cfg.MaxIterations && hi.value-lo.value > cfg.Tolerance {
		if err := ctx.Err(); err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		mid := r.evaluate(params, cfg.Field, lo.value+(hi.value-lo.value)/2)
		if mid.feasible(target) {
			hi = mid
		} else {
			lo = mid
		}
	}
	converged := mathutil.WithinTolerance(hi.value, lo.value, cfg.Tolerance)

	best := r.smallestFeasibleCent(params, cfg.Field, target, lo, hi)
	r.finish(&summary, baseline, best, iterations, converged)

	r.logger.Info("optimizer found payoff threshold",
		zap.String("op", "optimizer.Optimize"),
		zap.String("scenario", name),
		zap.String("field", cfg.Field),
		zap.Int("targetPayments", target),
		zap.Float64("original", original),
		zap.Float64("optimized", summary.Value),
		zap.Int("payments", summary.Payments),
		zap.Float64("interestSaved", summary.InterestSaved),
		zap.Int("iterations", iterations),
		zap.Bool("converged", converged),
	)
	return summary, nil
}

// smallestFeasibleCent returns the first whole-cent value in (lo, hi] that
// meets the target. Wide brackets fall back to hi rounded up to the cent.
func (r *Runner) smallestFeasibleCent(params mortgage.LoanParameters, field string, target int, lo, hi evaluation) evaluation {
	const maxCentSteps = 100
	first := int64(math.Floor(lo.value*constants.DecimalPrecision)) + 1
	last := int64(math.Ceil(hi.value*constants.DecimalPrecision - 1e-9))
	if last-first <= maxCentSteps {
		for cents := first; cents <= last; cents++ {
			candidate := r.evaluate(params, field, float64(cents)/constants.DecimalPrecision)
			if candidate.feasible(target) {
				return candidate
			}
		}
	} else if rounded := r.evaluate(params, field, float64(last)/constants.DecimalPrecision); rounded.feasible(target) {
		return rounded
	}
	return hi
}

func (r *Runner) finish(summary *optimization.Summary, baseline, chosen evaluation, iterations int, converged bool) {
	summary.Value = chosen.value
	summary.ValueDisplay = format.Currency(chosen.value)
	summary.Payments = chosen.payments
	summary.InterestSaved = baseline.interest - chosen.interest
	summary.Iterations = iterations
	summary.Converged = converged
}

func (r *Runner) evaluate(params mortgage.LoanParameters, field string, value float64) evaluation {
	schedule := r.generator.GenerateSchedule(withFieldValue(params, field, value))
	summary := mortgage.Summarize(schedule, params.Frequency)
	return evaluation{value: value, payments: summary.Payments, interest: summary.TotalInterest}
}

func fieldValue(params mortgage.LoanParameters, field string) float64 {
	if field == config.OptimizerFieldExtraAnnualPayment {
		return params.ExtraAnnualPayment
	}
	return params.ExtraPayment
}

func withFieldValue(params mortgage.LoanParameters, field string, value float64) mortgage.LoanParameters {
	if field == config.OptimizerFieldExtraAnnualPayment {
		params.ExtraAnnualPayment = value
	} else {
		params.ExtraPayment = value
	}
	return params
}
