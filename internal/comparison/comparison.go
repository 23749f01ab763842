// Package comparison runs the amortization engine for a baseline loan and a
// set of what-if scenarios and aggregates the figures used to compare them.
package comparison

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BaselineName is the name of the unmodified loan in every comparison.
const BaselineName = "Current"

// Result holds the schedule and comparison figures for one scenario.
type Result struct {
	Name            string
	Baseline        bool
	Inputs          config.LoanInputs
	Parameters      mortgage.LoanParameters
	Schedule        []mortgage.AmortizationPayment
	Summary         mortgage.Summary
	Escrows         mortgage.Escrows
	LoanAmount      float64
	MonthlyPayment  float64
	FullPayment     float64
	InterestSavings float64
	YearsSaved      float64
}

// Observer is notified after each schedule is generated.
type Observer interface {
	ObserveSchedule(scenario string, frequency mortgage.Frequency, payments int, elapsed time.Duration)
}

// Runner generates comparison results.
type Runner struct {
	logger    *zap.Logger
	generator *mortgage.ScheduleGenerator
	observer  Observer
	now       func() time.Time
}

// NewRunner creates a comparison runner. observer may be nil.
func NewRunner(logger *zap.Logger, observer Observer) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:    logger,
		generator: mortgage.NewScheduleGenerator(logger),
		observer:  observer,
		now:       time.Now,
	}
}

// DefaultScenarios are compared when the configuration defines none.
func DefaultScenarios() []config.Scenario {
	term := 15
	extra200 := 200.0
	extra500 := 500.0
	return []config.Scenario{
		{Name: "15-Year", Active: true, Overrides: config.Overrides{Term: &term}},
		{Name: "+$200/mo Extra", Active: true, Overrides: config.Overrides{ExtraPayment: &extra200}},
		{Name: "+$500/mo Extra", Active: true, Overrides: config.Overrides{ExtraPayment: &extra500}},
	}
}

// Compare runs the configured loan against its active scenarios, falling back
// to DefaultScenarios when none are configured.
func (r *Runner) Compare(ctx context.Context, conf config.Configuration) ([]Result, error) {
	scenarios := conf.ActiveScenarios()
	if len(conf.Scenarios) == 0 {
		r.logger.Debug("no scenarios configured, using default comparison scenarios",
			zap.String("op", "comparison.Compare"),
		)
		scenarios = DefaultScenarios()
	}
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			r.logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "comparison.Compare"),
			)
		}
	}
	return r.Run(ctx, conf.Loan, scenarios)
}

// Run generates the baseline followed by each scenario. Schedules are built
// concurrently; results keep the input order with the baseline first.
func (r *Runner) Run(ctx context.Context, base config.LoanInputs, scenarios []config.Scenario) ([]Result, error) {
	results := make([]Result, len(scenarios)+1)
	now := r.now()

	g, ctx := errgroup.WithContext(ctx)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			name := BaselineName
			inputs := base
			if i > 0 {
				name = scenarios[i-1].Name
				inputs = scenarios[i-1].Inputs(base)
			}

			result, err := r.evaluate(name, inputs, now)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", name, err)
			}
			result.Baseline = i == 0
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseline := results[0].Summary
	for i := range results {
		results[i].InterestSavings = baseline.TotalInterest - results[i].Summary.TotalInterest
		results[i].YearsSaved = baseline.YearsToPayoff - results[i].Summary.YearsToPayoff
	}

	r.logger.Debug(fmt.Sprintf("compared %d scenarios against the baseline", len(scenarios)),
		zap.String("op", "comparison.Run"),
	)
	return results, nil
}

// Evaluate generates the schedule and summary for a single set of inputs.
func (r *Runner) Evaluate(name string, inputs config.LoanInputs) (Result, error) {
	return r.evaluate(name, inputs, r.now())
}

func (r *Runner) evaluate(name string, inputs config.LoanInputs, now time.Time) (Result, error) {
	inputs, adjusted := inputs.Clamp()
	for _, warning := range adjusted {
		r.logger.Warn(fmt.Sprintf("scenario %s: %s", name, warning),
			zap.String("op", "comparison.evaluate"),
		)
	}

	params, err := inputs.Parameters(now)
	if err != nil {
		return Result{}, err
	}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	started := time.Now()
	schedule := r.generator.GenerateSchedule(params)
	elapsed := time.Since(started)
	if r.observer != nil {
		r.observer.ObserveSchedule(name, params.Frequency, len(schedule), elapsed)
	}

	escrows := inputs.Escrows()
	payment := mortgage.MonthlyPayment(params.LoanAmount, params.AnnualRatePct, params.TermYears)
	return Result{
		Name:           name,
		Inputs:         inputs,
		Parameters:     params,
		Schedule:       schedule,
		Summary:        mortgage.Summarize(schedule, params.Frequency),
		Escrows:        escrows,
		LoanAmount:     params.LoanAmount,
		MonthlyPayment: payment,
		FullPayment:    mortgage.FullPayment(payment, escrows, mortgage.IncludeAll),
	}, nil
}
