// Package scenarios evaluates repayment-plan variants side by side. Every
// variant is simulated independently on its own cloned debt set, so the
// evaluations run concurrently without coordination.
package scenarios

import (
	"context"
	"fmt"
	"time"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/mathutil"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/repayment"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scenario describes one repayment-plan variant.
type Scenario struct {
	ID   string
	Name string

	// RateAdjustment is added to every debt's annual rate in percentage
	// points; rates are floored at zero.
	RateAdjustment float64

	// MonthlyBudget is the total budget for the variant.
	MonthlyBudget float64

	// AnnualExtraPayment is an extra yearly lump sum, spread evenly over
	// the twelve months.
	AnnualExtraPayment float64

	Strategy debts.Method
}

// EffectiveBudget is the monthly budget including the spread-out share of
// the annual extra payment.
func (s Scenario) EffectiveBudget() float64 {
	return s.MonthlyBudget + s.AnnualExtraPayment/constants.MonthsPerYear
}

// Outcome pairs a scenario with its simulated plan.
type Outcome struct {
	Scenario Scenario
	Plan     repayment.Plan
}

// Delta reports a scenario's savings relative to the baseline. Viable is
// false when either side of the comparison is not a viable plan, in which
// case the savings fields carry no meaning.
type Delta struct {
	ScenarioID    string
	ScenarioName  string
	MonthsSaved   int
	InterestSaved float64
	Viable        bool
}

// Comparison is the result of evaluating a scenario set.
type Comparison struct {
	BaselineID string
	Outcomes   []Outcome
	Deltas     []Delta
}

// Runner evaluates scenario sets.
type Runner struct {
	logger *zap.Logger
	sim    *repayment.Simulator
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, sim: repayment.NewSimulator(logger)}
}

// Compare simulates every scenario concurrently and reports savings
// against the scenario identified by baselineID. All variants share the
// same anchor month so their payoff dates are comparable.
func (r *Runner) Compare(ctx context.Context, debtList []debts.Debt, scenarioList []Scenario, baselineID string) (Comparison, error) {
	return r.CompareWithFixedTime(ctx, debtList, scenarioList, baselineID, time.Now())
}

// CompareWithFixedTime is Compare with an injectable anchor time.
func (r *Runner) CompareWithFixedTime(ctx context.Context, debtList []debts.Debt, scenarioList []Scenario, baselineID string, anchor time.Time) (Comparison, error) {
	if len(scenarioList) == 0 {
		return Comparison{}, fmt.Errorf("no scenarios provided")
	}

	baselineIndex := -1
	for i, scenario := range scenarioList {
		if scenario.ID == baselineID {
			baselineIndex = i
			break
		}
	}
	if baselineIndex < 0 {
		return Comparison{}, fmt.Errorf("baseline scenario %q not found", baselineID)
	}

	outcomes := make([]Outcome, len(scenarioList))
	g, ctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarioList {
		i, scenario := i, scenario
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plan, err := r.sim.SimulateWithFixedTime(
				adjustDebts(debtList, scenario.RateAdjustment),
				scenario.EffectiveBudget(),
				scenario.Strategy,
				anchor,
			)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
			outcomes[i] = Outcome{Scenario: scenario, Plan: plan}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	comparison := Comparison{
		BaselineID: baselineID,
		Outcomes:   outcomes,
	}

	baseline := outcomes[baselineIndex].Plan
	for _, outcome := range outcomes {
		if outcome.Scenario.ID == baselineID {
			continue
		}
		delta := Delta{
			ScenarioID:   outcome.Scenario.ID,
			ScenarioName: outcome.Scenario.Name,
			Viable:       baseline.IsViable && outcome.Plan.IsViable,
		}
		if delta.Viable {
			delta.MonthsSaved = baseline.TotalMonths - outcome.Plan.TotalMonths
			delta.InterestSaved = baseline.TotalInterestPaid - outcome.Plan.TotalInterestPaid
		}
		comparison.Deltas = append(comparison.Deltas, delta)
	}

	r.logger.Debug("scenario comparison complete",
		zap.String("op", "scenarios.Compare"),
		zap.Int("scenarios", len(scenarioList)),
		zap.String("baseline", baselineID),
	)
	return comparison, nil
}

// MinimumOnlyScenario builds the conventional baseline that pays nothing
// beyond the required minimum payments.
func MinimumOnlyScenario(debtList []debts.Debt, strategy debts.Method) Scenario {
	budget := 0.0
	for _, debt := range debts.Active(debtList) {
		budget += debt.RequiredPayment()
	}
	return Scenario{
		ID:            "minimum-only",
		Name:          "Minimum payments only",
		MonthlyBudget: budget,
		Strategy:      strategy,
	}
}

// adjustDebts applies the rate shock to a cloned debt list.
func adjustDebts(debtList []debts.Debt, rateAdjustment float64) []debts.Debt {
	adjusted := make([]debts.Debt, len(debtList))
	copy(adjusted, debtList)
	if rateAdjustment == 0 {
		return adjusted
	}
	for i := range adjusted {
		adjusted[i].AnnualRate = mathutil.Max(0, adjusted[i].AnnualRate+rateAdjustment)
	}
	return adjusted
}
