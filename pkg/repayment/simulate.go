package repayment

import (
	"fmt"
	"time"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/mathutil"
	"go.uber.org/zap"
)

// Simulator runs repayment simulations. All working state lives inside one
// Simulate call; a Simulator is safe for concurrent use.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a simulator instance.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger}
}

// Simulate runs the repayment simulation anchored at the current month.
func (s *Simulator) Simulate(debtList []debts.Debt, monthlyBudget float64, method debts.Method) (Plan, error) {
	return s.SimulateWithFixedTime(debtList, monthlyBudget, method, time.Now())
}

// SimulateWithFixedTime runs the repayment simulation with an injectable
// anchor time; the anchor only influences the reported payoff date.
func (s *Simulator) SimulateWithFixedTime(debtList []debts.Debt, monthlyBudget float64, method debts.Method, anchor time.Time) (Plan, error) {
	if err := validate(debtList, monthlyBudget, method); err != nil {
		return Plan{}, err
	}

	active := debts.Active(debtList)
	if len(active) == 0 {
		return Plan{}, fmt.Errorf("no active debts with a positive balance")
	}

	plan := Plan{
		Strategy:       method,
		MonthlyPayment: monthlyBudget,
	}

	totalRequired := 0.0
	for _, debt := range active {
		totalRequired += debt.RequiredPayment()
	}
	if monthlyBudget+constants.CurrencyTolerance < totalRequired {
		plan.InsufficientBudgetMessage = fmt.Sprintf(
			"budget %.2f is insufficient; at least %.2f is needed to cover minimum payments",
			monthlyBudget, totalRequired)
		s.logger.Debug("budget below sum of minimum payments",
			zap.String("op", "repayment.Simulate"),
			zap.Float64("budget", monthlyBudget),
			zap.Float64("required", totalRequired),
		)
		return plan, nil
	}

	// Clone the debts; the caller's records are never mutated.
	working := make([]debts.Debt, len(active))
	copy(working, active)

	allocations := initialAllocation(working, monthlyBudget-totalRequired, method)

	warned := make(map[string]bool)
	month := 1

	for anyOpen(working) && month <= constants.MaxSimulationMonths {
		open := openDebts(working)
		snapshot := MonthSnapshot{Month: month}

		for _, idx := range open {
			debt := &working[idx]
			alloc := findAllocation(allocations, debt.ID)
			if alloc == nil {
				continue
			}

			interest := debt.Balance * mathutil.MonthlyRate(debt.AnnualRate)
			payment := alloc.TotalPayment

			var principal float64
			if payment < interest {
				// The shortfall capitalizes; the plan is misconfigured
				// for this debt.
				debt.Balance += interest - payment
				if !warned[debt.ID] {
					warned[debt.ID] = true
					plan.Warnings = append(plan.Warnings, fmt.Sprintf(
						"payment for %s does not cover its monthly interest; the balance is growing", debt.Name))
					s.logger.Warn("payment below monthly interest",
						zap.String("op", "repayment.Simulate"),
						zap.String("debt", debt.Name),
						zap.Int("month", month),
						zap.Float64("payment", payment),
						zap.Float64("interest", interest),
					)
				}
			} else {
				// The final payment is capped at the remaining balance;
				// any excess stays unspent this month. The allocation
				// itself is released in full during redistribution.
				principal = mathutil.Min(payment-interest, debt.Balance)
				debt.Balance = mathutil.Max(0, debt.Balance-principal)
			}

			interestPaid := mathutil.Min(interest, payment)
			actualPayment := principal + interestPaid

			snapshot.Debts = append(snapshot.Debts, DebtMonth{
				ID:               debt.ID,
				Name:             debt.Name,
				RemainingBalance: debt.Balance,
				Payment:          actualPayment,
				InterestPaid:     interestPaid,
			})
			snapshot.TotalPaid += actualPayment
			snapshot.TotalInterestPaid += interestPaid
		}

		for _, debt := range working {
			snapshot.TotalRemaining += debt.Balance
		}
		plan.Timeline = append(plan.Timeline, snapshot)

		// Snowball effect: debts extinguished this month release their
		// whole allocation to the remaining debts before the next month.
		s.redistribute(allocations, working, snapshot, method)

		if snapshot.TotalRemaining <= constants.CurrencyTolerance {
			break
		}
		month++
	}

	if month > constants.MaxSimulationMonths {
		plan.MonthlyAllocation = allocations
		plan.InsufficientBudgetMessage = fmt.Sprintf(
			"repayment did not complete within %d months; the plan is not viable", constants.MaxSimulationMonths)
		s.logger.Warn("simulation hit the safety bound",
			zap.String("op", "repayment.Simulate"),
			zap.Int("maxMonths", constants.MaxSimulationMonths),
		)
		return plan, nil
	}

	plan.IsViable = true
	plan.MonthlyAllocation = allocations

	totals := Aggregate(plan.Timeline, anchor)
	plan.TotalMonths = totals.TotalMonths
	plan.TotalPaid = totals.TotalPaid
	plan.TotalInterestPaid = totals.TotalInterestPaid
	plan.PayoffDate = totals.PayoffDate
	return plan, nil
}

// Simulate is a convenience wrapper around a one-shot Simulator.
func Simulate(logger *zap.Logger, debtList []debts.Debt, monthlyBudget float64, method debts.Method) (Plan, error) {
	return NewSimulator(logger).Simulate(debtList, monthlyBudget, method)
}

func validate(debtList []debts.Debt, monthlyBudget float64, method debts.Method) error {
	if len(debtList) == 0 {
		return fmt.Errorf("no debts provided")
	}
	if monthlyBudget <= 0 {
		return fmt.Errorf("monthly budget must be positive, got %.2f", monthlyBudget)
	}
	if !method.Valid() {
		return fmt.Errorf("unknown prioritization method: %s", method)
	}
	for _, debt := range debtList {
		if debt.Balance < 0 {
			return fmt.Errorf("debt %s has a negative balance", debt.Name)
		}
		if debt.AnnualRate < 0 {
			return fmt.Errorf("debt %s has a negative interest rate", debt.Name)
		}
		if debt.MinimumPayment < 0 {
			return fmt.Errorf("debt %s has a negative minimum payment", debt.Name)
		}
	}
	return nil
}

// initialAllocation gives every debt its required payment and routes the
// remaining budget to the single highest-priority debt, or splits it
// evenly under the equal method.
func initialAllocation(working []debts.Debt, extraBudget float64, method debts.Method) []Allocation {
	allocations := make([]Allocation, len(working))
	for i, debt := range working {
		allocations[i] = Allocation{
			ID:           debt.ID,
			Name:         debt.Name,
			Kind:         debt.Kind,
			MinPayment:   debt.RequiredPayment(),
			TotalPayment: debt.RequiredPayment(),
		}
	}

	if extraBudget > 0 {
		distribute(allocations, prioritizedOpen(working, method), extraBudget, method)
	}
	return allocations
}

// distribute routes an amount to the open debts: evenly under the equal
// method, otherwise entirely to the highest-priority one.
func distribute(allocations []Allocation, open []int, amount float64, method debts.Method) {
	if len(open) == 0 || amount <= 0 {
		return
	}

	if method == debts.MethodEqual {
		share := amount / float64(len(open))
		for _, idx := range open {
			alloc := &allocations[idx]
			alloc.ExtraPayment += share
			alloc.TotalPayment = alloc.MinPayment + alloc.ExtraPayment
		}
		return
	}

	alloc := &allocations[open[0]]
	alloc.ExtraPayment += amount
	alloc.TotalPayment = alloc.MinPayment + alloc.ExtraPayment
}

// redistribute releases the allocations of debts extinguished this month
// and routes them to the remaining debts under the active method. The
// priority order is re-derived from the current balances, so the effect
// compounds month over month.
func (s *Simulator) redistribute(allocations []Allocation, working []debts.Debt, snapshot MonthSnapshot, method debts.Method) {
	var freed float64
	for _, entry := range snapshot.Debts {
		if entry.RemainingBalance != 0 {
			continue
		}
		alloc := findAllocation(allocations, entry.ID)
		if alloc == nil || alloc.TotalPayment == 0 {
			continue
		}
		released := alloc.TotalPayment
		freed += released
		alloc.MinPayment = 0
		alloc.ExtraPayment = 0
		alloc.TotalPayment = 0
		s.logger.Debug("debt extinguished, releasing its payment",
			zap.String("op", "repayment.redistribute"),
			zap.String("debt", entry.Name),
			zap.Int("month", snapshot.Month),
			zap.Float64("released", released),
		)
	}
	if freed == 0 {
		return
	}

	open := prioritizedOpen(working, method)
	distribute(allocations, open, freed, method)
}

// prioritizedOpen returns indices into working for the open debts, ordered
// by the active method.
func prioritizedOpen(working []debts.Debt, method debts.Method) []int {
	ordered := debts.Prioritize(working, method)
	open := make([]int, 0, len(ordered))
	for _, debt := range ordered {
		for idx := range working {
			if working[idx].ID == debt.ID {
				open = append(open, idx)
				break
			}
		}
	}
	return open
}

func openDebts(working []debts.Debt) []int {
	var open []int
	for idx := range working {
		if working[idx].Balance > 0 {
			open = append(open, idx)
		}
	}
	return open
}

func anyOpen(working []debts.Debt) bool {
	for _, debt := range working {
		if debt.Balance > 0 {
			return true
		}
	}
	return false
}

func findAllocation(allocations []Allocation, id string) *Allocation {
	for i := range allocations {
		if allocations[i].ID == id {
			return &allocations[i]
		}
	}
	return nil
}
