// Package repayment contains the month-by-month debt repayment simulator
// and the aggregation of its timelines into plan summaries.
package repayment

import (
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
)

// Allocation is the working record of how much is directed at one debt in
// the current month. The simulator recomputes allocations as debts are
// extinguished.
type Allocation struct {
	ID           string
	Name         string
	Kind         debts.Kind
	MinPayment   float64
	ExtraPayment float64
	TotalPayment float64
}

// DebtMonth is one debt's entry in a month snapshot.
type DebtMonth struct {
	ID               string
	Name             string
	RemainingBalance float64
	Payment          float64
	InterestPaid     float64
}

// MonthSnapshot records the state of all open debts after one simulated
// month. Debts extinguished in earlier months no longer appear.
type MonthSnapshot struct {
	Month             int
	Debts             []DebtMonth
	TotalRemaining    float64
	TotalPaid         float64
	TotalInterestPaid float64
}

// Plan is the externally visible result of one simulation run.
type Plan struct {
	Strategy          debts.Method
	MonthlyAllocation []Allocation
	Timeline          []MonthSnapshot
	TotalMonths       int
	TotalPaid         float64
	TotalInterestPaid float64
	MonthlyPayment    float64
	PayoffDate        string
	IsViable          bool

	// InsufficientBudgetMessage explains a non-viable outcome: either the
	// budget does not cover the minimum payments, or the simulation hit
	// its safety bound.
	InsufficientBudgetMessage string

	// Warnings lists debts whose payment failed to cover interest at some
	// point, capitalizing the shortfall.
	Warnings []string
}
