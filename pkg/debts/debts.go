// Package debts normalizes heterogeneous debt records into the uniform
// representation the repayment simulator consumes and orders them under a
// prioritization method.
package debts

// Kind identifies the origin of a normalized debt. The simulator's math is
// identical for both kinds; the tag only informs aggregation and display.
type Kind string

const (
	KindLoan      Kind = "installment-loan"
	KindRevolving Kind = "revolving-credit"
)

// Method selects how extra budget is directed across debts.
type Method string

const (
	// MethodAvalanche targets the highest interest rate first.
	MethodAvalanche Method = "avalanche"

	// MethodSnowball targets the smallest balance first.
	MethodSnowball Method = "snowball"

	// MethodEqual splits extra budget evenly across all debts.
	MethodEqual Method = "equal"
)

// Valid reports whether the method is one of the known prioritization methods.
func (m Method) Valid() bool {
	switch m {
	case MethodAvalanche, MethodSnowball, MethodEqual:
		return true
	}
	return false
}

// Debt is the normalized, simulator-facing representation of one debt.
type Debt struct {
	ID             string
	Name           string
	Kind           Kind
	Balance        float64
	AnnualRate     float64 // nominal annual rate in percent
	MinimumPayment float64
	MonthlyFee     float64
	IsActive       bool
}

// RequiredPayment is the floor payment due each month: the minimum payment
// plus the flat monthly fee.
func (d Debt) RequiredPayment() float64 {
	return d.MinimumPayment + d.MonthlyFee
}
