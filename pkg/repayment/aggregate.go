package repayment

import (
	"time"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/datetime"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/mathutil"
)

// Totals summarizes a timeline independently of a full Plan.
type Totals struct {
	TotalMonths       int
	TotalPaid         float64
	TotalInterestPaid float64
	PayoffDate        string
}

// Aggregate reduces a timeline into its summary totals. The payoff date is
// the anchor moved forward by the timeline length in calendar months.
func Aggregate(timeline []MonthSnapshot, anchor time.Time) Totals {
	totals := Totals{TotalMonths: len(timeline)}
	for _, snapshot := range timeline {
		totals.TotalPaid += snapshot.TotalPaid
		totals.TotalInterestPaid += snapshot.TotalInterestPaid
	}
	totals.PayoffDate = datetime.AddMonths(anchor, totals.TotalMonths)
	return totals
}

// PayoffMonth returns the month a debt's balance first reports zero. A debt
// that never appears in the timeline was extinguished before simulation
// start and reports month 0. The second return value is false only when the
// debt appears but never reaches zero.
func PayoffMonth(timeline []MonthSnapshot, debtID string) (int, bool) {
	seen := false
	for _, snapshot := range timeline {
		for _, entry := range snapshot.Debts {
			if entry.ID != debtID {
				continue
			}
			seen = true
			if mathutil.IsZero(entry.RemainingBalance) {
				return snapshot.Month, true
			}
		}
	}
	if !seen {
		return 0, true
	}
	return 0, false
}

// CreditCardFreeMonth returns the first month by which every revolving
// debt in the plan is extinguished, and false when any revolving debt
// remains open at the end of the timeline. A plan with no revolving debts
// reports month 0.
func (p Plan) CreditCardFreeMonth() (int, bool) {
	freeMonth := 0
	for _, alloc := range p.MonthlyAllocation {
		if alloc.Kind != debts.KindRevolving {
			continue
		}
		month, paid := PayoffMonth(p.Timeline, alloc.ID)
		if !paid {
			return 0, false
		}
		if month > freeMonth {
			freeMonth = month
		}
	}
	return freeMonth, true
}
