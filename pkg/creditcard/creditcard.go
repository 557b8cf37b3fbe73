// Package creditcard provides calculations for revolving credit-card debt.
package creditcard

import (
	"fmt"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/mathutil"
	"go.uber.org/zap"
)

// Card describes one revolving credit account as entered by the user.
type Card struct {
	ID                string
	Name              string
	Balance           float64
	Limit             float64
	APR               float64 // annual percentage rate
	MinPayment        float64 // flat minimum payment floor
	MinPaymentPercent float64 // percentage-of-balance minimum payment rule
	FullPayment       bool    // balance is paid in full every month
	IsActive          bool
}

// Result holds the computed figures for one card.
//
// NeverPaysOff marks balances whose minimum payment never exceeds the
// monthly interest; PayoffMonths and TotalInterest carry no meaning when
// it is set.
type Result struct {
	MonthlyInterest  float64
	TotalInterest    float64
	PayoffMonths     int
	NeverPaysOff     bool
	UtilizationRate  float64
	EffectivePayment float64
}

// Summary aggregates figures across a set of active cards.
type Summary struct {
	TotalBalance         float64
	TotalLimit           float64
	TotalUtilization     float64
	TotalMinPayment      float64
	TotalMonthlyInterest float64
}

// Calculator computes card results with debug tracing of the balance-decay
// iteration.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new calculator instance.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// MonthlyInterest returns one month of interest accrual on the balance.
func MonthlyInterest(balance, apr float64) float64 {
	return balance * mathutil.MonthlyRate(apr)
}

// EffectiveMinPayment returns the minimum payment due: the greater of the
// flat floor and the percentage-of-balance rule.
func EffectiveMinPayment(balance, minPayment, minPaymentPercent float64) float64 {
	percentPayment := balance * minPaymentPercent / constants.PercentageMultiplier
	return mathutil.Max(minPayment, percentPayment)
}

// UtilizationRate returns balance over limit, or 0 when no limit is set.
func UtilizationRate(balance, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return balance / limit
}

// decay iterates the balance month by month under the minimum-payment rule
// and reports the months to payoff and the accrued interest. The iteration
// is bounded; a plan that cannot finish inside the bound, or whose payment
// never exceeds the interest, reports neverPaysOff.
func (c *Calculator) decay(name string, balance, apr, minPayment, minPaymentPercent float64) (months int, totalInterest float64, neverPaysOff bool) {
	if balance <= 0 {
		return 0, 0, false
	}

	remaining := balance
	for remaining > constants.CurrencyTolerance && months < constants.MaxCardPayoffMonths {
		interest := MonthlyInterest(remaining, apr)
		payment := EffectiveMinPayment(remaining, minPayment, minPaymentPercent)

		if payment <= interest {
			c.logger.Debug(fmt.Sprintf("minimum payment %.2f on %s never exceeds its monthly interest %.2f",
				payment, name, interest),
				zap.String("op", "creditcard.Calculate"),
			)
			return 0, 0, true
		}

		totalInterest += interest
		remaining = mathutil.Max(0, remaining+interest-payment)
		months++
	}

	if remaining > constants.CurrencyTolerance {
		c.logger.Debug(fmt.Sprintf("%s balance %.2f not retired within %d months",
			name, balance, constants.MaxCardPayoffMonths),
			zap.String("op", "creditcard.Calculate"),
		)
		return 0, 0, true
	}
	return months, totalInterest, false
}

// Calculate produces the full result for one card.
func (c *Calculator) Calculate(card Card) (Result, error) {
	if card.Balance < 0 {
		return Result{}, fmt.Errorf("card balance must not be negative, got %.2f", card.Balance)
	}
	if card.APR < 0 {
		return Result{}, fmt.Errorf("card APR must not be negative, got %.2f", card.APR)
	}

	monthlyInterest := MonthlyInterest(card.Balance, card.APR)

	result := Result{
		MonthlyInterest: monthlyInterest,
		UtilizationRate: UtilizationRate(card.Balance, card.Limit),
	}

	// Paying in full clears the balance next cycle and accrues no
	// revolving interest cost.
	if card.FullPayment {
		result.EffectivePayment = card.Balance + monthlyInterest
		if card.Balance > 0 {
			result.PayoffMonths = 1
		}
		return result, nil
	}

	result.EffectivePayment = EffectiveMinPayment(card.Balance, card.MinPayment, card.MinPaymentPercent)
	result.PayoffMonths, result.TotalInterest, result.NeverPaysOff =
		c.decay(card.Name, card.Balance, card.APR, card.MinPayment, card.MinPaymentPercent)
	return result, nil
}

// Calculate is a convenience wrapper around a one-shot calculator.
func Calculate(card Card) (Result, error) {
	return NewCalculator(nil).Calculate(card)
}

// Summarize aggregates balances, limits, and payment obligations across the
// active cards.
func (c *Calculator) Summarize(cards []Card) (Summary, error) {
	var summary Summary
	for _, card := range cards {
		if !card.IsActive {
			continue
		}
		result, err := c.Calculate(card)
		if err != nil {
			return Summary{}, err
		}
		summary.TotalBalance += card.Balance
		summary.TotalLimit += card.Limit
		summary.TotalMinPayment += result.EffectivePayment
		summary.TotalMonthlyInterest += result.MonthlyInterest
	}
	summary.TotalUtilization = UtilizationRate(summary.TotalBalance, summary.TotalLimit)
	return summary, nil
}

// Summarize is a convenience wrapper around a one-shot calculator.
func Summarize(cards []Card) (Summary, error) {
	return NewCalculator(nil).Summarize(cards)
}
