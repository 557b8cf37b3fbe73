package loans

import (
	"fmt"
	"math"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/mathutil"
	"go.uber.org/zap"
)

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard annuity formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// EffectiveRate returns the rate used in calculations; variable-rate loans
// carry a fixed spread on top of the nominal rate.
func EffectiveRate(loan Loan) float64 {
	if loan.InterestType == InterestVariable {
		return loan.InterestRate + constants.VariableRateSpread
	}
	return loan.InterestRate
}

func validateInputs(principal, annualInterestRate float64, termMonths int) error {
	if principal < 0 {
		return fmt.Errorf("principal must not be negative, got %.2f", principal)
	}
	if annualInterestRate < 0 {
		return fmt.Errorf("interest rate must not be negative, got %.2f", annualInterestRate)
	}
	if termMonths <= 0 {
		return fmt.Errorf("term must be positive, got %d months", termMonths)
	}
	return nil
}

// ScheduleGenerator computes amortization results with debug tracing of the
// month-by-month breakdowns.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Amortize computes the amortization result for the given parameters under
// the given scheme. customPayment is only consulted for SchemeCustomPayment;
// when it is zero or negative the principal spread flat over the term is
// used instead.
func (g *ScheduleGenerator) Amortize(principal, annualInterestRate float64, termMonths int, scheme Scheme, customPayment float64) (AmortizationResult, error) {
	if err := validateInputs(principal, annualInterestRate, termMonths); err != nil {
		return AmortizationResult{}, err
	}

	g.logger.Debug(fmt.Sprintf("amortizing %.2f at %.2f%% over %d months under %s",
		principal, annualInterestRate, termMonths, scheme),
		zap.String("op", "loans.Amortize"),
	)

	switch scheme {
	case SchemeAnnuity:
		return amortizeAnnuity(principal, annualInterestRate, termMonths), nil
	case SchemeEqualPrincipal:
		return amortizeEqualPrincipal(principal, annualInterestRate, termMonths), nil
	case SchemeFixedInstallment:
		return amortizeFixedInstallment(principal, annualInterestRate, termMonths), nil
	case SchemeCustomPayment:
		if customPayment <= 0 {
			customPayment = principal / float64(termMonths)
		}
		return g.amortizeCustomPayment(principal, annualInterestRate, termMonths, customPayment), nil
	default:
		return AmortizationResult{}, fmt.Errorf("unknown repayment scheme: %s", scheme)
	}
}

// AmortizeLoan computes the amortization result for a Loan record, applying
// the variable-rate spread when applicable.
func (g *ScheduleGenerator) AmortizeLoan(loan Loan) (AmortizationResult, error) {
	return g.Amortize(loan.Principal, EffectiveRate(loan), loan.TermMonths, loan.Scheme, loan.CustomPayment)
}

// Amortize is a convenience wrapper around a one-shot generator.
func Amortize(principal, annualInterestRate float64, termMonths int, scheme Scheme, customPayment float64) (AmortizationResult, error) {
	return NewScheduleGenerator(nil).Amortize(principal, annualInterestRate, termMonths, scheme, customPayment)
}

// AmortizeLoan is a convenience wrapper around a one-shot generator.
func AmortizeLoan(loan Loan) (AmortizationResult, error) {
	return NewScheduleGenerator(nil).AmortizeLoan(loan)
}

func amortizeAnnuity(principal, annualInterestRate float64, termMonths int) AmortizationResult {
	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)

	remainingBalance := principal
	totalInterest := 0.0
	breakdown := make([]PaymentSplit, 0, termMonths)

	for month := 0; month < termMonths; month++ {
		interestPayment := CalculateInterestPayment(remainingBalance, annualInterestRate)
		principalPayment := monthlyPayment - interestPayment

		totalInterest += interestPayment
		remainingBalance -= principalPayment

		breakdown = append(breakdown, PaymentSplit{
			Principal: principalPayment,
			Interest:  interestPayment,
		})
	}

	return AmortizationResult{
		MonthlyPayment:   monthlyPayment,
		TotalInterest:    totalInterest,
		Breakdown:        breakdown,
		ActualTermMonths: termMonths,
	}
}

func amortizeEqualPrincipal(principal, annualInterestRate float64, termMonths int) AmortizationResult {
	monthlyPrincipal := principal / float64(termMonths)

	remainingBalance := principal
	totalInterest := 0.0
	breakdown := make([]PaymentSplit, 0, termMonths)

	for month := 0; month < termMonths; month++ {
		interestPayment := CalculateInterestPayment(remainingBalance, annualInterestRate)

		totalInterest += interestPayment
		remainingBalance -= monthlyPrincipal

		breakdown = append(breakdown, PaymentSplit{
			Principal: monthlyPrincipal,
			Interest:  interestPayment,
		})
	}

	// The first payment is the largest; report it as the monthly payment.
	return AmortizationResult{
		MonthlyPayment:   monthlyPrincipal + CalculateInterestPayment(principal, annualInterestRate),
		TotalInterest:    totalInterest,
		Breakdown:        breakdown,
		ActualTermMonths: termMonths,
	}
}

// amortizeFixedInstallment approximates total interest as simple interest
// and spreads it flat over the term. The per-period breakdown is still
// amortized against the declining balance, so the breakdown's interest sum
// can differ from TotalInterest by a small residual. This mirrors how
// fixed-installment offers are quoted and is intentionally not reconciled.
func amortizeFixedInstallment(principal, annualInterestRate float64, termMonths int) AmortizationResult {
	years := float64(termMonths) / constants.MonthsPerYear
	totalInterest := principal * annualInterestRate * years / constants.PercentageMultiplier
	monthlyPayment := (principal + totalInterest) / float64(termMonths)

	remainingBalance := principal
	breakdown := make([]PaymentSplit, 0, termMonths)

	for month := 0; month < termMonths; month++ {
		interestPayment := CalculateInterestPayment(remainingBalance, annualInterestRate)
		principalPayment := monthlyPayment - interestPayment

		remainingBalance -= principalPayment

		breakdown = append(breakdown, PaymentSplit{
			Principal: principalPayment,
			Interest:  interestPayment,
		})
	}

	return AmortizationResult{
		MonthlyPayment:   monthlyPayment,
		TotalInterest:    totalInterest,
		Breakdown:        breakdown,
		ActualTermMonths: termMonths,
	}
}

func (g *ScheduleGenerator) amortizeCustomPayment(principal, annualInterestRate float64, termMonths int, customPayment float64) AmortizationResult {
	// A payment that does not exceed the first month's interest never
	// reduces the principal.
	if customPayment <= CalculateInterestPayment(principal, annualInterestRate) {
		g.logger.Debug(fmt.Sprintf("custom payment %.2f does not exceed first-month interest on %.2f",
			customPayment, principal),
			zap.String("op", "loans.Amortize"),
		)
		return AmortizationResult{
			MonthlyPayment: customPayment,
			NonAmortizing:  true,
		}
	}

	maxMonths := constants.CustomPaymentTermFactor * termMonths
	remainingBalance := principal
	totalInterest := 0.0
	var breakdown []PaymentSplit

	for month := 0; month < maxMonths && remainingBalance > constants.CurrencyTolerance; month++ {
		interestPayment := CalculateInterestPayment(remainingBalance, annualInterestRate)
		principalPayment := mathutil.Min(customPayment-interestPayment, remainingBalance)

		totalInterest += interestPayment
		remainingBalance -= principalPayment

		breakdown = append(breakdown, PaymentSplit{
			Principal: principalPayment,
			Interest:  interestPayment,
		})
	}

	if remainingBalance > constants.CurrencyTolerance {
		// The payment technically amortizes but not within the safety
		// bound; surface it the same way as a non-amortizing plan.
		g.logger.Debug(fmt.Sprintf("custom payment %.2f did not retire %.2f within %d months",
			customPayment, principal, maxMonths),
			zap.String("op", "loans.Amortize"),
		)
		return AmortizationResult{
			MonthlyPayment: customPayment,
			NonAmortizing:  true,
		}
	}

	return AmortizationResult{
		MonthlyPayment:   customPayment,
		TotalInterest:    totalInterest,
		Breakdown:        breakdown,
		ActualTermMonths: len(breakdown),
	}
}
