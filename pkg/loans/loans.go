// Package loans provides amortization calculations for installment loans.
package loans

// Scheme identifies the repayment scheme of an installment loan.
type Scheme string

const (
	// SchemeAnnuity keeps the total payment fixed; the principal portion
	// grows as the interest portion shrinks.
	SchemeAnnuity Scheme = "annuity"

	// SchemeEqualPrincipal keeps the principal portion fixed; the total
	// payment decreases over the term.
	SchemeEqualPrincipal Scheme = "equal-principal"

	// SchemeFixedInstallment spreads simple interest flat over the term.
	SchemeFixedInstallment Scheme = "fixed-installment"

	// SchemeCustomPayment uses a caller-supplied fixed monthly payment.
	SchemeCustomPayment Scheme = "custom-payment"
)

// InterestType identifies whether a loan's rate is fixed or variable.
type InterestType string

const (
	// InterestFixed is a fixed nominal rate.
	InterestFixed InterestType = "fixed"

	// InterestVariable is a variable rate; a fixed spread is added on top
	// of the nominal rate when calculating.
	InterestVariable InterestType = "variable"
)

// Loan describes one installment loan as entered by the user.
type Loan struct {
	ID            string
	Name          string
	Principal     float64
	InterestRate  float64 // annual nominal rate in percent
	TermMonths    int
	Scheme        Scheme
	InterestType  InterestType
	CustomPayment float64 // only used with SchemeCustomPayment
	MonthlyFee    float64
	IsActive      bool
}

// PaymentSplit is the principal/interest breakdown for one period.
type PaymentSplit struct {
	Principal float64
	Interest  float64
}

// AmortizationResult holds the computed figures for one loan.
//
// NonAmortizing marks plans whose payment never exceeds the accrued
// interest; when it is set, TotalInterest and ActualTermMonths carry no
// meaning and must not be used for arithmetic.
type AmortizationResult struct {
	MonthlyPayment   float64
	TotalInterest    float64
	Breakdown        []PaymentSplit
	ActualTermMonths int
	NonAmortizing    bool
}
