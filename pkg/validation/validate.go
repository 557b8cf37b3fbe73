// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/creditcard"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/format"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/loans"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (valid formats: %s, %s)",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}

// ValidateLoan reports warnings for a single loan definition.
func ValidateLoan(loan loans.Loan) []string {
	var warnings []string

	if loan.Scheme == loans.SchemeCustomPayment && loan.TermMonths > 0 {
		interest := loans.CalculateInterestPayment(loan.Principal, loans.EffectiveRate(loan))
		if loan.CustomPayment > 0 && loan.CustomPayment <= interest {
			warnings = append(warnings, fmt.Sprintf(
				"Loan '%s' custom payment %s does not cover first-month interest %s - balance will not amortize",
				loan.Name, format.Currency(loan.CustomPayment), format.Currency(interest)))
		}
	}

	if loan.InterestRate > 30 {
		warnings = append(warnings, fmt.Sprintf(
			"Loan '%s' has an unusually high interest rate (%s)", loan.Name, format.Percent(loan.InterestRate)))
	}

	return warnings
}

// ValidateCard reports warnings for a single credit card definition.
func ValidateCard(card creditcard.Card) []string {
	var warnings []string

	if card.Limit > 0 && card.Balance > card.Limit {
		warnings = append(warnings, fmt.Sprintf(
			"Card '%s' balance %s exceeds its credit limit %s",
			card.Name, format.Currency(card.Balance), format.Currency(card.Limit)))
	}

	if !card.FullPayment {
		result, err := creditcard.Calculate(card)
		if err == nil && result.NeverPaysOff {
			warnings = append(warnings, fmt.Sprintf(
				"Card '%s' minimum payment never retires the balance - raise the payment or pay in full",
				card.Name))
		}
	}

	return warnings
}

// ValidateBudget reports warnings comparing the monthly budget against the
// combined required minimum payments of the active debts.
func ValidateBudget(budget float64, debtList []debts.Debt) []string {
	var warnings []string

	required := 0.0
	for _, debt := range debts.Active(debtList) {
		required += debt.RequiredPayment()
	}

	if budget+constants.CurrencyTolerance < required {
		warnings = append(warnings, fmt.Sprintf(
			"Monthly budget %s is below the combined minimum payments %s - no plan is viable",
			format.Currency(budget), format.Currency(required)))
	} else if required > 0 && budget < required*1.05 {
		warnings = append(warnings, fmt.Sprintf(
			"Monthly budget %s barely covers the combined minimum payments %s - payoff will be slow",
			format.Currency(budget), format.Currency(required)))
	}

	return warnings
}
