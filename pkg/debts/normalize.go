package debts

import (
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/creditcard"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/loans"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/mathutil"
)

// NormalizeLoans maps installment-loan records to normalized debts. The
// minimum payment is floored at one month of interest plus one percent of
// the principal, even when the stated scheme's nominal payment is lower;
// a literal minimum below that floor would stall the simulator forever.
// The monthly fee is carried through unchanged.
func NormalizeLoans(candidates []loans.Loan) ([]Debt, error) {
	var normalized []Debt
	for _, loan := range candidates {
		if !loan.IsActive {
			continue
		}
		result, err := loans.AmortizeLoan(loan)
		if err != nil {
			return nil, err
		}

		rate := loans.EffectiveRate(loan)
		floor := loans.CalculateInterestPayment(loan.Principal, rate) +
			constants.MinimumPrincipalShare*loan.Principal
		minPayment := mathutil.Max(result.MonthlyPayment, floor)

		normalized = append(normalized, Debt{
			ID:             loan.ID,
			Name:           loan.Name,
			Kind:           KindLoan,
			Balance:        loan.Principal,
			AnnualRate:     rate,
			MinimumPayment: minPayment,
			MonthlyFee:     loan.MonthlyFee,
			IsActive:       loan.IsActive,
		})
	}
	return normalized, nil
}

// NormalizeCards maps revolving-credit records to normalized debts using
// the card's effective minimum payment.
func NormalizeCards(cards []creditcard.Card) ([]Debt, error) {
	var normalized []Debt
	for _, card := range cards {
		if !card.IsActive {
			continue
		}
		result, err := creditcard.Calculate(card)
		if err != nil {
			return nil, err
		}

		normalized = append(normalized, Debt{
			ID:             card.ID,
			Name:           card.Name,
			Kind:           KindRevolving,
			Balance:        card.Balance,
			AnnualRate:     card.APR,
			MinimumPayment: result.EffectivePayment,
			IsActive:       card.IsActive,
		})
	}
	return normalized, nil
}

// Combine normalizes loans and cards into a single debt list.
func Combine(loanRecords []loans.Loan, cardRecords []creditcard.Card) ([]Debt, error) {
	loanDebts, err := NormalizeLoans(loanRecords)
	if err != nil {
		return nil, err
	}
	cardDebts, err := NormalizeCards(cardRecords)
	if err != nil {
		return nil, err
	}
	return append(loanDebts, cardDebts...), nil
}
