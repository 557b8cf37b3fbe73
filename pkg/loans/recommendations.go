package loans

import "math"

// Recommendation groups loans worth targeting first.
type Recommendation struct {
	HighestInterestRate  []Loan
	HighestTotalInterest []Loan
	TopPriority          []Loan
}

// PaymentSummary aggregates the current monthly obligations across loans.
type PaymentSummary struct {
	TotalPayment   float64
	TotalPrincipal float64
	TotalInterest  float64
}

// Recommend identifies the loans with the highest interest rate and the
// highest lifetime interest among the active ones; loans appearing in both
// groups are the top payoff priority. Loans whose plan never amortizes are
// treated as carrying unbounded lifetime interest.
func Recommend(candidates []Loan) (Recommendation, error) {
	var rec Recommendation

	type scored struct {
		loan          Loan
		totalInterest float64
	}
	var results []scored
	for _, loan := range candidates {
		if !loan.IsActive {
			continue
		}
		result, err := AmortizeLoan(loan)
		if err != nil {
			return Recommendation{}, err
		}
		total := result.TotalInterest
		if result.NonAmortizing {
			total = math.MaxFloat64
		}
		results = append(results, scored{loan: loan, totalInterest: total})
	}
	if len(results) == 0 {
		return rec, nil
	}

	maxRate := results[0].loan.InterestRate
	maxInterest := results[0].totalInterest
	for _, item := range results[1:] {
		if item.loan.InterestRate > maxRate {
			maxRate = item.loan.InterestRate
		}
		if item.totalInterest > maxInterest {
			maxInterest = item.totalInterest
		}
	}

	inBoth := make(map[string]bool)
	for _, item := range results {
		if item.loan.InterestRate == maxRate {
			rec.HighestInterestRate = append(rec.HighestInterestRate, item.loan)
			if item.totalInterest == maxInterest {
				inBoth[item.loan.ID] = true
			}
		}
		if item.totalInterest == maxInterest {
			rec.HighestTotalInterest = append(rec.HighestTotalInterest, item.loan)
		}
	}
	for _, loan := range rec.HighestInterestRate {
		if inBoth[loan.ID] {
			rec.TopPriority = append(rec.TopPriority, loan)
		}
	}

	return rec, nil
}

// TotalMonthlyPayment sums the first-month payment, principal, and interest
// portions across all active loans.
func TotalMonthlyPayment(candidates []Loan) (PaymentSummary, error) {
	var summary PaymentSummary
	for _, loan := range candidates {
		if !loan.IsActive {
			continue
		}
		result, err := AmortizeLoan(loan)
		if err != nil {
			return PaymentSummary{}, err
		}
		summary.TotalPayment += result.MonthlyPayment + loan.MonthlyFee
		if len(result.Breakdown) > 0 {
			summary.TotalPrincipal += result.Breakdown[0].Principal
			summary.TotalInterest += result.Breakdown[0].Interest
		}
	}
	return summary, nil
}
