package config

import (
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/creditcard"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/loans"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/scenarios"
)

// ToLoan converts a loan config entry to its domain representation.
func (lc LoanConfig) ToLoan() loans.Loan {
	return loans.Loan{
		ID:            lc.ID,
		Name:          lc.Name,
		Principal:     lc.Principal,
		InterestRate:  lc.InterestRate,
		TermMonths:    lc.TermMonths,
		Scheme:        loans.Scheme(lc.Scheme),
		InterestType:  loans.InterestType(lc.InterestType),
		CustomPayment: lc.CustomPayment,
		MonthlyFee:    lc.MonthlyFee,
		IsActive:      lc.Active,
	}
}

// ToCard converts a card config entry to its domain representation.
func (cc CardConfig) ToCard() creditcard.Card {
	return creditcard.Card{
		ID:                cc.ID,
		Name:              cc.Name,
		Balance:           cc.Balance,
		Limit:             cc.Limit,
		APR:               cc.APR,
		MinPayment:        cc.MinPayment,
		MinPaymentPercent: cc.MinPaymentPercent,
		FullPayment:       cc.FullPayment,
		IsActive:          cc.Active,
	}
}

// ToLoans converts every configured loan.
func (conf *Configuration) ToLoans() []loans.Loan {
	loanRecords := make([]loans.Loan, len(conf.Loans))
	for i, lc := range conf.Loans {
		loanRecords[i] = lc.ToLoan()
	}
	return loanRecords
}

// ToCards converts every configured credit card.
func (conf *Configuration) ToCards() []creditcard.Card {
	cardRecords := make([]creditcard.Card, len(conf.CreditCards))
	for i, cc := range conf.CreditCards {
		cardRecords[i] = cc.ToCard()
	}
	return cardRecords
}

// ToDebts normalizes the configured loans and cards into the unified debt
// list the simulator consumes.
func (conf *Configuration) ToDebts() ([]debts.Debt, error) {
	return debts.Combine(conf.ToLoans(), conf.ToCards())
}

// ToScenarios converts the configured what-if variants. The returned list
// always starts with the plan itself as the baseline scenario.
func (conf *Configuration) ToScenarios() []scenarios.Scenario {
	scenarioList := make([]scenarios.Scenario, 0, len(conf.Scenarios)+1)
	scenarioList = append(scenarioList, scenarios.Scenario{
		ID:            BaselineScenarioID,
		Name:          "Current plan",
		MonthlyBudget: conf.Plan.MonthlyBudget,
		Strategy:      debts.Method(conf.Plan.Strategy),
	})
	for _, sc := range conf.Scenarios {
		scenarioList = append(scenarioList, scenarios.Scenario{
			ID:                 sc.ID,
			Name:               sc.Name,
			MonthlyBudget:      sc.MonthlyBudget,
			AnnualExtraPayment: sc.AnnualExtraPayment,
			RateAdjustment:     sc.RateAdjustment,
			Strategy:           debts.Method(sc.Strategy),
		})
	}
	return scenarioList
}

// BaselineScenarioID identifies the implicit baseline built from the plan
// itself.
const BaselineScenarioID = "plan-baseline"
