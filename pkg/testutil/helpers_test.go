package testutil

import (
	"testing"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/repayment"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/scenarios"
)

func TestFindOutcome(t *testing.T) {
	comparison := scenarios.Comparison{
		Outcomes: []scenarios.Outcome{
			{Scenario: scenarios.Scenario{ID: "a", Name: "Base"}},
			{Scenario: scenarios.Scenario{ID: "b", Name: "Boost"}},
		},
	}

	if outcome := FindOutcome(comparison, "Boost"); outcome == nil || outcome.Scenario.ID != "b" {
		t.Errorf("FindOutcome(Boost) = %+v, want scenario b", outcome)
	}
	if outcome := FindOutcome(comparison, "Missing"); outcome != nil {
		t.Errorf("FindOutcome(Missing) = %+v, want nil", outcome)
	}
}

func TestFindDelta(t *testing.T) {
	comparison := scenarios.Comparison{
		Deltas: []scenarios.Delta{
			{ScenarioID: "b", ScenarioName: "Boost", MonthsSaved: 4},
		},
	}

	if delta := FindDelta(comparison, "Boost"); delta == nil || delta.MonthsSaved != 4 {
		t.Errorf("FindDelta(Boost) = %+v, want 4 months saved", delta)
	}
	if delta := FindDelta(comparison, "Missing"); delta != nil {
		t.Errorf("FindDelta(Missing) = %+v, want nil", delta)
	}
}

func TestFindDebtMonth(t *testing.T) {
	snapshot := repayment.MonthSnapshot{
		Month: 3,
		Debts: []repayment.DebtMonth{
			{ID: "card", RemainingBalance: 800},
			{ID: "loan", RemainingBalance: 2400},
		},
	}

	if entry := FindDebtMonth(snapshot, "loan"); entry == nil || entry.RemainingBalance != 2400 {
		t.Errorf("FindDebtMonth(loan) = %+v, want balance 2400", entry)
	}
	if entry := FindDebtMonth(snapshot, "missing"); entry != nil {
		t.Errorf("FindDebtMonth(missing) = %+v, want nil", entry)
	}
}
