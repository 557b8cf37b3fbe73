// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/repayment"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/scenarios"
)

// FindOutcome finds a scenario outcome by name in a comparison.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(comparison scenarios.Comparison, name string) *scenarios.Outcome {
	for i := range comparison.Outcomes {
		if comparison.Outcomes[i].Scenario.Name == name {
			return &comparison.Outcomes[i]
		}
	}
	return nil
}

// FindDelta finds a scenario delta by scenario name in a comparison.
// Returns a pointer to the delta if found, nil otherwise.
func FindDelta(comparison scenarios.Comparison, name string) *scenarios.Delta {
	for i := range comparison.Deltas {
		if comparison.Deltas[i].ScenarioName == name {
			return &comparison.Deltas[i]
		}
	}
	return nil
}

// FindDebtMonth finds a debt's entry in a month snapshot by debt ID.
// Returns a pointer to the entry if found, nil otherwise.
func FindDebtMonth(snapshot repayment.MonthSnapshot, debtID string) *repayment.DebtMonth {
	for i := range snapshot.Debts {
		if snapshot.Debts[i].ID == debtID {
			return &snapshot.Debts[i]
		}
	}
	return nil
}
