// Package output provides utilities for formatting and displaying repayment
// plans and scenario comparisons.
package output

import (
	"fmt"
	"strings"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/datetime"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/repayment"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/scenarios"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rendering of a repayment plan.
func PrettyFormat(plan repayment.Plan) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Repayment plan (%s) ---\n", plan.Strategy)
	if !plan.IsViable {
		fmt.Printf("Plan is not viable: %s\n", plan.InsufficientBudgetMessage)
		return
	}
	_, _ = p.Printf("Monthly budget      | $%.2f\n", plan.MonthlyPayment)
	_, _ = p.Printf("Months to debt-free | %d\n", plan.TotalMonths)
	fmt.Printf("Debt-free date      | %s\n", plan.PayoffDate)
	_, _ = p.Printf("Total paid          | $%.2f\n", plan.TotalPaid)
	_, _ = p.Printf("Total interest      | $%.2f\n", plan.TotalInterestPaid)
	for _, warning := range plan.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	fmt.Printf("\nDebt            | Minimum       | Extra         | Total         | Paid Off\n")
	fmt.Printf("____            | _______       | _____         | _____         | ________\n")
	for _, alloc := range plan.MonthlyAllocation {
		_, _ = p.Printf("%-15s | $%.2f | $%.2f | $%.2f | %s\n",
			alloc.Name, alloc.MinPayment, alloc.ExtraPayment, alloc.TotalPayment,
			payoffDate(plan, alloc.ID))
	}

	fmt.Printf("\nMonth | Remaining     | Paid          | Interest\n")
	fmt.Printf("_____ | _________     | ____          | ________\n")
	for _, snapshot := range plan.Timeline {
		_, _ = p.Printf("%5d | $%.2f | $%.2f | $%.2f\n",
			snapshot.Month, snapshot.TotalRemaining, snapshot.TotalPaid, snapshot.TotalInterestPaid)
	}
}

// payoffDate maps a debt's payoff month back to a calendar month by walking
// the plan's final payoff date backwards.
func payoffDate(plan repayment.Plan, debtID string) string {
	month, paid := repayment.PayoffMonth(plan.Timeline, debtID)
	if !paid || month == 0 {
		return "-"
	}
	date, err := datetime.OffsetDate(plan.PayoffDate, datetime.DateTimeLayout, month-plan.TotalMonths)
	if err != nil {
		return "-"
	}
	return date
}

// CsvFormat outputs a repayment plan timeline in comma-separated value
// format, one column pair per debt plus the monthly totals.
func CsvFormat(plan repayment.Plan) {
	fmt.Print(CsvString(plan))
}

// CsvString renders the CSV timeline into a string for callers that need
// it inline, such as the HTTP API.
func CsvString(plan repayment.Plan) string {
	var b strings.Builder
	b.WriteString(`"month"`)
	for _, alloc := range plan.MonthlyAllocation {
		fmt.Fprintf(&b, `,"balance (%s)","payment (%s)"`, alloc.Name, alloc.Name)
	}
	b.WriteString(`,"total remaining","total paid","total interest"`)
	b.WriteString("\n")
	for _, snapshot := range plan.Timeline {
		fmt.Fprintf(&b, `"%d"`, snapshot.Month)
		for _, alloc := range plan.MonthlyAllocation {
			balance, payment := 0.0, 0.0
			for _, entry := range snapshot.Debts {
				if entry.ID == alloc.ID {
					balance, payment = entry.RemainingBalance, entry.Payment
					break
				}
			}
			fmt.Fprintf(&b, `,"%.2f","%.2f"`, balance, payment)
		}
		fmt.Fprintf(&b, `,"%.2f","%.2f","%.2f"`, snapshot.TotalRemaining, snapshot.TotalPaid, snapshot.TotalInterestPaid)
		b.WriteString("\n")
	}
	return b.String()
}

// PrettyComparison outputs a human-readable rendering of a scenario
// comparison.
func PrettyComparison(comparison scenarios.Comparison) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Scenario comparison (baseline %s) ---\n", comparison.BaselineID)
	fmt.Printf("Scenario             | Months | Payoff  | Total Interest\n")
	fmt.Printf("________             | ______ | ______  | ______________\n")
	for _, outcome := range comparison.Outcomes {
		if !outcome.Plan.IsViable {
			fmt.Printf("%-20s | not viable: %s\n", outcome.Scenario.Name, outcome.Plan.InsufficientBudgetMessage)
			continue
		}
		_, _ = p.Printf("%-20s | %6d | %s | $%.2f\n",
			outcome.Scenario.Name, outcome.Plan.TotalMonths, outcome.Plan.PayoffDate, outcome.Plan.TotalInterestPaid)
	}
	for _, delta := range comparison.Deltas {
		if !delta.Viable {
			continue
		}
		_, _ = p.Printf("%s vs baseline: %d months saved, $%.2f interest saved\n",
			delta.ScenarioName, delta.MonthsSaved, delta.InterestSaved)
	}
}

// CsvComparison outputs scenario comparison summary rows in
// comma-separated value format.
func CsvComparison(comparison scenarios.Comparison) {
	fmt.Printf(`"scenario","viable","months","payoff date","total paid","total interest","months saved","interest saved"`)
	fmt.Printf("\n")
	for _, outcome := range comparison.Outcomes {
		monthsSaved, interestSaved := 0, 0.0
		for _, delta := range comparison.Deltas {
			if delta.ScenarioID == outcome.Scenario.ID && delta.Viable {
				monthsSaved, interestSaved = delta.MonthsSaved, delta.InterestSaved
				break
			}
		}
		fmt.Printf(`"%s","%t","%d","%s","%.2f","%.2f","%d","%.2f"`,
			outcome.Scenario.Name, outcome.Plan.IsViable, outcome.Plan.TotalMonths,
			outcome.Plan.PayoffDate, outcome.Plan.TotalPaid, outcome.Plan.TotalInterestPaid,
			monthsSaved, interestSaved)
		fmt.Printf("\n")
	}
}
