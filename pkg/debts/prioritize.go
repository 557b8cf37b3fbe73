package debts

import "sort"

// Active returns the debts that participate in a simulation: active ones
// with a positive balance.
func Active(candidates []Debt) []Debt {
	var active []Debt
	for _, debt := range candidates {
		if debt.IsActive && debt.Balance > 0 {
			active = append(active, debt)
		}
	}
	return active
}

// Prioritize orders the active, positive-balance debts under the given
// method. Avalanche sorts by descending rate, snowball by ascending
// balance; both keep the input order on ties. Equal does not reorder
// because its extra budget is split evenly rather than targeted.
func Prioritize(candidates []Debt, method Method) []Debt {
	active := Active(candidates)
	if len(active) == 0 {
		return nil
	}

	switch method {
	case MethodAvalanche:
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].AnnualRate > active[j].AnnualRate
		})
	case MethodSnowball:
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].Balance < active[j].Balance
		})
	}
	return active
}
