package metrics

import (
	"finsight/pnl-csv/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetUtilization reports how much of a budget figure the actuals of one
// account group consume, as a percentage of absolute spend. Zero budget
// yields 0, not a division error.
func BudgetUtilization(rows []models.Transaction, budget decimal.Decimal, group models.AccountGroup) float64 {
	actual := decimal.Zero
	for _, row := range rows {
		if row.AccountGroup == group {
			actual = actual.Add(row.SignedAmount)
		}
	}
	return pct(actual.Abs(), budget)
}

// BudgetForSlice resolves the planned figure for one account group over a
// period. Month-level budgets sum the matching months directly. Annual-only
// budgets are spread evenly: annual / 12 × months covered by the slice.
// A zero year matches all years; an empty month set means the full year.
func BudgetForSlice(budget []models.BudgetRow, hasMonths bool, group models.AccountGroup, year int, months []int) decimal.Decimal {
	inSlice := make(map[int]bool, len(months))
	for _, m := range months {
		inSlice[m] = true
	}

	total := decimal.Zero
	for _, row := range budget {
		if row.AccountGroup != group {
			continue
		}
		if year != 0 && row.Year != year {
			continue
		}
		if hasMonths && len(inSlice) > 0 && !inSlice[row.Month] {
			continue
		}
		total = total.Add(row.BudgetAmount)
	}

	if hasMonths {
		return total
	}
	monthsCovered := len(months)
	if monthsCovered == 0 {
		monthsCovered = 12
	}
	return total.Div(decimal.NewFromInt(12)).Mul(decimal.NewFromInt(int64(monthsCovered)))
}

// BudgetVariance compares an actual figure with its budget. The percentage
// is relative to the budget and 0 when no budget exists.
func BudgetVariance(actual, budget decimal.Decimal) models.BudgetComparison {
	variance := actual.Sub(budget)
	return models.BudgetComparison{
		Actual:      actual,
		Budget:      budget,
		Variance:    variance,
		VariancePct: pct(variance, budget),
	}
}
