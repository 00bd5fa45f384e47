package metrics_test

import (
	"testing"

	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func budgetRow(year, month int, group models.AccountGroup, amount string) models.BudgetRow {
	return models.BudgetRow{
		Year:         year,
		Month:        month,
		AccountGroup: group,
		BudgetAmount: decimal.RequireFromString(amount),
	}
}

func TestBudgetUtilization(t *testing.T) {
	rows := []models.Transaction{
		tx(2024, 1, models.GroupOPEX, "-300"),
		tx(2024, 2, models.GroupOPEX, "-200"),
		tx(2024, 1, models.GroupRevenue, "1000"),
	}

	// Spend is measured as magnitude against the budget.
	got := metrics.BudgetUtilization(rows, decimal.NewFromInt(1000), models.GroupOPEX)
	assert.InDelta(t, 50.0, got, 0.001)

	assert.Zero(t, metrics.BudgetUtilization(rows, decimal.Zero, models.GroupOPEX))
}

func TestBudgetForSlice_MonthlyBudgets(t *testing.T) {
	budget := []models.BudgetRow{
		budgetRow(2024, 1, models.GroupRevenue, "100"),
		budgetRow(2024, 2, models.GroupRevenue, "150"),
		budgetRow(2024, 3, models.GroupRevenue, "200"),
		budgetRow(2024, 1, models.GroupOPEX, "999"),
	}

	got := metrics.BudgetForSlice(budget, true, models.GroupRevenue, 2024, []int{1, 2})
	assert.Equal(t, "250", got.String())

	// Empty month set means the whole year.
	got = metrics.BudgetForSlice(budget, true, models.GroupRevenue, 2024, nil)
	assert.Equal(t, "450", got.String())
}

func TestBudgetForSlice_AnnualSpread(t *testing.T) {
	budget := []models.BudgetRow{
		budgetRow(2024, 0, models.GroupRevenue, "1200"),
	}

	// One month of an annual budget is a twelfth.
	got := metrics.BudgetForSlice(budget, false, models.GroupRevenue, 2024, []int{5})
	assert.Equal(t, "100", got.String())

	// A quarter is three twelfths.
	got = metrics.BudgetForSlice(budget, false, models.GroupRevenue, 2024, []int{4, 5, 6})
	assert.Equal(t, "300", got.String())

	// No month filter keeps the full annual figure.
	got = metrics.BudgetForSlice(budget, false, models.GroupRevenue, 2024, nil)
	assert.Equal(t, "1200", got.String())
}

func TestBudgetForSlice_NoMatch(t *testing.T) {
	budget := []models.BudgetRow{budgetRow(2024, 0, models.GroupRevenue, "1200")}

	assert.True(t, metrics.BudgetForSlice(budget, false, models.GroupCOGS, 2024, nil).IsZero())
	assert.True(t, metrics.BudgetForSlice(budget, false, models.GroupRevenue, 2023, nil).IsZero())
	assert.True(t, metrics.BudgetForSlice(nil, false, models.GroupRevenue, 2024, nil).IsZero())
}

func TestBudgetVariance(t *testing.T) {
	v := metrics.BudgetVariance(decimal.NewFromInt(1100), decimal.NewFromInt(1000))
	assert.Equal(t, "100", v.Variance.String())
	assert.InDelta(t, 10.0, v.VariancePct, 0.001)

	v = metrics.BudgetVariance(decimal.NewFromInt(1100), decimal.Zero)
	assert.Equal(t, "1100", v.Variance.String())
	assert.Zero(t, v.VariancePct)
}
