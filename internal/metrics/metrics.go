// Package metrics computes P&L aggregates over canonical transactions.
// Every function is pure: it never mutates its inputs and returns zero
// values rather than errors on empty input. All ratio helpers share one
// division policy: a zero denominator yields 0, never an error or infinity.
package metrics

import (
	"finsight/pnl-csv/internal/dateutils"
	"finsight/pnl-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DimensionPriority is the probe order used when a view needs one
// descriptive dimension and the dataset may carry several.
var DimensionPriority = []string{models.DimAccount, models.DimProject, models.DimName}

// KPIs sums the headline scalars for a slice of transactions. COGS and
// OPEX come back signed (negative) so the profit figures stay additive.
func KPIs(rows []models.Transaction) models.KPISet {
	var k models.KPISet
	for _, row := range rows {
		switch row.AccountGroup {
		case models.GroupRevenue:
			k.Revenue = k.Revenue.Add(row.SignedAmount)
		case models.GroupCOGS:
			k.COGS = k.COGS.Add(row.SignedAmount)
		case models.GroupOPEX:
			k.OPEX = k.OPEX.Add(row.SignedAmount)
		}
	}
	k.GrossProfit = k.Revenue.Add(k.COGS)
	k.EBIT = k.GrossProfit.Add(k.OPEX)
	return k
}

// PeriodSlice filters transactions down to a reporting period. Filters are
// AND-composed; a zero year, quarter or month means "no filter on that
// axis". Quarters map to calendar months Q1={1,2,3} through Q4={10,11,12}.
func PeriodSlice(rows []models.Transaction, year, quarter, month int) []models.Transaction {
	var quarterMonths map[int]bool
	if quarter >= 1 && quarter <= 4 {
		quarterMonths = make(map[int]bool, 3)
		for _, m := range dateutils.MonthsOfQuarter(quarter) {
			quarterMonths[m] = true
		}
	}

	out := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if year != 0 && row.Year != year {
			continue
		}
		if quarterMonths != nil && !quarterMonths[row.Month] {
			continue
		}
		if month != 0 && row.Month != month {
			continue
		}
		out = append(out, row)
	}
	return out
}

// GroupSlice keeps only transactions belonging to one account group.
func GroupSlice(rows []models.Transaction, group models.AccountGroup) []models.Transaction {
	out := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if row.AccountGroup == group {
			out = append(out, row)
		}
	}
	return out
}

// YoYChange is the year-over-year percentage change, 0 when there is no
// prior-period figure to compare against.
func YoYChange(current, prior decimal.Decimal) float64 {
	if prior.IsZero() {
		return 0
	}
	return pct(current.Sub(prior), prior.Abs())
}

// MarginPct expresses part as a percentage of revenue, 0 on zero revenue.
func MarginPct(part, revenue decimal.Decimal) float64 {
	return pct(part, revenue)
}

// PreferredDimension picks the first dimension from DimensionPriority the
// dataset actually carries. ok is false when none is available.
func PreferredDimension(available []string) (string, bool) {
	have := make(map[string]bool, len(available))
	for _, dim := range available {
		have[dim] = true
	}
	for _, dim := range DimensionPriority {
		if have[dim] {
			return dim, true
		}
	}
	return "", false
}

func pct(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return f
}
