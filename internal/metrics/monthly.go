package metrics

import (
	"sort"

	"finsight/pnl-csv/internal/models"

	"github.com/shopspring/decimal"
)

// MonthlyPnL pivots transactions into one row per (year, month), ascending.
// Account groups absent from a month contribute zero, so every row carries
// the full set of columns. Rows without a resolvable period (month 0 from an
// unparseable date) stay out of the pivot; they still count in overall KPIs.
func MonthlyPnL(rows []models.Transaction) []models.MonthlyPnL {
	type key struct{ year, month int }
	byPeriod := make(map[key]*models.MonthlyPnL)

	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		k := key{year: row.Year, month: row.Month}
		entry, ok := byPeriod[k]
		if !ok {
			entry = &models.MonthlyPnL{Year: row.Year, Month: row.Month}
			byPeriod[k] = entry
		}
		switch row.AccountGroup {
		case models.GroupRevenue:
			entry.Revenue = entry.Revenue.Add(row.SignedAmount)
		case models.GroupCOGS:
			entry.COGS = entry.COGS.Add(row.SignedAmount)
		case models.GroupOPEX:
			entry.OPEX = entry.OPEX.Add(row.SignedAmount)
		}
	}

	out := make([]models.MonthlyPnL, 0, len(byPeriod))
	for _, entry := range byPeriod {
		entry.GrossProfit = entry.Revenue.Add(entry.COGS)
		entry.EBIT = entry.GrossProfit.Add(entry.OPEX)
		out = append(out, *entry)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Year != out[b].Year {
			return out[a].Year < out[b].Year
		}
		return out[a].Month < out[b].Month
	})
	return out
}

// MonthlySeries materializes a January-to-December series of signed sums
// for one account group within one year. GroupNone means all groups.
// Months with no activity are zero, never missing.
func MonthlySeries(rows []models.Transaction, year int, group models.AccountGroup) [12]decimal.Decimal {
	var series [12]decimal.Decimal
	for _, row := range rows {
		if row.Year != year || row.Month < 1 || row.Month > 12 {
			continue
		}
		if group != models.GroupNone && row.AccountGroup != group {
			continue
		}
		series[row.Month-1] = series[row.Month-1].Add(row.SignedAmount)
	}
	return series
}

// Cumulative returns the running total of a monthly series.
func Cumulative(series [12]decimal.Decimal) [12]decimal.Decimal {
	var out [12]decimal.Decimal
	running := decimal.Zero
	for i, v := range series {
		running = running.Add(v)
		out[i] = running
	}
	return out
}

// PivotRow is one row of a dimension-by-month pivot.
type PivotRow struct {
	Label  string
	Months [12]decimal.Decimal
	Total  decimal.Decimal
}

// PivotByDimension builds a dimension × calendar-month pivot of signed
// amounts for one year. All twelve month columns are materialized; rows are
// ordered by descending total. Blank dimension values pool under "Unknown".
func PivotByDimension(rows []models.Transaction, dim string, year int) []PivotRow {
	byLabel := make(map[string]*PivotRow)
	for _, row := range rows {
		if row.Year != year || row.Month < 1 || row.Month > 12 {
			continue
		}
		label := row.DimensionValue(dim)
		if label == "" {
			label = "Unknown"
		}
		entry, ok := byLabel[label]
		if !ok {
			entry = &PivotRow{Label: label}
			byLabel[label] = entry
		}
		entry.Months[row.Month-1] = entry.Months[row.Month-1].Add(row.SignedAmount)
		entry.Total = entry.Total.Add(row.SignedAmount)
	}

	out := make([]PivotRow, 0, len(byLabel))
	for _, entry := range byLabel {
		out = append(out, *entry)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].Total.Equal(out[b].Total) {
			return out[a].Total.GreaterThan(out[b].Total)
		}
		return out[a].Label < out[b].Label
	})
	return out
}
