package metrics

import (
	"sort"

	"finsight/pnl-csv/internal/models"

	"github.com/shopspring/decimal"
)

// concentrationRank is how many leading entries the concentration share
// covers, independent of the requested n.
const concentrationRank = 5

// TopNByDimension ranks the values of one dimension by the absolute
// magnitude of their summed signed amount, descending, so the largest
// contributors lead for revenue and cost slices alike. Entries beyond n pool
// into Others; ConcentrationPct is the share of the top five magnitudes in
// the total magnitude (0 when the total is 0). Callers slice the rows first,
// e.g. to one group and period.
func TopNByDimension(rows []models.Transaction, dim string, n int) models.TopNBreakdown {
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, row := range rows {
		label := row.DimensionValue(dim)
		if label == "" {
			label = "Unknown"
		}
		sums[label] = sums[label].Add(row.SignedAmount)
		total = total.Add(row.SignedAmount)
	}

	ranked := make([]models.TopNEntry, 0, len(sums))
	for label, amount := range sums {
		ranked = append(ranked, models.TopNEntry{Label: label, Amount: amount})
	}
	sort.Slice(ranked, func(a, b int) bool {
		absA, absB := ranked[a].Amount.Abs(), ranked[b].Amount.Abs()
		if !absA.Equal(absB) {
			return absA.GreaterThan(absB)
		}
		return ranked[a].Label < ranked[b].Label
	})

	breakdown := models.TopNBreakdown{Dimension: dim, Total: total}

	topFive := decimal.Zero
	absTotal := decimal.Zero
	for i, entry := range ranked {
		absTotal = absTotal.Add(entry.Amount.Abs())
		if i < concentrationRank {
			topFive = topFive.Add(entry.Amount.Abs())
		}
		if n <= 0 || i < n {
			breakdown.Entries = append(breakdown.Entries, entry)
		} else {
			breakdown.Others = breakdown.Others.Add(entry.Amount)
		}
	}
	breakdown.ConcentrationPct = pct(topFive, absTotal)
	return breakdown
}
