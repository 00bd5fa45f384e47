package metrics

import (
	"sort"
	"strings"

	"finsight/pnl-csv/internal/models"
)

// Statement section titles, in presentation order.
const (
	SectionTradingIncome     = "Trading Income"
	SectionCostOfSales       = "Cost of Sales"
	SectionOtherIncome       = "Other Income"
	SectionOperatingExpenses = "Operating Expenses"
)

// unknownLabel stands in for a blank dimension value on statement lines.
const unknownLabel = "Unknown"

// Statement builds a structured profit and loss statement for a slice of
// transactions, with line items grouped by dim. Rows whose classification
// text mentions "other income" move from their sign-derived section into
// the Other Income section, so gross profit stays a trading figure and the
// row is never counted twice. Gross profit is trading income plus cost of
// sales (negative); net profit adds other income and operating expenses.
func Statement(rows []models.Transaction, dim string) models.PLStatement {
	var trading, cogs, other, opex []models.Transaction
	for _, row := range rows {
		switch {
		case isOtherIncome(row):
			other = append(other, row)
		case row.AccountGroup == models.GroupRevenue:
			trading = append(trading, row)
		case row.AccountGroup == models.GroupCOGS:
			cogs = append(cogs, row)
		case row.AccountGroup == models.GroupOPEX:
			opex = append(opex, row)
		}
	}

	st := models.PLStatement{
		Revenue:     buildSection(SectionTradingIncome, trading, dim),
		CostOfSales: buildSection(SectionCostOfSales, cogs, dim),
		OtherIncome: buildSection(SectionOtherIncome, other, dim),
		Expenses:    buildSection(SectionOperatingExpenses, opex, dim),
	}
	st.GrossProfit = st.Revenue.Subtotal.Add(st.CostOfSales.Subtotal)
	st.NetProfit = st.GrossProfit.Add(st.OtherIncome.Subtotal).Add(st.Expenses.Subtotal)
	return st
}

func buildSection(title string, rows []models.Transaction, dim string) models.PLSection {
	section := models.PLSection{Title: title}
	sums := make(map[string]int) // label -> index into Lines

	for _, row := range rows {
		label := row.DimensionValue(dim)
		if label == "" {
			label = unknownLabel
		}
		idx, ok := sums[label]
		if !ok {
			idx = len(section.Lines)
			sums[label] = idx
			section.Lines = append(section.Lines, models.PLLine{Label: label})
		}
		section.Lines[idx].Amount = section.Lines[idx].Amount.Add(row.SignedAmount)
		section.Subtotal = section.Subtotal.Add(row.SignedAmount)
	}

	sort.Slice(section.Lines, func(a, b int) bool {
		if !section.Lines[a].Amount.Equal(section.Lines[b].Amount) {
			return section.Lines[a].Amount.GreaterThan(section.Lines[b].Amount)
		}
		return section.Lines[a].Label < section.Lines[b].Label
	})
	return section
}

func isOtherIncome(row models.Transaction) bool {
	return strings.Contains(strings.ToLower(row.ShortClass), "other income") ||
		strings.Contains(strings.ToLower(row.Class), "other income")
}
