package models

import "github.com/shopspring/decimal"

// KPISet holds the headline P&L scalars for a slice.
// COGS and OPEX are carried signed (negative) so EBIT stays additive.
type KPISet struct {
	Revenue     decimal.Decimal
	COGS        decimal.Decimal
	OPEX        decimal.Decimal
	GrossProfit decimal.Decimal
	EBIT        decimal.Decimal
}

// MonthlyPnL is one row of the monthly pivot: account groups as columns,
// derived profit figures alongside. Missing groups are zero, not absent.
type MonthlyPnL struct {
	Year        int
	Month       int
	Revenue     decimal.Decimal
	COGS        decimal.Decimal
	OPEX        decimal.Decimal
	GrossProfit decimal.Decimal
	EBIT        decimal.Decimal
}

// TopNEntry is one ranked dimension value with its summed amount.
type TopNEntry struct {
	Label  string
	Amount decimal.Decimal
}

// TopNBreakdown holds a ranked top-N view over one dimension plus the
// remainder and the top-5 concentration share.
type TopNBreakdown struct {
	Dimension        string
	Entries          []TopNEntry
	Others           decimal.Decimal
	Total            decimal.Decimal
	ConcentrationPct float64 // top-5 share of total, 0 when total is 0
}

// BudgetComparison holds an actual-vs-budget result for a slice.
type BudgetComparison struct {
	Actual      decimal.Decimal
	Budget      decimal.Decimal
	Variance    decimal.Decimal
	VariancePct float64 // 0 when budget is 0
}

// PLLine is one line item of a statement section.
type PLLine struct {
	Label  string
	Amount decimal.Decimal
}

// PLSection is one titled block of the statement with its subtotal.
type PLSection struct {
	Title    string
	Lines    []PLLine
	Subtotal decimal.Decimal
}

// PLStatement is the structured statement of profit and loss for a slice.
// OtherIncome is only rendered when it has lines.
type PLStatement struct {
	Revenue     PLSection
	CostOfSales PLSection
	OtherIncome PLSection
	Expenses    PLSection
	GrossProfit decimal.Decimal
	NetProfit   decimal.Decimal
}
