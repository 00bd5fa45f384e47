// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountGroup is the canonical P&L bucket a row belongs to.
type AccountGroup string

const (
	GroupRevenue AccountGroup = "Revenue"
	GroupCOGS    AccountGroup = "COGS"
	GroupOPEX    AccountGroup = "OPEX"
	// GroupNone marks rows outside the P&L (balance sheet or unclassifiable).
	// Such rows never reach the canonical transaction table.
	GroupNone AccountGroup = ""
)

// IsExpense reports whether the group sits on the cost side of the P&L.
func (g AccountGroup) IsExpense() bool {
	return g == GroupCOGS || g == GroupOPEX
}

// IsPnL reports whether the group participates in P&L aggregation at all.
func (g AccountGroup) IsPnL() bool {
	return g == GroupRevenue || g == GroupCOGS || g == GroupOPEX
}

// Source column names recognized at the ingestion boundary.
// Header matching is whitespace-trimmed but otherwise exact.
const (
	ColDate       = "Date"
	ColDateUpper  = "DATE"
	ColAmount     = "AMOUNT"
	ColSide       = "REVENUE/EXPENSES"
	ColShortClass = "Short_CLASS"
	ColClass      = "CLASS"
	ColBudget     = "BUDGET"
)

// Canonical column names produced by the loader and understood by the merger.
const (
	ColCanonDate    = "date"
	ColCanonYear    = "year"
	ColCanonMonth   = "month"
	ColCanonSigned  = "signed_amount"
	ColCanonGroup   = "account_group"
	ColBudgetAmount = "budget_amount"
)

// Descriptive dimensions passed through for grouping. The loader accepts the
// spelling variants the source files are known to use.
const (
	DimAccount = "ACCOUNT"
	DimName    = "NAME"
	DimProject = "PROJECT"
)

// Transaction is one canonical P&L row. Every Transaction that exists has a
// non-null account group and a signed amount whose sign matches that group;
// rows that fail classification are dropped before this type is built.
type Transaction struct {
	Date         time.Time
	Year         int // 0 when the source date was unparseable
	Month        int // 0 when the source date was unparseable
	Amount       decimal.Decimal // unsigned magnitude from the source
	SignedAmount decimal.Decimal // +Revenue, -COGS/-OPEX
	Side         string          // raw REVENUE/EXPENSES text
	ShortClass   string          // raw Short_CLASS text
	Class        string          // raw CLASS text
	AccountGroup AccountGroup
	Account      string // line-item / project identifier
	Name         string // counterparty
	Project      string
}

// DimensionValue returns the value of a descriptive dimension by its
// canonical column name. Unknown dimensions yield "".
func (t Transaction) DimensionValue(dim string) string {
	switch dim {
	case DimAccount:
		return t.Account
	case DimName:
		return t.Name
	case DimProject:
		return t.Project
	default:
		return ""
	}
}

// BudgetRow is one pre-aggregated budget figure. Month 0 signals an
// annual-only budget that must be spread evenly when a monthly slice is
// requested.
type BudgetRow struct {
	Year         int
	Month        int // 0 = annual-only
	AccountGroup AccountGroup
	BudgetAmount decimal.Decimal
}

// Dataset is an immutable snapshot of the session's canonical tables,
// built once per load or upload event.
type Dataset struct {
	Transactions []Transaction
	Budget       []BudgetRow
	// Dimensions lists the descriptive dimension columns present in the
	// source, in canonical spelling. Grouping operations probe this set.
	Dimensions []string
	// ExcludedRows counts source rows dropped as unclassifiable. Exclusion
	// is policy, not failure, but the count is surfaced for observability.
	ExcludedRows int
	// BudgetHasMonths reports whether any budget row carries a month.
	BudgetHasMonths bool
}

// HasDimension reports whether the named dimension column was present in
// the loaded source.
func (d *Dataset) HasDimension(dim string) bool {
	for _, have := range d.Dimensions {
		if have == dim {
			return true
		}
	}
	return false
}
