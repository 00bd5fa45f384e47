// Package classifier maps raw row descriptors onto the canonical
// Revenue/COGS/OPEX taxonomy and normalizes unsigned source amounts into
// signed P&L values. Classification is a pure function of the three inputs:
// the same (side, short class, class) always yields the same group,
// independent of row order or any other row.
package classifier

import (
	"strings"

	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/store"

	"github.com/shopspring/decimal"
)

// Built-in short-class codes on the expense side. The short code checks run
// before the full-text checks: source data may carry both a populated short
// code and a differently-worded class string, and the code wins.
var builtinShortClass = map[string]models.AccountGroup{
	"COS": models.GroupCOGS,
	"G&A": models.GroupOPEX,
	"GA":  models.GroupOPEX,
	"GNA": models.GroupOPEX,
}

// Classifier resolves account groups from raw classification fields.
// The zero value is not usable; construct with New.
type Classifier struct {
	shortClass map[string]models.AccountGroup
}

// New builds a Classifier from the built-in rules extended by the given
// overrides. Overrides add short codes; they cannot shadow the built-ins or
// the side checks.
func New(overrides store.RuleOverrides) *Classifier {
	rules := make(map[string]models.AccountGroup, len(builtinShortClass)+len(overrides.ShortClass))
	for code, group := range overrides.ShortClass {
		rules[strings.ToUpper(strings.TrimSpace(code))] = models.AccountGroup(group)
	}
	for code, group := range builtinShortClass {
		rules[code] = group
	}
	return &Classifier{shortClass: rules}
}

// Classify maps a row's descriptive fields to an account group.
//
// Priority order: the revenue/expenses side decides first; within expenses the
// short-class code is preferred, then the full class text. Anything outside
// revenue/expenses (assets, liabilities, blank) is GroupNone and stays out of
// the P&L entirely.
func (c *Classifier) Classify(side, shortClass, classText string) models.AccountGroup {
	sideNorm := strings.ToLower(strings.TrimSpace(side))
	if sideNorm == "revenue" {
		return models.GroupRevenue
	}
	if sideNorm != "expenses" {
		return models.GroupNone
	}

	shortNorm := strings.ToUpper(strings.TrimSpace(shortClass))
	if group, ok := c.shortClass[shortNorm]; ok {
		return group
	}

	classNorm := strings.ToLower(strings.TrimSpace(classText))
	if strings.HasPrefix(classNorm, "cost of sales") {
		return models.GroupCOGS
	}
	if strings.Contains(classNorm, "general & administrative") ||
		strings.Contains(classNorm, "general and administrative") {
		return models.GroupOPEX
	}

	return models.GroupNone
}

// SignedAmount converts an unsigned magnitude and its account group into a
// signed P&L amount: Revenue positive, COGS and OPEX negative. The second
// return is false for GroupNone, whose rows are excluded from the canonical
// set rather than carried with a zero.
func SignedAmount(amount decimal.Decimal, group models.AccountGroup) (decimal.Decimal, bool) {
	switch group {
	case models.GroupRevenue:
		return amount.Abs(), true
	case models.GroupCOGS, models.GroupOPEX:
		return amount.Abs().Neg(), true
	default:
		return decimal.Zero, false
	}
}
