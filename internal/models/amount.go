package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a string amount into a decimal, tolerating the symbols
// and separators that show up in financial exports. Unparseable input yields
// (zero, false) so callers can apply their own exclusion policy.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	amount := strings.TrimSpace(amountStr)
	if amount == "" {
		return decimal.Zero, false
	}

	// Strip currency markers, separators and stray CSV quoting
	replacer := strings.NewReplacer(
		" ", "",
		"'", "",
		"\"", "",
		"₦", "",
		"$", "",
		"€", "",
		"CHF", "",
		"EUR", "",
		"USD", "",
		"NGN", "",
	)
	amount = replacer.Replace(amount)

	// A comma is either a decimal separator (European) or a thousands
	// separator. A dot elsewhere, repeated commas, or a single comma with
	// exactly three trailing digits ("1,000") all mean grouping; only a
	// lone comma with a non-three-digit tail ("1234,56") is a decimal mark.
	if commas := strings.Count(amount, ","); commas > 0 {
		last := strings.LastIndex(amount, ",")
		grouping := strings.Contains(amount, ".") || commas > 1 || len(amount)-last-1 == 3
		if grouping {
			amount = strings.ReplaceAll(amount, ",", "")
		} else {
			amount = strings.Replace(amount, ",", ".", 1)
		}
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return dec, true
}
