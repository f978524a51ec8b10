// Package core holds the domain types shared by handlers, formatters,
// and the storage layer, along with amount parsing and summary math.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a submitted amount string to a decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Negative values and non-numeric input are rejected; zero is allowed.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// AmountToCents converts a decimal amount to integer cents with half-up
// rounding. Storage keeps cents so SQL sums stay exact.
func AmountToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// CentsToAmount converts stored integer cents back to a decimal amount.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
