// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
)

// FormatCurrency formats a dollar amount with thousands separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	s := fmt.Sprintf("%d", whole)
	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(r)
	}

	result := fmt.Sprintf("$%s.%02d", out, frac)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a percentage value with two decimals. The input is
// already scaled to percent (25.0 renders as "25.00%").
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatPnL formats a profit/loss amount with explicit sign. Unbounded
// amounts render as "unlimited".
func FormatPnL(pnl float64) string {
	if math.IsInf(pnl, 0) {
		return "unlimited"
	}
	if pnl >= 0 {
		return "+" + FormatCurrency(pnl)
	}
	return FormatCurrency(pnl)
}

// FormatGreek formats a Greek value with consistent precision.
func FormatGreek(value float64) string {
	return fmt.Sprintf("%+.4f", value)
}
