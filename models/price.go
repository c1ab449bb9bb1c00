package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in rupees using Indian digit grouping
// (₹1,499 / ₹1,25,000 / ₹999.50). Whole amounts drop the paise.
func FormatINR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	amount = amount.Abs()

	var whole, frac string
	if amount.Equal(amount.Truncate(0)) {
		whole = amount.StringFixed(0)
	} else {
		parts := strings.SplitN(amount.StringFixed(2), ".", 2)
		whole, frac = parts[0], parts[1]
	}

	out := "₹" + groupIndian(whole)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts separators after the last three digits, then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
