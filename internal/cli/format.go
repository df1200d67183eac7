// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount to two places with thousands separators and a
// currency symbol. e.g., 1234.5 -> "₹1,234.50", -12 -> "-₹12.00"
func FormatMoney(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg(), symbol)
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return symbol + fixed
	}
	return symbol + FormatNumber(n) + "." + frac
}

// FormatMoneyFloat is FormatMoney for values that are already float64, such as
// trend averages.
func FormatMoneyFloat(f float64, symbol string) string {
	return FormatMoney(decimal.NewFromFloat(f), symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent, e.g. 85 -> "85.0%".
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatZScore formats a z-score with explicit sign, e.g. "+2.35σ".
func FormatZScore(z float64) string {
	return fmt.Sprintf("%+.2fσ", z)
}

// FormatDate formats an expense date for tables.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime formats an expense timestamp for tables.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(weekday time.Weekday) string {
	if weekday < time.Sunday || weekday > time.Saturday {
		return "???"
	}
	return weekday.String()[:3]
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
