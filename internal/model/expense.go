// Package model defines domain types for tally expenses, budgets and summaries.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Input validation errors. Callers report these to the user and leave state untouched.
var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidLimit  = errors.New("invalid budget limit")
	ErrEmptyCategory = errors.New("empty category")
	ErrMissingDate   = errors.New("missing date")
)

// Expense is one recorded spend. Records are never modified after creation.
type Expense struct {
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Description string
}

// Validate checks the ledger invariants for a single record.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Ledger is the ordered, append-only sequence of all expenses.
type Ledger []Expense

// Append returns a new ledger with e added at the end.
// The receiver's backing array is never shared with the result.
func (l Ledger) Append(e ...Expense) Ledger {
	out := make(Ledger, len(l), len(l)+len(e))
	copy(out, l)
	return append(out, e...)
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Total sums every amount in the ledger.
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l {
		total = total.Add(e.Amount)
	}
	return total
}

// TableHeader is the column order of the flat ledger dump.
var TableHeader = []string{"date", "category", "amount", "description"}

// Table dumps the full ledger as one row per record, columns as in TableHeader.
// Amounts keep their exact decimal text; dates are RFC 3339 with nanoseconds.
func (l Ledger) Table() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{
			e.Date.Format(time.RFC3339Nano),
			e.Category,
			e.Amount.String(),
			e.Description,
		})
	}
	return rows
}

// ParseAmount parses a user-supplied amount. A comma is read as the decimal
// separator only when it is the sole separator and is followed by one or two
// digits ("12,5", "40,00"); grouped forms such as "1,000" are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		if strings.ContainsAny(frac, ",.") || strings.Contains(s[:i], ".") ||
			len(frac) < 1 || len(frac) > 2 || strings.Trim(frac, "0123456789") != "" {
			return decimal.Zero, ErrInvalidAmount
		}
		s = s[:i] + "." + frac
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseLimit parses a monthly budget limit, which must be positive.
func ParseLimit(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, ErrInvalidLimit
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidLimit
	}
	return d, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the timestamp formats found in ledger files and exports:
// RFC 3339, "2006-01-02 15:04:05" (local time) and bare dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
