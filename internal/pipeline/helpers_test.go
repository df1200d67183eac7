package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func expense(t *testing.T, date, category, amount string) model.Expense {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	return model.Expense{Date: mustDate(t, date), Category: category, Amount: amt}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
