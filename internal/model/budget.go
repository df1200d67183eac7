package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Budgets maps a category to its monthly spending limit.
type Budgets map[string]decimal.Decimal

// Categories returns the budgeted categories in sorted order.
func (b Budgets) Categories() []string {
	cats := make([]string, 0, len(b))
	for c := range b {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// BudgetStatus classifies a category's spend against its limit.
type BudgetStatus int

const (
	BudgetOK BudgetStatus = iota
	BudgetWarning
	BudgetViolation
)

func (s BudgetStatus) String() string {
	switch s {
	case BudgetWarning:
		return "warning"
	case BudgetViolation:
		return "violation"
	default:
		return "ok"
	}
}

// BudgetAlert is reported for every category in the Warning or Violation state.
type BudgetAlert struct {
	Category    string
	Status      BudgetStatus
	Limit       decimal.Decimal
	Spent       decimal.Decimal
	Overspend   decimal.Decimal // zero unless Status == BudgetViolation
	PercentUsed decimal.Decimal // spent / limit * 100
}

// Message returns the user-facing alert text.
func (a BudgetAlert) Message() string {
	if a.Status == BudgetViolation {
		return "Overspent by " + a.Overspend.StringFixed(2)
	}
	return fmt.Sprintf("Approaching budget limit (%s%%)", a.PercentUsed.StringFixed(1))
}
