package pipeline

import (
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

var (
	warningRatio = decimal.NewFromFloat(0.8)
	hundred      = decimal.NewFromInt(100)
)

// EvaluateBudgets compares this month's spend per budgeted category against its
// limit. Only categories in the Warning or Violation state are returned, sorted
// by category. Both thresholds use strict comparison: spending exactly 80% of
// the limit is OK and spending exactly the limit is a Warning.
func EvaluateBudgets(l model.Ledger, now time.Time, budgets model.Budgets) []model.BudgetAlert {
	var alerts []model.BudgetAlert
	for _, r := range BudgetReport(l, now, budgets) {
		if r.Status != model.BudgetOK {
			alerts = append(alerts, r)
		}
	}
	return alerts
}

// BudgetReport returns the month-to-date state of every budgeted category,
// including those that are OK, sorted by category.
func BudgetReport(l model.Ledger, now time.Time, budgets model.Budgets) []model.BudgetAlert {
	if len(budgets) == 0 {
		return nil
	}

	loc := now.Location()
	year, month, _ := now.Date()

	spent := make(map[string]decimal.Decimal)
	for _, e := range l {
		if _, ok := budgets[e.Category]; !ok {
			continue
		}
		y, m, _ := e.Date.In(loc).Date()
		if y != year || m != month {
			continue
		}
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}

	report := make([]model.BudgetAlert, 0, len(budgets))
	for _, cat := range budgets.Categories() {
		limit := budgets[cat]
		total := spent[cat]

		r := model.BudgetAlert{
			Category: cat,
			Limit:    limit,
			Spent:    total,
			Status:   ClassifySpend(total, limit),
		}
		if limit.IsPositive() {
			r.PercentUsed = total.Div(limit).Mul(hundred)
		}
		if r.Status == model.BudgetViolation {
			r.Overspend = total.Sub(limit)
		}
		report = append(report, r)
	}
	return report
}

// ClassifySpend returns the budget status of spent against limit.
func ClassifySpend(spent, limit decimal.Decimal) model.BudgetStatus {
	switch {
	case spent.GreaterThan(limit):
		return model.BudgetViolation
	case spent.GreaterThan(limit.Mul(warningRatio)):
		return model.BudgetWarning
	default:
		return model.BudgetOK
	}
}
