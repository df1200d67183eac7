// Package tracker owns the in-memory ledger and budgets and keeps the store in
// sync with them. It is the single entry point used by the CLI and dashboard.
package tracker

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Tracker holds the current ledger snapshot. A snapshot is replaced only after
// the store accepted it, so a failed save leaves the tracker unchanged.
type Tracker struct {
	mu      sync.RWMutex
	store   store.Store
	ledger  model.Ledger
	budgets model.Budgets
	log     logrus.FieldLogger
	now     func() time.Time
}

// New loads the ledger from st. A missing ledger file yields an empty tracker.
func New(st store.Store, budgets model.Budgets, log logrus.FieldLogger) (*Tracker, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	b := make(model.Budgets, len(budgets))
	for cat, limit := range budgets {
		b[cat] = limit
	}

	log.WithField("expenses", len(l)).Debug("ledger loaded")
	return &Tracker{
		store:   st,
		ledger:  l,
		budgets: b,
		log:     log,
		now:     time.Now,
	}, nil
}

// AddExpense records an expense dated now.
func (t *Tracker) AddExpense(category string, amount decimal.Decimal, description string) (model.Expense, []model.BudgetAlert, error) {
	return t.AddExpenseAt(t.now(), category, amount, description)
}

// AddExpenseAt records an expense with an explicit date and returns the current
// budget alerts, which include the new record.
func (t *Tracker) AddExpenseAt(date time.Time, category string, amount decimal.Decimal, description string) (model.Expense, []model.BudgetAlert, error) {
	e := model.Expense{
		Date:        date,
		Category:    strings.TrimSpace(category),
		Amount:      amount,
		Description: description,
	}
	if err := e.Validate(); err != nil {
		return model.Expense{}, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.ledger.Append(e)
	if err := t.store.Save(next); err != nil {
		return model.Expense{}, nil, fmt.Errorf("saving ledger: %w", err)
	}
	t.ledger = next

	t.log.WithFields(logrus.Fields{
		"category": e.Category,
		"amount":   e.Amount.String(),
	}).Info("expense added")

	return e, pipeline.EvaluateBudgets(t.ledger, t.now(), t.budgets), nil
}

// Import appends expenses in order and saves once. Nothing is recorded if any
// expense is invalid or the save fails.
func (t *Tracker) Import(expenses []model.Expense) error {
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expense %d: %w", i+1, err)
		}
	}
	if len(expenses) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.ledger.Append(expenses...)
	if err := t.store.Save(next); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	t.ledger = next
	t.log.WithField("count", len(expenses)).Info("expenses imported")
	return nil
}

// SetBudget sets or replaces the monthly limit for category.
func (t *Tracker) SetBudget(category string, limit decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return model.ErrEmptyCategory
	}
	if !limit.IsPositive() {
		return model.ErrInvalidLimit
	}

	t.mu.Lock()
	t.budgets[category] = limit
	t.mu.Unlock()

	t.log.WithFields(logrus.Fields{
		"category": category,
		"limit":    limit.String(),
	}).Info("budget set")
	return nil
}

// Budgets returns a copy of the budget map.
func (t *Tracker) Budgets() model.Budgets {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(model.Budgets, len(t.budgets))
	for cat, limit := range t.budgets {
		out[cat] = limit
	}
	return out
}

// Ledger returns a copy of the current ledger.
func (t *Tracker) Ledger() model.Ledger {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.Clone()
}

// CheckBudgets evaluates every budget against the current month.
func (t *Tracker) CheckBudgets() []model.BudgetAlert {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pipeline.EvaluateBudgets(t.ledger, t.now(), t.budgets)
}

// Anomalies returns the expenses whose category z-score exceeds threshold.
func (t *Tracker) Anomalies(threshold float64) []model.Anomaly {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pipeline.DetectAnomalies(t.ledger, threshold)
}

// Export writes the ledger as CSV.
func (t *Tracker) Export(w io.Writer) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return store.WriteCSV(w, t.ledger)
}

// Reload re-reads the ledger from the store.
func (t *Tracker) Reload() error {
	l, err := t.store.Load()
	if err != nil {
		return fmt.Errorf("reloading ledger: %w", err)
	}
	t.mu.Lock()
	t.ledger = l
	t.mu.Unlock()
	return nil
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}

// SetClock overrides the time source used for new expenses and budget checks.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	t.now = now
	t.mu.Unlock()
}
