package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary holds the aggregate for one category. Sum and Mean are rounded to cents.
type CategorySummary struct {
	Category string
	Sum      decimal.Decimal
	Count    int
	Mean     decimal.Decimal
}

// MonthlySummary holds the aggregate for one calendar month.
type MonthlySummary struct {
	Year  int
	Month time.Month
	Sum   decimal.Decimal
	Count int
}

// Label returns the month as "2006-01".
func (m MonthlySummary) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// DailyTotal is the total spend for a single calendar day.
type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

// TrendPoint is one day of the rolling trend. Average is meaningful only when Valid;
// the first window-1 days of a series have no full window behind them.
type TrendPoint struct {
	Date    time.Time
	Total   float64
	Average float64
	Valid   bool
}

// Anomaly is an expense whose amount sits far from its category mean.
type Anomaly struct {
	Expense
	ZScore float64
}

// LedgerTotals holds the headline numbers shown under every summary.
type LedgerTotals struct {
	Count      int
	Total      decimal.Decimal
	ActiveDays int
	AvgDaily   decimal.Decimal // mean over days that have at least one expense
}
