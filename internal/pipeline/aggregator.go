// Package pipeline computes summaries, trends, anomalies and budget alerts from a ledger snapshot.
// Every function here is pure: it takes the ledger as a parameter and never retains it.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultTrendWindow is the rolling trend window in days.
const DefaultTrendWindow = 7

const dayKeyLayout = "2006-01-02"

// CategorySummaries groups expenses by category and computes sum, count and mean.
// Results are sorted by category name.
func CategorySummaries(l model.Ledger) []model.CategorySummary {
	catMap := make(map[string]*model.CategorySummary)

	for _, e := range l {
		cs, ok := catMap[e.Category]
		if !ok {
			cs = &model.CategorySummary{Category: e.Category, Sum: decimal.Zero}
			catMap[e.Category] = cs
		}
		cs.Sum = cs.Sum.Add(e.Amount)
		cs.Count++
	}

	cats := make([]model.CategorySummary, 0, len(catMap))
	for _, cs := range catMap {
		cs.Mean = cs.Sum.Div(decimal.NewFromInt(int64(cs.Count))).Round(2)
		cs.Sum = cs.Sum.Round(2)
		cats = append(cats, *cs)
	}
	sort.Slice(cats, func(i, j int) bool {
		return cats[i].Category < cats[j].Category
	})

	return cats
}

// MonthlySummaries buckets expenses by calendar month, oldest first.
func MonthlySummaries(l model.Ledger) []model.MonthlySummary {
	type monthKey struct {
		year  int
		month time.Month
	}
	monthMap := make(map[monthKey]*model.MonthlySummary)

	for _, e := range l {
		k := monthKey{e.Date.Year(), e.Date.Month()}
		ms, ok := monthMap[k]
		if !ok {
			ms = &model.MonthlySummary{Year: k.year, Month: k.month, Sum: decimal.Zero}
			monthMap[k] = ms
		}
		ms.Sum = ms.Sum.Add(e.Amount)
		ms.Count++
	}

	months := make([]model.MonthlySummary, 0, len(monthMap))
	for _, ms := range monthMap {
		ms.Sum = ms.Sum.Round(2)
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})

	return months
}

// DailyTotals returns one entry per calendar day from the first to the last
// expense, oldest first. Days without expenses have a zero total.
func DailyTotals(l model.Ledger) []model.DailyTotal {
	if len(l) == 0 {
		return nil
	}

	dayMap := make(map[string]decimal.Decimal)
	var first, last time.Time
	for i, e := range l {
		day := calendarDay(e.Date)
		key := day.Format(dayKeyLayout)
		dayMap[key] = dayMap[key].Add(e.Amount)
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
	}

	// Fill every day in the range so gaps show up as zeros
	var days []model.DailyTotal
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, model.DailyTotal{
			Date:  day,
			Total: dayMap[day.Format(dayKeyLayout)],
		})
	}
	return days
}

// RollingTrend computes a simple moving average of daily totals over window days.
// A window below 1 falls back to DefaultTrendWindow.
func RollingTrend(l model.Ledger, window int) []model.TrendPoint {
	if window < 1 {
		window = DefaultTrendWindow
	}

	days := DailyTotals(l)
	points := make([]model.TrendPoint, len(days))
	windowSum := decimal.Zero
	size := decimal.NewFromInt(int64(window))

	for i, d := range days {
		windowSum = windowSum.Add(d.Total)
		if i >= window {
			windowSum = windowSum.Sub(days[i-window].Total)
		}
		points[i] = model.TrendPoint{
			Date:  d.Date,
			Total: d.Total.InexactFloat64(),
		}
		if i >= window-1 {
			points[i].Average = windowSum.Div(size).InexactFloat64()
			points[i].Valid = true
		}
	}

	return points
}

// Totals computes the headline figures: total spend, record count and the
// average per day that has at least one expense.
func Totals(l model.Ledger) model.LedgerTotals {
	totals := model.LedgerTotals{Count: len(l), Total: l.Total()}

	activeDays := make(map[string]struct{})
	for _, e := range l {
		activeDays[calendarDay(e.Date).Format(dayKeyLayout)] = struct{}{}
	}
	totals.ActiveDays = len(activeDays)

	if totals.ActiveDays > 0 {
		totals.AvgDaily = totals.Total.Div(decimal.NewFromInt(int64(totals.ActiveDays))).Round(2)
	}
	return totals
}

// calendarDay maps t to midnight UTC of its own calendar date, so day
// arithmetic is unaffected by DST and records from different offsets still
// bucket by the date the user saw.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
