package cmd

import (
	"fmt"
	"io"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/shopspring/decimal"
)

// Summary periods accepted by the summary command and menu.
const (
	periodMonth    = "month"
	periodCategory = "category"
)

var hundred = decimal.NewFromInt(100)

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}

func printSummary(w io.Writer, l model.Ledger, period, currency string) {
	if len(l) == 0 {
		fmt.Fprintln(w, "\n  No expenses recorded yet.")
		return
	}

	fmt.Fprintln(w)
	if period == periodCategory {
		cats := pipeline.CategorySummaries(l)
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{
				c.Category,
				cli.FormatMoney(c.Sum, currency),
				cli.FormatNumber(int64(c.Count)),
				cli.FormatMoney(c.Mean, currency),
			})
		}
		fmt.Fprint(w, cli.RenderTable(cli.Table{
			Title:   "Category Summary",
			Headers: []string{"Category", "Sum", "Count", "Mean"},
			Rows:    rows,
		}))
	} else {
		months := pipeline.MonthlySummaries(l)
		rows := make([][]string, 0, len(months))
		for _, m := range months {
			rows = append(rows, []string{
				m.Label(),
				cli.FormatMoney(m.Sum, currency),
				cli.FormatNumber(int64(m.Count)),
			})
		}
		fmt.Fprint(w, cli.RenderTable(cli.Table{
			Title:   "Monthly Summary",
			Headers: []string{"Month", "Sum", "Count"},
			Rows:    rows,
		}))
	}

	totals := pipeline.Totals(l)
	fmt.Fprintf(w, "\n  Total Spent:   %s\n", cli.FormatMoney(totals.Total, currency))
	fmt.Fprintf(w, "  Average Daily: %s\n", cli.FormatMoney(totals.AvgDaily, currency))
}

func printAlerts(w io.Writer, alerts []model.BudgetAlert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintln(w, "\n  Budget Alerts:")
	for _, a := range alerts {
		fmt.Fprintf(w, "  %s\n", cli.RenderAlert(a))
	}
}

func printBudgetReport(w io.Writer, report []model.BudgetAlert, currency string) {
	if len(report) == 0 {
		fmt.Fprintln(w, "\n  No budgets set.")
		return
	}

	rows := make([][]string, 0, len(report))
	for _, r := range report {
		rows = append(rows, []string{
			r.Category,
			cli.FormatMoney(r.Spent, currency),
			cli.FormatMoney(r.Limit, currency),
			cli.FormatPercent(r.PercentUsed),
			cli.RenderBudgetBar(r, 20),
			r.Status.String(),
		})
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:     "Budgets (this month)",
		Headers:   []string{"Category", "Spent", "Limit", "Used", "", "Status"},
		Rows:      rows,
		LeftAlign: []int{4, 5},
	}))
}

func printAnomalies(w io.Writer, anomalies []model.Anomaly, currency string) {
	if len(anomalies) == 0 {
		fmt.Fprintln(w, "\n  No unusual spending patterns detected.")
		return
	}

	rows := make([][]string, 0, len(anomalies))
	for _, a := range anomalies {
		rows = append(rows, []string{
			cli.FormatDateTime(a.Date),
			a.Category,
			cli.FormatMoney(a.Amount, currency),
			cli.FormatZScore(a.ZScore),
		})
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:     "Spending Anomalies",
		Headers:   []string{"Date", "Category", "Amount", "Z-Score"},
		Rows:      rows,
		LeftAlign: []int{1},
	}))
}

func printTrend(w io.Writer, l model.Ledger, window int, currency string) {
	points := pipeline.RollingTrend(l, window)
	if len(points) == 0 {
		fmt.Fprintln(w, "\n  No expenses recorded yet.")
		return
	}
	if window < 1 {
		window = pipeline.DefaultTrendWindow
	}

	rows := make([][]string, 0, len(points))
	averages := make([]float64, 0, len(points))
	for _, p := range points {
		avg := "-"
		if p.Valid {
			avg = cli.FormatMoneyFloat(p.Average, currency)
			averages = append(averages, p.Average)
		}
		rows = append(rows, []string{
			cli.FormatDate(p.Date),
			cli.FormatDayOfWeek(p.Date.Weekday()),
			cli.FormatMoneyFloat(p.Total, currency),
			avg,
		})
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:     fmt.Sprintf("%d-Day Rolling Average Spending", window),
		Headers:   []string{"Date", "Day", "Total", "Average"},
		Rows:      rows,
		LeftAlign: []int{1},
	}))
	if len(averages) > 0 {
		fmt.Fprintf(w, "\n  Trend: %s\n", cli.RenderSparkline(averages))
	} else {
		fmt.Fprintf(w, "\n  %s\n", cli.Muted(fmt.Sprintf("Need at least %d days of history for a trend.", window)))
	}
}

// printCategoryChart draws each category's share of total spend.
func printCategoryChart(w io.Writer, l model.Ledger, currency string) {
	cats := pipeline.CategorySummaries(l)
	if len(cats) == 0 {
		fmt.Fprintln(w, "\n  No expenses recorded yet.")
		return
	}

	total := l.Total()
	peak := 0.0
	for _, c := range cats {
		peak = max(peak, c.Sum.InexactFloat64())
	}

	fmt.Fprintln(w, "\n  Expense Distribution by Category")
	for _, c := range cats {
		share := "-"
		if total.IsPositive() {
			share = cli.FormatPercent(c.Sum.Div(total).Mul(hundred))
		}
		fmt.Fprintf(w, "  %-14s %-30s %8s  %s\n",
			cli.Truncate(c.Category, 14),
			cli.RenderHorizontalBar(c.Sum.InexactFloat64(), peak, 30),
			share,
			cli.FormatMoney(c.Sum, currency),
		)
	}
}

// printMonthlyChart draws monthly spend as horizontal bars.
func printMonthlyChart(w io.Writer, l model.Ledger, currency string) {
	months := pipeline.MonthlySummaries(l)
	if len(months) == 0 {
		fmt.Fprintln(w, "\n  No expenses recorded yet.")
		return
	}

	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Sum.InexactFloat64())
	}

	fmt.Fprintln(w, "\n  Monthly Spending Trends")
	for _, m := range months {
		fmt.Fprintf(w, "  %s  %-30s  %s\n",
			m.Label(),
			cli.RenderHorizontalBar(m.Sum.InexactFloat64(), peak, 30),
			cli.FormatMoney(m.Sum, currency),
		)
	}
}
