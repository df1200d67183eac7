package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: headline figures
	alerts := 0
	for _, r := range a.report {
		if r.Status != model.BudgetOK {
			alerts++
		}
	}
	budgetNote := "no budgets"
	if len(a.report) > 0 {
		budgetNote = fmt.Sprintf("%d of %d budgets alerting", alerts, len(a.report))
	}

	b.WriteString(components.MetricRow([]components.Metric{
		{Label: "Total Spent", Value: a.money(a.totals.Total), Note: cli.FormatNumber(int64(a.totals.Count)) + " expenses"},
		{Label: "This Month", Value: a.money(a.monthSpend), Note: budgetNote},
		{Label: "Average Daily", Value: a.money(a.totals.AvgDaily), Note: fmt.Sprintf("over %d active days", a.totals.ActiveDays)},
		{Label: "Anomalies", Value: cli.FormatNumber(int64(len(a.anomalies))), Note: fmt.Sprintf("|z| > %.1f", a.opts.Threshold)},
	}, cw))
	b.WriteString("\n")

	if len(a.ledger) == 0 {
		b.WriteString(components.ContentCard("Getting started",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No expenses yet. Add one with `tally add <category> <amount>`."),
			cw))
		return b.String()
	}

	// Row 2: category breakdown and monthly totals
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	bars := make([]components.HBar, 0, len(a.categories))
	for _, c := range a.categories {
		bars = append(bars, components.HBar{
			Label: c.Category,
			Value: c.Sum.InexactFloat64(),
			Text:  a.money(c.Sum),
		})
	}
	catInner := components.CardInnerWidth(halves[0])
	labelW := min(14, catInner/3)
	catCard := components.ContentCard("By Category",
		components.HBarList(bars, t.Accent, labelW, max(catInner-labelW-16, 4)),
		halves[0])

	values := make([]float64, len(a.months))
	labels := make([]string, len(a.months))
	for i, m := range a.months {
		values[i] = m.Sum.InexactFloat64()
		labels[i] = m.Label()[2:]
	}
	monthCard := components.ContentCard("Monthly",
		components.BarChart(values, labels, t.Blue, components.CardInnerWidth(halves[1]), 8),
		halves[1])

	if a.isCompactLayout() {
		b.WriteString(catCard)
		b.WriteString("\n")
		b.WriteString(monthCard)
	} else {
		b.WriteString(components.CardRow([]string{catCard, monthCard}))
	}
	return b.String()
}
