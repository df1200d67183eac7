package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// trendDays is how many recent days the daily chart shows.
const trendDays = 60

func (a App) renderTrendTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	if len(a.trend) == 0 {
		return components.ContentCard("Trend", mutedStyle.Render("No expenses yet."), cw)
	}

	points := a.trend
	if len(points) > trendDays {
		points = points[len(points)-trendDays:]
	}

	totals := make([]float64, len(points))
	dates := make([]time.Time, len(points))
	var averages []float64
	for i, p := range points {
		totals[i] = p.Total
		dates[i] = p.Date
		if p.Valid {
			averages = append(averages, p.Average)
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Daily Spending (last %dd)", len(points)),
		components.BarChart(totals, chartDateLabels(dates), t.Blue, components.CardInnerWidth(cw), 10),
		cw,
	))
	b.WriteString("\n")

	var body string
	if len(averages) == 0 {
		body = mutedStyle.Render(fmt.Sprintf("Need at least %d days of history for a rolling average.", a.opts.TrendWindow))
	} else {
		last := points[len(points)-1]
		inner := components.CardInnerWidth(cw)
		spark := averages
		if len(spark) > inner {
			spark = spark[len(spark)-inner:]
		}
		body = components.Sparkline(spark, t.Accent) + "\n" +
			mutedStyle.Render("Latest average: ") +
			valueStyle.Render(cli.FormatMoneyFloat(last.Average, a.opts.Currency)) +
			mutedStyle.Render(" per day")
	}
	b.WriteString(components.ContentCard(fmt.Sprintf("%d-Day Rolling Average", a.opts.TrendWindow), body, cw))
	return b.String()
}
