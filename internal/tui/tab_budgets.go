package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	title := "Budgets · " + a.now().Format("January 2006")
	if len(a.report) == 0 {
		return components.ContentCard(title,
			mutedStyle.Render("No budgets set. Use `tally budget set <category> <limit>`."), cw)
	}

	inner := components.CardInnerWidth(cw)
	labelW := 14
	// label, bar, percentage and the spent/limit pair share one line
	barW := max(inner-labelW-40, 10)

	var b strings.Builder
	for i, r := range a.report {
		if i > 0 {
			b.WriteString("\n")
		}
		pct := r.PercentUsed.InexactFloat64() / 100
		b.WriteString(components.BudgetGauge(r.Category, pct, r.Status, labelW, barW))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s / %s", a.money(r.Spent), a.money(r.Limit))))
		if r.Status != model.BudgetOK {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Foreground(components.ColorForStatus(r.Status)).
				Background(t.Surface).
				Render(strings.Repeat(" ", labelW+1) + r.Message()))
		}
	}
	return components.ContentCard(title, b.String(), cw)
}
