package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAnomaliesTab(cw, h int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	highStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	lowStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)

	title := fmt.Sprintf("Anomalies (|z| > %.1f)", a.opts.Threshold)
	if len(a.anomalies) == 0 {
		return components.ContentCard(title, mutedStyle.Render("No unusual spending patterns detected."), cw)
	}

	inner := components.CardInnerWidth(cw)
	descW := max(inner-16-16-14-10-4, 8)
	format := fmt.Sprintf("%%-16s %%-16s %%14s %%-%ds", descW)

	// Card border, title and header take four rows.
	visible := max(h-4, 1)
	start := min(a.scroll, max(len(a.anomalies)-visible, 0))
	end := min(start+visible, len(a.anomalies))

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf(format, "Date", "Category", "Amount", "Description") + fmt.Sprintf(" %9s", "Z")))
	for _, an := range a.anomalies[start:end] {
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf(format,
			cli.FormatDateTime(an.Date),
			cli.Truncate(an.Category, 16),
			a.money(an.Amount),
			cli.Truncate(an.Description, descW),
		)))
		zStyle := highStyle
		if an.ZScore < 0 {
			zStyle = lowStyle
		}
		b.WriteString(zStyle.Render(fmt.Sprintf(" %9s", cli.FormatZScore(an.ZScore))))
	}
	return components.ContentCard(title, b.String(), cw)
}
