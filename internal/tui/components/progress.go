package components

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForStatus maps a budget status to its theme color.
func ColorForStatus(s model.BudgetStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.BudgetViolation:
		return t.Red
	case model.BudgetWarning:
		return t.Orange
	default:
		return t.Green
	}
}

// BudgetGauge renders a labeled bar for pct (0-1, clamped for drawing) in the
// status color, followed by the unclamped percentage.
func BudgetGauge(label string, pct float64, status model.BudgetStatus, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForStatus(status)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(min(max(pct, 0), 1)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100))
}
