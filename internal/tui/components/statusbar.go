package components

import (
	"strings"

	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// info (ledger location, load time) on the right.
func RenderStatusBar(width int, info string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := " [?]help  [r]eload  [q]uit"
	right := info + " "
	if refreshing {
		right = "reloading… " + right
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return style.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}
