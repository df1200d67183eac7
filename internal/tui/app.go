// Package tui provides the interactive Bubble Tea dashboard for tally.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabTrend
	tabBudgets
	tabAnomalies
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// Options configures the dashboard.
type Options struct {
	Currency    string
	TrendWindow int
	Threshold   float64
	LedgerPath  string
}

// dataLoadedMsg carries a fresh ledger snapshot from the tracker.
type dataLoadedMsg struct {
	ledger   model.Ledger
	budgets  model.Budgets
	loadTime time.Duration
	err      error
}

// App is the root Bubble Tea model.
type App struct {
	tr   *tracker.Tracker
	opts Options
	now  func() time.Time

	// Data
	ledger   model.Ledger
	budgets  model.Budgets
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Pre-computed views of the ledger
	totals     model.LedgerTotals
	monthSpend decimal.Decimal
	monthCount int
	categories []model.CategorySummary
	months     []model.MonthlySummary
	trend      []model.TrendPoint
	report     []model.BudgetAlert
	anomalies  []model.Anomaly

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	refreshing bool
	scroll     int // anomalies list offset
	spinner    spinner.Model
}

// NewApp creates a dashboard over tr.
func NewApp(tr *tracker.Tracker, opts Options) App {
	if opts.TrendWindow < 1 {
		opts.TrendWindow = pipeline.DefaultTrendWindow
	}
	if opts.Threshold <= 0 {
		opts.Threshold = pipeline.DefaultAnomalyThreshold
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		tr:      tr,
		opts:    opts,
		now:     time.Now,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		loadDataCmd(a.tr, false),
	)
}

// loadDataCmd snapshots the tracker, re-reading the store first when reload is set.
func loadDataCmd(tr *tracker.Tracker, reload bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if reload {
			if err := tr.Reload(); err != nil {
				return dataLoadedMsg{err: err, loadTime: time.Since(start)}
			}
		}
		return dataLoadedMsg{
			ledger:   tr.Ledger(),
			budgets:  tr.Budgets(),
			loadTime: time.Since(start),
		}
	}
}

func (a *App) recompute() {
	now := a.now()
	l := a.ledger

	a.totals = pipeline.Totals(l)
	a.categories = pipeline.CategorySummaries(l)
	a.months = pipeline.MonthlySummaries(l)
	a.trend = pipeline.RollingTrend(l, a.opts.TrendWindow)
	a.report = pipeline.BudgetReport(l, now, a.budgets)
	a.anomalies = pipeline.DetectAnomalies(l, a.opts.Threshold)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth := pipeline.FilterByTime(l, monthStart, monthStart.AddDate(0, 1, 0))
	a.monthSpend = thisMonth.Total()
	a.monthCount = len(thisMonth)

	a.scroll = min(a.scroll, max(len(a.anomalies)-1, 0))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			a.scrollBy(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case dataLoadedMsg:
		a.refreshing = false
		a.loadTime = msg.loadTime
		a.loadErr = msg.err
		if msg.err == nil {
			a.ledger = msg.ledger
			a.budgets = msg.budgets
			a.loaded = true
			a.recompute()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "?":
		a.showHelp = true
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(loadDataCmd(a.tr, true), a.spinner.Tick)
		}
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "j", "down":
		a.scrollBy(1)
	case "k", "up":
		a.scrollBy(-1)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a *App) scrollBy(delta int) {
	if a.activeTab != tabAnomalies {
		return
	}
	a.scroll = min(max(a.scroll+delta, 0), max(len(a.anomalies)-1, 0))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // one-column separator
	}
	return -1
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, a.opts.Currency)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  tally needs at least %d columns.\n",
			a.width, minTerminalWidth)
		return padHeight(truncateHeight(msg, a.height), a.height)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ tally"))
	b.WriteString(subtitleStyle.Render(" · Expense Tracker"))
	b.WriteString("\n\n")
	if a.loadErr != nil {
		b.WriteString(errStyle.Render("Could not load ledger: " + a.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Press q to quit"))
	} else {
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Loading ledger..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	bindings := []struct{ key, desc string }{
		{"o t b a", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll anomalies"},
		{"r", "Reload ledger"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	info := fmt.Sprintf("%s expenses · %.0fms", cli.FormatNumber(int64(len(a.ledger))), float64(a.loadTime.Microseconds())/1000)
	if a.opts.LedgerPath != "" {
		info = a.opts.LedgerPath + " · " + info
	}
	if a.loadErr != nil {
		info = "reload failed: " + a.loadErr.Error()
	}
	statusBar := components.RenderStatusBar(w, info, a.refreshing)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTrend:
		content = a.renderTrendTab(cw)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabAnomalies:
		content = a.renderAnomaliesTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels builds compact X-axis labels for a chronological date series.
// The first day and month boundaries show the month abbreviation; other days
// show the day number.
func chartDateLabels(dates []time.Time) []string {
	labels := make([]string, len(dates))
	prevMonth := time.Month(0)
	for i, d := range dates {
		m := d.Month()
		if i == 0 || m != prevMonth {
			labels[i] = d.Format("Jan")
		} else {
			labels[i] = strconv.Itoa(d.Day())
		}
		prevMonth = m
	}
	return labels
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
