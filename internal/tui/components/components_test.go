package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LayoutRow(10, 3) = %v, want %v", got, want)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI styling: %q", i, lines[i])
		}
	}
}

func TestMetricRowWidth(t *testing.T) {
	row := MetricRow([]Metric{
		{Label: "Total", Value: "₹1,234.00"},
		{Label: "This Month", Value: "₹200.00", Note: "3 expenses"},
		{Label: "Avg Daily", Value: "₹41.13"},
	}, 90)

	if got := lipgloss.Width(row); got != 90 {
		t.Errorf("MetricRow width = %d, want 90", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
		if want := strings.ToLower(tab.Name[:1]); string(tab.Key) != want {
			t.Errorf("tab %s key = %q, want %q", tab.Name, tab.Key, want)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestRenderTabBar(t *testing.T) {
	for active, tab := range Tabs {
		bar := RenderTabBar(active, 100)
		if w := lipgloss.Width(bar); w != 100 {
			t.Errorf("active=%d width = %d, want 100", active, w)
		}
		plain := stripANSI(bar)
		if strings.Contains(plain, "["+tab.Name[:1]+"]") {
			t.Errorf("active tab %s should not show its shortcut: %q", tab.Name, plain)
		}
		for i, other := range Tabs {
			if i == active {
				continue
			}
			if want := "[" + other.Name[:1] + "]" + other.Name[1:]; !strings.Contains(plain, want) {
				t.Errorf("active=%d missing %q in %q", active, want, plain)
			}
		}
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{5, 1},
		{10, 2},
		{100, 20},
		{450, 50},
		{1234, 200},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0.5:     "0.50",
		40:      "40",
		1000:    "1k",
		2500:    "2.5k",
		3000000: "3M",
	}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBarChartKeepsMostRecent(t *testing.T) {
	values := make([]float64, 100)
	labels := make([]string, 100)
	for i := range values {
		values[i] = float64(i)
		labels[i] = ""
	}
	out := BarChart(values, labels, theme.Active.Blue, 40, 5)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line %d width %d exceeds 40", i, w)
		}
	}
}

func TestBudgetGaugeClampsBar(t *testing.T) {
	g := BudgetGauge("Food", 1.5, model.BudgetViolation, 8, 10)
	plain := stripANSI(g)
	if !strings.Contains(plain, "150.0%") {
		t.Errorf("gauge should show unclamped percentage: %q", plain)
	}
	if w := lipgloss.Width(g); w != 8+1+10+1+6 {
		t.Errorf("gauge width = %d, want %d", w, 8+1+10+1+6)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
