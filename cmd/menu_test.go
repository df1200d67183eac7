package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tracker"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var dec100 = decimal.NewFromInt(100)

func newTestMenu(t *testing.T, input string) (*menu, *bytes.Buffer, *[]model.Budgets) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	st, err := store.Open(store.BackendJSON, filepath.Join(t.TempDir(), "expenses.json"), logger)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := tracker.New(st, nil, logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = tr.Close() })

	var saved []model.Budgets
	out := &bytes.Buffer{}
	m := &menu{
		in:        bufio.NewScanner(strings.NewReader(input)),
		out:       out,
		tr:        tr,
		currency:  "$",
		window:    7,
		threshold: 2,
		saveBudgets: func(b model.Budgets) error {
			saved = append(saved, b)
			return nil
		},
	}
	return m, out, &saved
}

func TestMenu_AddExpense(t *testing.T) {
	m, out, _ := newTestMenu(t, "1\nFood\n12.50\nlunch\n7\n")
	m.run()

	got := out.String()
	if !strings.Contains(got, "Expense added successfully!") {
		t.Fatalf("output missing confirmation:\n%s", got)
	}
	if !strings.Contains(got, "Goodbye!") {
		t.Error("menu did not exit on 7")
	}
	l := m.tr.Ledger()
	if len(l) != 1 || l[0].Category != "Food" || l[0].Description != "lunch" {
		t.Errorf("ledger = %+v", l)
	}
}

func TestMenu_RejectsBadInput(t *testing.T) {
	m, out, _ := newTestMenu(t, "1\nFood\nabc\n1\n\n3\nFood\n-5\n9\n7\n")
	m.run()

	got := out.String()
	for _, want := range []string{
		"Invalid amount. Please enter a number.",
		"Category cannot be empty.",
		"Invalid amount. Please enter a positive number.",
		"Invalid choice. Please try again.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if len(m.tr.Ledger()) != 0 {
		t.Error("invalid input reached the ledger")
	}
}

func TestMenu_BudgetAlertAfterAdd(t *testing.T) {
	m, out, saved := newTestMenu(t, "3\nFood\n100\n1\nFood\n90\n\n7\n")
	m.run()

	got := out.String()
	if !strings.Contains(got, "Budget set for Food: $100.00") {
		t.Errorf("output missing budget confirmation:\n%s", got)
	}
	if !strings.Contains(got, "Food: Approaching budget limit (90.0%)") {
		t.Errorf("output missing warning:\n%s", got)
	}
	if len(*saved) != 1 || !(*saved)[0]["Food"].Equal(dec100) {
		t.Errorf("saved budgets = %v", *saved)
	}
}

func TestMenu_BudgetSaveFailureKeepsSession(t *testing.T) {
	m, out, _ := newTestMenu(t, "3\nFood\n100\n7\n")
	m.saveBudgets = func(model.Budgets) error { return errors.New("read-only") }
	m.run()

	if !strings.Contains(out.String(), "Budget set for this session only: read-only") {
		t.Errorf("output = %s", out.String())
	}
	if _, ok := m.tr.Budgets()["Food"]; !ok {
		t.Error("budget not kept in memory")
	}
}

func TestMenu_EmptySummaryAndAnomalies(t *testing.T) {
	m, out, _ := newTestMenu(t, "2\ncategory\n4\n")
	m.run()

	got := out.String()
	if !strings.Contains(got, "No expenses recorded yet.") {
		t.Errorf("output missing empty summary:\n%s", got)
	}
	if !strings.Contains(got, "No unusual spending patterns detected.") {
		t.Errorf("output missing empty anomalies:\n%s", got)
	}
}

func TestMenu_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	m, out, _ := newTestMenu(t, "1\nFood\n10\n\n6\n"+path+"\n7\n")
	m.run()

	if !strings.Contains(out.String(), "Report exported to "+path) {
		t.Fatalf("output = %s", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv has %d lines, want header + 1 row", len(lines))
	}
	if lines[0] != strings.Join(model.TableHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestNewMenu_FallsBackOnBadSettings(t *testing.T) {
	m, _, _ := newTestMenu(t, "")
	cfg := config.DefaultConfig()
	cfg.General.TrendWindow = 0
	cfg.General.AnomalyThreshold = 0

	got := newMenu(strings.NewReader(""), &bytes.Buffer{}, m.tr, cfg)
	if got.window != pipeline.DefaultTrendWindow {
		t.Errorf("window = %d, want %d", got.window, pipeline.DefaultTrendWindow)
	}
	if got.threshold != pipeline.DefaultAnomalyThreshold {
		t.Errorf("threshold = %v, want %v", got.threshold, pipeline.DefaultAnomalyThreshold)
	}

	cfg.General.TrendWindow = 14
	cfg.General.AnomalyThreshold = 1.5
	got = newMenu(strings.NewReader(""), &bytes.Buffer{}, m.tr, cfg)
	if got.window != 14 || got.threshold != 1.5 {
		t.Errorf("configured settings not kept: window=%d threshold=%v", got.window, got.threshold)
	}
}

func TestMenu_ZeroThresholdDoesNotFlagEverything(t *testing.T) {
	m, out, _ := newTestMenu(t, "")
	for _, amt := range []string{"10", "11", "12", "13"} {
		if _, _, err := m.tr.AddExpense("Food", decimal.RequireFromString(amt), ""); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.DefaultConfig()
	cfg.General.AnomalyThreshold = 0

	zeroed := newMenu(strings.NewReader("4\n7\n"), out, m.tr, cfg)
	zeroed.run()
	if !strings.Contains(out.String(), "No unusual spending patterns detected.") {
		t.Errorf("output = %s", out.String())
	}
}

func TestConfigureLogger(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer

	if err := configureLogger(l, &buf, false, ""); err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("default level = %v, want warn", l.GetLevel())
	}

	if err := configureLogger(l, &buf, false, "info"); err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("env level = %v, want info", l.GetLevel())
	}

	if err := configureLogger(l, &buf, true, "error"); err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("verbose level = %v, want debug", l.GetLevel())
	}

	if err := configureLogger(l, &buf, false, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}

	_ = configureLogger(l, &buf, false, "")
	l.Warn("budget file unreadable")
	if !strings.Contains(buf.String(), `msg="budget file unreadable"`) {
		t.Errorf("log output = %q", buf.String())
	}
}
