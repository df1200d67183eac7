package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tracker"

	"github.com/spf13/cobra"
)

const defaultExportFile = "expense_report.csv"

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive text menu (default)",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	m := newMenu(os.Stdin, os.Stdout, tr, cfg)
	m.saveBudgets = saveBudgets
	m.run()
	return nil
}

// newMenu builds a menu over tr. Out-of-range analysis settings fall back to
// the pipeline defaults.
func newMenu(in io.Reader, out io.Writer, tr *tracker.Tracker, cfg config.Config) *menu {
	window := cfg.General.TrendWindow
	if window < 1 {
		window = pipeline.DefaultTrendWindow
	}
	threshold := cfg.General.AnomalyThreshold
	if threshold <= 0 {
		threshold = pipeline.DefaultAnomalyThreshold
	}
	return &menu{
		in:        bufio.NewScanner(in),
		out:       out,
		tr:        tr,
		currency:  cfg.General.Currency,
		window:    window,
		threshold: threshold,
	}
}

// menu is the blocking request/response loop. Errors from a single action are
// printed and the loop continues.
type menu struct {
	in          *bufio.Scanner
	out         io.Writer
	tr          *tracker.Tracker
	currency    string
	window      int
	threshold   float64
	saveBudgets func(model.Budgets) error
}

func (m *menu) run() {
	for {
		fmt.Fprintln(m.out, "\n  Expense Tracker")
		fmt.Fprintln(m.out, "  1. Add Expense")
		fmt.Fprintln(m.out, "  2. View Summary")
		fmt.Fprintln(m.out, "  3. Set Budget")
		fmt.Fprintln(m.out, "  4. Check Anomalies")
		fmt.Fprintln(m.out, "  5. Visualize Data")
		fmt.Fprintln(m.out, "  6. Export Report")
		fmt.Fprintln(m.out, "  7. Exit")

		choice, ok := m.prompt("Choose an option (1-7): ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.addExpense()
		case "2":
			period, _ := m.prompt("View by (month/category): ")
			period = strings.ToLower(period)
			if period != periodCategory {
				period = periodMonth
			}
			printSummary(m.out, m.tr.Ledger(), period, m.currency)
		case "3":
			m.setBudget()
		case "4":
			printAnomalies(m.out, m.tr.Anomalies(m.threshold), m.currency)
		case "5":
			m.visualize()
		case "6":
			name, _ := m.prompt(fmt.Sprintf("Enter filename (default: %s): ", defaultExportFile))
			if name == "" {
				name = defaultExportFile
			}
			if err := exportToFile(m.tr, name); err != nil {
				fmt.Fprintf(m.out, "  Export failed: %v\n", err)
				continue
			}
			fmt.Fprintf(m.out, "  Report exported to %s\n", name)
		case "7":
			fmt.Fprintln(m.out, "  Goodbye!")
			return
		default:
			fmt.Fprintln(m.out, "  Invalid choice. Please try again.")
		}
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, "  "+label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) addExpense() {
	category, _ := m.prompt("Enter category: ")
	if category == "" {
		fmt.Fprintln(m.out, "  Category cannot be empty.")
		return
	}
	if similar := pipeline.SimilarCategories(m.tr.Ledger(), category); len(similar) > 0 {
		fmt.Fprintf(m.out, "  %s\n", cli.Muted("Existing categories like it: "+strings.Join(similar, ", ")))
	}

	raw, _ := m.prompt("Enter amount: ")
	amount, err := model.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(m.out, "  Invalid amount. Please enter a number.")
		return
	}
	description, _ := m.prompt("Enter description (optional): ")

	_, alerts, err := m.tr.AddExpense(category, amount, description)
	if err != nil {
		fmt.Fprintf(m.out, "  Could not add expense: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "  Expense added successfully!")
	printAlerts(m.out, alerts)
}

func (m *menu) setBudget() {
	category, _ := m.prompt("Enter category: ")
	raw, _ := m.prompt("Enter monthly budget limit: ")

	limit, err := model.ParseLimit(raw)
	if err != nil {
		fmt.Fprintln(m.out, "  Invalid amount. Please enter a positive number.")
		return
	}
	if err := m.tr.SetBudget(category, limit); err != nil {
		if errors.Is(err, model.ErrEmptyCategory) {
			fmt.Fprintln(m.out, "  Category cannot be empty.")
			return
		}
		fmt.Fprintf(m.out, "  Could not set budget: %v\n", err)
		return
	}
	if m.saveBudgets != nil {
		if err := m.saveBudgets(m.tr.Budgets()); err != nil {
			fmt.Fprintf(m.out, "  Budget set for this session only: %v\n", err)
			return
		}
	}
	fmt.Fprintf(m.out, "  Budget set for %s: %s\n", strings.TrimSpace(category), cli.FormatMoney(limit, m.currency))
}

func (m *menu) visualize() {
	fmt.Fprintln(m.out, "\n  Visualization Options:")
	fmt.Fprintln(m.out, "  1. Category Distribution")
	fmt.Fprintln(m.out, "  2. Monthly Trends")
	fmt.Fprintln(m.out, "  3. Spending Trend")

	choice, _ := m.prompt("Choose option (1-3): ")
	switch choice {
	case "1":
		printCategoryChart(m.out, m.tr.Ledger(), m.currency)
	case "2":
		printMonthlyChart(m.out, m.tr.Ledger(), m.currency)
	case "3":
		raw, _ := m.prompt(fmt.Sprintf("Enter rolling window size (default %d): ", m.window))
		window := m.window
		if raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				fmt.Fprintln(m.out, "  Invalid window. Please enter a positive whole number.")
				return
			}
			window = n
		}
		printTrend(m.out, m.tr.Ledger(), window, m.currency)
	default:
		fmt.Fprintln(m.out, "  Invalid choice. Please try again.")
	}
}

// exportToFile writes the ledger CSV to path.
func exportToFile(tr *tracker.Tracker, path string) error {
	f, err := os.Create(path) //nolint:gosec // user-chosen export path
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := tr.Export(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}
