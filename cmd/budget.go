package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage monthly category budgets",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set the monthly limit for a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every budget with this month's spend",
	RunE:  runBudgetList,
}

var budgetCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show budget warnings and violations for this month",
	RunE:  runBudgetCheck,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetListCmd, budgetCheckCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	limit, err := model.ParseLimit(args[1])
	if err != nil {
		return fmt.Errorf("%w %q: must be a positive number", err, args[1])
	}

	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	if err := tr.SetBudget(args[0], limit); err != nil {
		return err
	}
	if err := saveBudgets(tr.Budgets()); err != nil {
		return err
	}

	fmt.Printf("  Budget set for %s: %s\n", args[0], cli.FormatMoney(limit, cfg.General.Currency))
	printAlerts(os.Stdout, tr.CheckBudgets())
	return nil
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	report := pipeline.BudgetReport(tr.Ledger(), time.Now(), tr.Budgets())
	printBudgetReport(os.Stdout, report, cfg.General.Currency)
	return nil
}

func runBudgetCheck(_ *cobra.Command, _ []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	alerts := tr.CheckBudgets()
	if len(alerts) == 0 {
		fmt.Println("\n  All budgets are on track.")
		return nil
	}
	printAlerts(os.Stdout, alerts)
	return nil
}
