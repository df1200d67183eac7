package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagAddDate string

var addCmd = &cobra.Command{
	Use:   "add <category> <amount> [description...]",
	Short: "Record an expense",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Expense date (YYYY-MM-DD or RFC 3339, default now)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	amount, err := model.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("%w %q", err, args[1])
	}
	date := time.Now()
	if flagAddDate != "" {
		if date, err = model.ParseDate(flagAddDate); err != nil {
			return err
		}
	}

	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	if similar := pipeline.SimilarCategories(tr.Ledger(), args[0]); len(similar) > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  New category %q; existing: %s\n", args[0], strings.Join(similar, ", "))
	}

	e, alerts, err := tr.AddExpenseAt(date, args[0], amount, strings.Join(args[2:], " "))
	if err != nil {
		return err
	}

	fmt.Printf("  Added %s to %s on %s\n",
		cli.FormatMoney(e.Amount, cfg.General.Currency), e.Category, cli.FormatDate(e.Date))
	printAlerts(os.Stdout, alerts)
	return nil
}
