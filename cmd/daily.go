package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily spending table",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDays, "days", "n", 30, "Time window in days")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	since := time.Now().AddDate(0, 0, -flagDays)
	days := pipeline.DailyTotals(pipeline.FilterByTime(tr.Ledger(), since, time.Time{}))
	if len(days) == 0 {
		fmt.Println("\n  No expenses in the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPENDING  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			cli.FormatDate(d.Date),
			cli.FormatDayOfWeek(d.Date.Weekday()),
			cli.FormatMoney(d.Total, cfg.General.Currency),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"Date", "Day", "Total"},
		Rows:      rows,
		LeftAlign: []int{1},
	}))
	return nil
}
