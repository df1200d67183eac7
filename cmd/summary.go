package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagSummaryBy       string
	flagSummaryCategory string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spending summary by month or category",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagSummaryBy, "by", periodMonth, "Group by: month or category")
	summaryCmd.Flags().StringVarP(&flagSummaryCategory, "category", "c", "", "Filter to categories matching (fuzzy)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	if flagSummaryBy != periodMonth && flagSummaryBy != periodCategory {
		return fmt.Errorf("--by must be %q or %q, got %q", periodMonth, periodCategory, flagSummaryBy)
	}

	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	l := tr.Ledger()
	if flagSummaryCategory != "" {
		l = pipeline.FilterByCategory(l, flagSummaryCategory)
	}
	printSummary(os.Stdout, l, flagSummaryBy, cfg.General.Currency)
	return nil
}
