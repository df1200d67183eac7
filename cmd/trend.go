package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var flagTrendWindow int

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Rolling average of daily spending",
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().IntVarP(&flagTrendWindow, "window", "w", 0, "Window in days (default from config)")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(_ *cobra.Command, _ []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	window := cfg.General.TrendWindow
	if flagTrendWindow > 0 {
		window = flagTrendWindow
	}
	printTrend(os.Stdout, tr.Ledger(), window, cfg.General.Currency)
	return nil
}
