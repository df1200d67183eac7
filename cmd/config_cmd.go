package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Backend:           %s\n", cfg.General.Backend)
	fmt.Printf("    Ledger:            %s\n", cfg.LedgerPath())
	fmt.Printf("    Currency:          %s\n", cfg.General.Currency)
	fmt.Printf("    Trend window:      %d days\n", cfg.General.TrendWindow)
	fmt.Printf("    Anomaly threshold: %.1f\n", cfg.General.AnomalyThreshold)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Budgets]")
	budgets := cfg.ModelBudgets()
	if len(budgets) == 0 {
		fmt.Println("    none set")
	}
	for _, cat := range budgets.Categories() {
		fmt.Printf("    %-18s %s\n", cat+":", cli.FormatMoney(budgets[cat].Round(2), cfg.General.Currency))
	}
	fmt.Println()

	fmt.Println("  Run `tally setup` to reconfigure.")
	return nil
}
