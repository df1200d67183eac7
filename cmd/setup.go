package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file alone so env overrides are not written back.
	cfg, err := config.LoadFrom(config.ConfigPath())
	if err != nil {
		return err
	}

	window := strconv.Itoa(cfg.General.TrendWindow)
	threshold := strconv.FormatFloat(cfg.General.AnomalyThreshold, 'f', -1, 64)

	backendOpts := make([]huh.Option[string], len(store.Backends))
	for i, b := range store.Backends {
		backendOpts[i] = huh.NewOption(b, b)
	}
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Label, t.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tally!").
				Description("A few settings and you're ready to track expenses."),
			huh.NewSelect[string]().
				Title("Storage backend").
				Description("Where the ledger is kept.").
				Options(backendOpts...).
				Value(&cfg.General.Backend),
			huh.NewInput().
				Title("Currency symbol").
				Value(&cfg.General.Currency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Trend window (days)").
				Value(&window).
				Validate(validateWindow),
			huh.NewInput().
				Title("Anomaly threshold (|z|)").
				Value(&threshold).
				Validate(func(s string) error {
					_, err := parsePositive(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.TrendWindow, _ = strconv.Atoi(window)
	cfg.General.AnomalyThreshold, _ = parsePositive(threshold)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	log.WithField("path", config.ConfigPath()).Debug("config saved")

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `tally setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateWindow(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("%q is not a positive whole number", s)
	}
	return nil
}

// parsePositive parses a positive decimal typed into the form.
func parsePositive(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return 0, fmt.Errorf("%q is not a positive number", s)
	}
	return d.InexactFloat64(), nil
}
