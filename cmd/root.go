// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tracker"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagLedger   string
	flagBackend  string
	flagCurrency string
	flagQuiet    bool
	flagVerbose  bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Personal expense tracker",
	Long:  "Record expenses, watch budgets, and spot unusual spending.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return configureLogger(log, os.Stderr, flagVerbose, os.Getenv(config.EnvLogLevel))
	},
	RunE:          runMenu,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLedger, "ledger", "l", "", "Ledger file (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend: "+strings.Join(store.Backends, ", "))
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "", "Currency symbol for output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// configureLogger sets up text logging to w. --verbose wins over the
// environment level; the default is warn.
func configureLogger(l *logrus.Logger, w io.Writer, verbose bool, envLevel string) error {
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level := logrus.WarnLevel
	if envLevel != "" {
		parsed, err := logrus.ParseLevel(envLevel)
		if err != nil {
			return fmt.Errorf("%s: %w", config.EnvLogLevel, err)
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	return nil
}

// loadConfig reads the config file and environment, then applies global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagLedger != "" {
		cfg.General.LedgerPath = flagLedger
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if flagCurrency != "" {
		cfg.General.Currency = flagCurrency
	}
	return cfg, nil
}

// openTracker is the shared data loading path used by all commands.
func openTracker() (*tracker.Tracker, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	path := cfg.LedgerPath()
	st, err := store.Open(cfg.General.Backend, path, log)
	if err != nil {
		return nil, cfg, err
	}

	tr, err := tracker.New(st, cfg.ModelBudgets(), log)
	if err != nil {
		_ = st.Close()
		return nil, cfg, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %s expenses from %s\n",
			formatNumber(int64(len(tr.Ledger()))), path)
	}
	return tr, cfg, nil
}

// saveBudgets writes budgets to the config file. The file is re-read so that
// environment and flag overrides are not persisted along with them.
func saveBudgets(b model.Budgets) error {
	cfg, err := config.LoadFrom(config.ConfigPath())
	if err != nil {
		return err
	}
	cfg.SetBudgets(b)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving budgets: %w", err)
	}
	log.WithField("count", len(b)).Debug("budgets saved")
	return nil
}
