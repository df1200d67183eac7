package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagThreshold       float64
	flagAnomalyCategory string
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "List expenses far from their category's usual amount",
	RunE:  runAnomalies,
}

func init() {
	anomaliesCmd.Flags().Float64VarP(&flagThreshold, "threshold", "t", 0, "Z-score threshold (default from config)")
	anomaliesCmd.Flags().StringVarP(&flagAnomalyCategory, "category", "c", "", "Filter to categories matching (fuzzy)")
	rootCmd.AddCommand(anomaliesCmd)
}

func runAnomalies(_ *cobra.Command, _ []string) error {
	if flagThreshold < 0 {
		return fmt.Errorf("--threshold must be positive, got %v", flagThreshold)
	}

	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	threshold := cfg.General.AnomalyThreshold
	if flagThreshold > 0 {
		threshold = flagThreshold
	}
	if threshold <= 0 {
		threshold = pipeline.DefaultAnomalyThreshold
	}

	anomalies := tr.Anomalies(threshold)
	if flagAnomalyCategory != "" {
		anomalies = filterAnomalies(anomalies, flagAnomalyCategory)
	}
	printAnomalies(os.Stdout, anomalies, cfg.General.Currency)
	return nil
}

// filterAnomalies keeps anomalies whose category matches query. Statistics are
// still computed over the whole ledger.
func filterAnomalies(anomalies []model.Anomaly, query string) []model.Anomaly {
	l := make(model.Ledger, len(anomalies))
	for i, a := range anomalies {
		l[i] = a.Expense
	}
	keep := make(map[string]bool)
	for _, e := range pipeline.FilterByCategory(l, query) {
		keep[e.Category] = true
	}

	var out []model.Anomaly
	for _, a := range anomalies {
		if keep[a.Category] {
			out = append(out, a)
		}
	}
	return out
}
