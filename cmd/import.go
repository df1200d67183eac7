package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/source"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>",
	Short: "Append expenses from CSV or JSONL files",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	files, err := source.ScanDir(args[0])
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}
	if len(files) == 0 {
		fmt.Println("\n  No .csv or .jsonl files found.")
		return nil
	}

	var (
		expenses []model.Expense
		badRows  int
		badFiles int
	)
	for i, f := range files {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", i+1, len(files))
		}
		result := source.ParseFile(f)
		if result.Err != nil {
			badFiles++
			log.WithError(result.Err).WithField("file", f.Path).Warn("skipping file")
			continue
		}
		badRows += result.ParseErrors
		expenses = append(expenses, result.Expenses...)
		log.WithFields(logrus.Fields{
			"file":     f.Path,
			"expenses": len(result.Expenses),
			"skipped":  result.ParseErrors,
		}).Debug("parsed import file")
	}
	if !flagQuiet {
		fmt.Fprintln(os.Stderr)
	}

	tr, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	if err := tr.Import(expenses); err != nil {
		return err
	}

	fmt.Printf("  Imported %s expenses from %d files\n", formatNumber(int64(len(expenses))), len(files)-badFiles)
	if badRows > 0 {
		fmt.Fprintf(os.Stderr, "  %d rows could not be parsed\n", badRows)
	}
	if badFiles > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", badFiles)
	}
	return nil
}
