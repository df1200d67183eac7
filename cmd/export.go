package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the ledger to CSV (\"-\" for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	name := defaultExportFile
	if len(args) == 1 {
		name = args[0]
	}

	tr, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	if name == "-" {
		return tr.Export(os.Stdout)
	}
	if err := exportToFile(tr, name); err != nil {
		return err
	}
	fmt.Printf("  Report exported to %s\n", name)
	return nil
}
