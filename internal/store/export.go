package store

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/theirongolddev/tally/internal/model"
)

// WriteCSV writes the ledger dump as CSV with a header row.
// An empty ledger produces only the header.
func WriteCSV(w io.Writer, l model.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.TableHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(l.Table()); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}
