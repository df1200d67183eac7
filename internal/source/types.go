// Package source discovers and parses expense files for import.
package source

import "github.com/theirongolddev/tally/internal/model"

// Import file formats, by extension.
const (
	FormatCSV   = ".csv"
	FormatJSONL = ".jsonl"
)

// DiscoveredFile is an importable file found by ScanDir.
type DiscoveredFile struct {
	Path   string
	Format string
}

// ParseResult holds the output of parsing a single import file.
// Rows that fail to parse are skipped and counted rather than failing the file.
type ParseResult struct {
	Expenses    []model.Expense
	ParseErrors int
	Err         error
}

// rawEntry is one JSONL line: the same four fields as the ledger export.
type rawEntry struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}
