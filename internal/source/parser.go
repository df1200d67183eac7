package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/tally/internal/model"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ParseFile reads one discovered file according to its format.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	switch df.Format {
	case FormatJSONL:
		return ParseJSONL(f)
	default:
		return ParseCSV(f)
	}
}

// ParseCSV reads the ledger export format. The header row is required and
// columns may appear in any order; description is optional.
func ParseCSV(r io.Reader) ParseResult {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ParseResult{}
		}
		return ParseResult{Err: fmt.Errorf("reading csv header: %w", err)}
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date", "category", "amount"} {
		if _, ok := cols[required]; !ok {
			return ParseResult{Err: fmt.Errorf("%w %q", ErrMissingColumn, required)}
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var result ParseResult
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				result.ParseErrors++
				continue
			}
			result.Err = fmt.Errorf("reading csv: %w", err)
			return result
		}

		e, err := toExpense(rawEntry{
			Date:        field(row, "date"),
			Category:    field(row, "category"),
			Amount:      field(row, "amount"),
			Description: field(row, "description"),
		})
		if err != nil {
			result.ParseErrors++
			continue
		}
		result.Expenses = append(result.Expenses, e)
	}
	return result
}

// ParseJSONL reads one JSON object per line. Blank lines are ignored.
func ParseJSONL(r io.Reader) ParseResult {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var raw struct {
			Date        string          `json:"date"`
			Category    string          `json:"category"`
			Amount      json.RawMessage `json:"amount"`
			Description string          `json:"description"`
		}
		if err := json.Unmarshal(line, &raw); err != nil {
			result.ParseErrors++
			continue
		}

		e, err := toExpense(rawEntry{
			Date:        raw.Date,
			Category:    raw.Category,
			Amount:      strings.Trim(string(raw.Amount), `"`),
			Description: raw.Description,
		})
		if err != nil {
			result.ParseErrors++
			continue
		}
		result.Expenses = append(result.Expenses, e)
	}
	if err := scanner.Err(); err != nil {
		result.Err = fmt.Errorf("reading jsonl: %w", err)
	}
	return result
}

func toExpense(r rawEntry) (model.Expense, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.Expense{}, err
	}
	amount, err := model.ParseAmount(r.Amount)
	if err != nil {
		return model.Expense{}, err
	}
	e := model.Expense{
		Date:        date,
		Category:    strings.TrimSpace(r.Category),
		Amount:      amount,
		Description: r.Description,
	}
	if err := e.Validate(); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}
