package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"

	"github.com/shopspring/decimal"
)

// writeFile creates a temp file with the given lines and returns a DiscoveredFile for it.
func writeFile(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	files, err := ScanDir(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("ScanDir(%s) found %d files, want 1", name, len(files))
	}
	return files[0]
}

func TestParseFile_CSV(t *testing.T) {
	df := writeFile(t, "june.csv",
		"date,category,amount,description",
		"2025-06-01,Food,12.50,lunch",
		"2025-06-02 08:15:00,Transport,3,bus",
		`2025-06-03T19:00:00Z,Fun,"40,00","cinema, popcorn"`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", result.ParseErrors)
	}
	if len(result.Expenses) != 3 {
		t.Fatalf("got %d expenses, want 3", len(result.Expenses))
	}

	third := result.Expenses[2]
	if !third.Amount.Equal(decimal.RequireFromString("40")) {
		t.Errorf("Amount = %s, want 40", third.Amount)
	}
	if third.Description != "cinema, popcorn" {
		t.Errorf("Description = %q, want %q", third.Description, "cinema, popcorn")
	}
	if got := result.Expenses[1].Date.Hour(); got != 8 {
		t.Errorf("Hour = %d, want 8", got)
	}
}

func TestParseCSV_ColumnOrderAndOptionalDescription(t *testing.T) {
	in := "Amount,Category,Date\n5.25,Food,2025-06-01\n"

	result := ParseCSV(strings.NewReader(in))
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(result.Expenses))
	}
	e := result.Expenses[0]
	if e.Category != "Food" || e.Description != "" {
		t.Errorf("got %+v", e)
	}
	if !e.Amount.Equal(decimal.RequireFromString("5.25")) {
		t.Errorf("Amount = %s, want 5.25", e.Amount)
	}
}

func TestParseCSV_SkipsBadRows(t *testing.T) {
	in := strings.Join([]string{
		"date,category,amount",
		"2025-06-01,Food,abc",  // bad amount
		"not-a-date,Food,1",    // bad date
		"2025-06-01,,1",        // empty category
		"2025-06-02,Food,-4.5", // refunds are negative amounts
	}, "\n")

	result := ParseCSV(strings.NewReader(in))
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", result.ParseErrors)
	}
	if len(result.Expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(result.Expenses))
	}
	if !result.Expenses[0].Amount.Equal(decimal.RequireFromString("-4.5")) {
		t.Errorf("Amount = %s, want -4.5", result.Expenses[0].Amount)
	}
}

func TestParseCSV_MissingColumn(t *testing.T) {
	result := ParseCSV(strings.NewReader("date,category\n2025-06-01,Food\n"))
	if !errors.Is(result.Err, ErrMissingColumn) {
		t.Errorf("Err = %v, want ErrMissingColumn", result.Err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	result := ParseCSV(strings.NewReader(""))
	if result.Err != nil || len(result.Expenses) != 0 {
		t.Errorf("got %+v, want empty result", result)
	}
}

func TestParseCSV_ExportRoundTrip(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ledger := model.Ledger{
		{Date: time.Date(2025, 6, 1, 9, 30, 15, 123456789, ist), Category: "Food", Amount: decimal.RequireFromString("12.345"), Description: "line one\nline two"},
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Category: "Rent", Amount: decimal.RequireFromString("1000"), Description: `says "hi"`},
	}

	var buf bytes.Buffer
	if err := store.WriteCSV(&buf, ledger); err != nil {
		t.Fatal(err)
	}

	result := ParseCSV(&buf)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Expenses) != len(ledger) {
		t.Fatalf("got %d expenses, want %d", len(result.Expenses), len(ledger))
	}
	for i, want := range ledger {
		got := result.Expenses[i]
		if !got.Date.Equal(want.Date) {
			t.Errorf("[%d] Date = %v, want %v", i, got.Date, want.Date)
		}
		if got.Category != want.Category || got.Description != want.Description {
			t.Errorf("[%d] got %q/%q, want %q/%q", i, got.Category, got.Description, want.Category, want.Description)
		}
		if !got.Amount.Equal(want.Amount) {
			t.Errorf("[%d] Amount = %s, want %s", i, got.Amount, want.Amount)
		}
	}
}

func TestParseFile_JSONL(t *testing.T) {
	df := writeFile(t, "bank.jsonl",
		`{"date":"2025-06-01","category":"Food","amount":12.5,"description":"lunch"}`,
		``,
		`{"date":"2025-06-02","category":"Food","amount":"7"}`,
		`not json`,
		`{"date":"2025-06-03","category":"","amount":1}`,
	)
	if df.Format != FormatJSONL {
		t.Fatalf("Format = %q, want %q", df.Format, FormatJSONL)
	}

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Expenses) != 2 {
		t.Errorf("got %d expenses, want 2", len(result.Expenses))
	}
	if result.ParseErrors != 2 {
		t.Errorf("ParseErrors = %d, want 2", result.ParseErrors)
	}
	if !result.Expenses[0].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Amount = %s, want 12.5", result.Expenses[0].Amount)
	}
}

func TestParseFile_Missing(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.csv"), Format: FormatCSV})
	if result.Err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.JSONL", "notes.txt", filepath.Join("sub", "c.ndjson")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("found %d files, want 3: %+v", len(files), files)
	}
	want := []string{"a.JSONL", "b.csv", "c.ndjson"}
	for i, f := range files {
		if filepath.Base(f.Path) != want[i] {
			t.Errorf("[%d] = %s, want %s", i, filepath.Base(f.Path), want[i])
		}
	}
	if files[0].Format != FormatJSONL || files[1].Format != FormatCSV {
		t.Errorf("formats = %q, %q", files[0].Format, files[1].Format)
	}
}
