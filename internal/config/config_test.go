package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if cfg.General != def.General {
		t.Errorf("General = %+v, want %+v", cfg.General, def.General)
	}
	if cfg.General.Currency != "₹" || cfg.General.TrendWindow != 7 || cfg.General.AnomalyThreshold != 2.0 {
		t.Errorf("unexpected defaults: %+v", cfg.General)
	}
}

func TestSaveToLoadFrom_Budgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.General.Backend = "sqlite"
	cfg.SetBudgets(model.Budgets{
		"Food": decimal.RequireFromString("1000"),
		"Fun":  decimal.RequireFromString("250.5"),
		"Rent": decimal.RequireFromString("12345678.91"),
	})
	if err := SaveTo(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.General.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", got.General.Backend)
	}
	b := got.ModelBudgets()
	if len(b) != 3 {
		t.Fatalf("budgets = %v, want 3 entries", b)
	}
	if !b["Fun"].Equal(decimal.RequireFromString("250.5")) {
		t.Errorf("Fun = %s, want 250.5", b["Fun"])
	}
	if b["Rent"].String() != "12345678.91" {
		t.Errorf("Rent = %s, want 12345678.91", b["Rent"])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `Rent = "12345678.91"`) {
		t.Errorf("limits should be written as decimal strings:\n%s", data)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[general]\ncurrency = \"$\"\n\n[budgets]\nFood = 500\nFun = 99.5\nBills = \"1200.25\"\nBroken = -1\nJunk = \"lots\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Currency != "$" {
		t.Errorf("Currency = %q, want $", cfg.General.Currency)
	}
	if cfg.General.TrendWindow != 7 {
		t.Errorf("TrendWindow = %d, want default 7", cfg.General.TrendWindow)
	}
	b := cfg.ModelBudgets()
	if _, ok := b["Broken"]; ok {
		t.Error("non-positive budget should be dropped")
	}
	if _, ok := b["Junk"]; ok {
		t.Error("non-numeric budget should be dropped")
	}
	if !b["Fun"].Equal(decimal.RequireFromString("99.5")) || !b["Bills"].Equal(decimal.RequireFromString("1200.25")) {
		t.Errorf("budgets = %v", b)
	}
	if !b["Food"].Equal(decimal.NewFromInt(500)) {
		t.Errorf("Food = %s, want 500", b["Food"])
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("err = %v, want parsing config error", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLedger, "/tmp/ledger.yaml")
	t.Setenv(EnvBackend, "yaml")
	t.Setenv(EnvCurrency, "€")
	t.Setenv(EnvThreshold, "1.5")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.General.LedgerPath != "/tmp/ledger.yaml" || cfg.General.Backend != "yaml" || cfg.General.Currency != "€" {
		t.Errorf("env not applied: %+v", cfg.General)
	}
	if cfg.General.AnomalyThreshold != 1.5 {
		t.Errorf("AnomalyThreshold = %v, want 1.5", cfg.General.AnomalyThreshold)
	}
	if got := cfg.LedgerPath(); got != "/tmp/ledger.yaml" {
		t.Errorf("LedgerPath = %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TALLY_CURRENCY=USD\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvCurrency, "")
	_ = os.Unsetenv(EnvCurrency)

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv(EnvCurrency); got != "USD" {
		t.Errorf("%s = %q, want USD", EnvCurrency, got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should not error: %v", err)
	}
}

func TestLedgerPath_ByBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"json", "expenses.json"},
		{"", "expenses.json"},
		{"yaml", "expenses.yaml"},
		{"sqlite", "expenses.db"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.General.Backend = tt.backend
		got := cfg.LedgerPath()
		if filepath.Base(got) != tt.want {
			t.Errorf("LedgerPath(%q) = %q, want base %q", tt.backend, got, tt.want)
		}
		if filepath.Dir(got) != DataDir() {
			t.Errorf("LedgerPath(%q) dir = %q, want %q", tt.backend, filepath.Dir(got), DataDir())
		}
	}
}
