// Package config loads and saves tally's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

// Environment variables that override config file values.
const (
	EnvLedger    = "TALLY_LEDGER"
	EnvBackend   = "TALLY_BACKEND"
	EnvCurrency  = "TALLY_CURRENCY"
	EnvLogLevel  = "TALLY_LOG_LEVEL"
	EnvThreshold = "TALLY_ANOMALY_THRESHOLD"
)

// Config holds all tally configuration.
type Config struct {
	General    GeneralConfig      `toml:"general"`
	Appearance AppearanceConfig   `toml:"appearance"`
	Budgets    map[string]any     `toml:"budgets,omitempty"` // category = "limit"; bare numbers are accepted
}

// GeneralConfig holds storage and analysis preferences.
type GeneralConfig struct {
	Backend          string  `toml:"backend"`
	LedgerPath       string  `toml:"ledger_path,omitempty"`
	Currency         string  `toml:"currency"`
	TrendWindow      int     `toml:"trend_window"`
	AnomalyThreshold float64 `toml:"anomaly_threshold"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend:          "json",
			Currency:         "₹",
			TrendWindow:      7,
			AnomalyThreshold: 2.0,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "tally")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the ledger.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "tally")
}

// LedgerPath returns the ledger location: the configured path, or a file in
// DataDir named after the backend.
func (c Config) LedgerPath() string {
	if c.General.LedgerPath != "" {
		return expandHome(c.General.LedgerPath)
	}
	switch strings.ToLower(c.General.Backend) {
	case "yaml", "yml":
		return filepath.Join(DataDir(), "expenses.yaml")
	case "sqlite":
		return filepath.Join(DataDir(), "expenses.db")
	default:
		return filepath.Join(DataDir(), "expenses.json")
	}
}

// Load reads the config file, returning defaults if it doesn't exist.
// Values from .env and the environment are applied on top.
func Load() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return DefaultConfig(), err
	}
	cfg, err := LoadFrom(ConfigPath())
	if err != nil {
		return cfg, err
	}
	return ApplyEnv(cfg), nil
}

// LoadFrom reads the config file at path without consulting the environment.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any TALLY_* environment variables that are set.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvLedger); v != "" {
		cfg.General.LedgerPath = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.General.Backend = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.Currency = v
	}
	if v := os.Getenv(EnvThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.General.AnomalyThreshold = f
		}
	}
	return cfg
}

// Save writes the config to ConfigPath.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ModelBudgets converts the [budgets] table, dropping non-positive limits.
func (c Config) ModelBudgets() model.Budgets {
	out := make(model.Budgets, len(c.Budgets))
	for cat, raw := range c.Budgets {
		limit, ok := budgetLimit(raw)
		if !ok || !limit.IsPositive() || strings.TrimSpace(cat) == "" {
			continue
		}
		out[cat] = limit
	}
	return out
}

// budgetLimit reads a [budgets] value. Saved limits are decimal strings;
// hand-edited files may use TOML integers or floats.
func budgetLimit(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Zero, false
	}
}

// SetBudgets replaces the [budgets] table.
func (c *Config) SetBudgets(b model.Budgets) {
	c.Budgets = make(map[string]any, len(b))
	for cat, limit := range b {
		c.Budgets[cat] = limit.String()
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
