package store

import (
	"bytes"
	"fmt"
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// YAMLStore keeps the ledger as a YAML sequence of records.
type YAMLStore struct {
	path string
	log  logrus.FieldLogger
}

type yamlRecord struct {
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
	Amount      string `yaml:"amount"`
	Description string `yaml:"description,omitempty"`
}

// NewYAMLStore returns a store backed by the YAML file at path.
func NewYAMLStore(path string, log logrus.FieldLogger) *YAMLStore {
	return &YAMLStore{path: path, log: orStandard(log)}
}

// Load implements Store.
func (s *YAMLStore) Load() (model.Ledger, error) {
	data, err := readFileIfExists(s.path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Ledger{}, nil
	}

	var records []yamlRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.path, err)
	}

	l := make(model.Ledger, 0, len(records))
	for i, r := range records {
		date, err := model.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("ledger record %d: %w", i, err)
		}
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("ledger record %d: %w: %q", i, model.ErrInvalidAmount, r.Amount)
		}
		e := model.Expense{Date: date, Category: r.Category, Amount: amount, Description: r.Description}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("ledger record %d: %w", i, err)
		}
		l = append(l, e)
	}

	s.log.WithField("records", len(l)).Debug("ledger loaded")
	return l, nil
}

// Save implements Store.
func (s *YAMLStore) Save(l model.Ledger) error {
	records := make([]yamlRecord, 0, len(l))
	for _, e := range l {
		records = append(records, yamlRecord{
			Date:        e.Date.Format(time.RFC3339Nano),
			Category:    e.Category,
			Amount:      e.Amount.String(),
			Description: e.Description,
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return err
	}

	s.log.WithField("records", len(l)).Debug("ledger saved")
	return nil
}

// Close implements Store.
func (s *YAMLStore) Close() error { return nil }
