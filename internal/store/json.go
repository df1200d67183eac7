package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// JSONStore keeps the ledger as a JSON array of records.
type JSONStore struct {
	path string
	log  logrus.FieldLogger
}

type jsonRecord struct {
	Date        json.RawMessage `json:"date"`
	Category    string          `json:"category"`
	Amount      json.Number     `json:"amount"`
	Description string          `json:"description"`
}

// NewJSONStore returns a store backed by the JSON file at path.
func NewJSONStore(path string, log logrus.FieldLogger) *JSONStore {
	return &JSONStore{path: path, log: orStandard(log)}
}

// Load implements Store.
func (s *JSONStore) Load() (model.Ledger, error) {
	data, err := readFileIfExists(s.path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debug("no ledger file, starting empty")
		return model.Ledger{}, nil
	}

	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.path, err)
	}

	l := make(model.Ledger, 0, len(records))
	for i, r := range records {
		date, err := parseJSONDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("ledger record %d: %w", i, err)
		}
		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("ledger record %d: %w: %q", i, model.ErrInvalidAmount, r.Amount)
		}
		e := model.Expense{
			Date:        date,
			Category:    r.Category,
			Amount:      amount,
			Description: r.Description,
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("ledger record %d: %w", i, err)
		}
		l = append(l, e)
	}

	s.log.WithField("records", len(l)).Debug("ledger loaded")
	return l, nil
}

// Save implements Store.
func (s *JSONStore) Save(l model.Ledger) error {
	records := make([]jsonRecord, 0, len(l))
	for _, e := range l {
		date, err := json.Marshal(e.Date.Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
		records = append(records, jsonRecord{
			Date:        date,
			Category:    e.Category,
			Amount:      json.Number(e.Amount.String()),
			Description: e.Description,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := writeFileAtomic(s.path, append(data, '\n')); err != nil {
		return err
	}

	s.log.WithField("records", len(l)).Debug("ledger saved")
	return nil
}

// Close implements Store.
func (s *JSONStore) Close() error { return nil }

// parseJSONDate accepts a date string or epoch milliseconds, which is what
// pandas writes by default.
func parseJSONDate(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, model.ErrMissingDate
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		return model.ParseDate(s)
	}

	var ms json.Number
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %s", raw)
	}
	n, err := ms.Int64()
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %s", raw)
	}
	// pandas stores naive local wall time as if it were UTC.
	u := time.UnixMilli(n).UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), time.Local), nil
}
