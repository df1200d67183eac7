package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite" // register sqlite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the ledger in an expenses table, one row per record.
type SQLiteStore struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// OpenSQLite opens or creates the ledger database at dbPath and applies migrations.
func OpenSQLite(dbPath string, log logrus.FieldLogger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &SQLiteStore{db: db, log: orStandard(log)}, nil
}

// runMigrations uses its own connection because closing the migrator closes the db.
func runMigrations(dbPath string) error {
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening migration db: %w", err)
	}
	defer func() { _ = migrateDB.Close() }()

	driver, err := migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load() (model.Ledger, error) {
	rows, err := s.db.Query("SELECT date, category, amount, description FROM expenses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer func() { _ = rows.Close() }()

	l := model.Ledger{}
	for rows.Next() {
		var dateStr, amountStr string
		var e model.Expense
		if err := rows.Scan(&dateStr, &e.Category, &amountStr, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if e.Date, err = model.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", len(l), err)
		}
		if e.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("ledger row %d: %w: %q", len(l), model.ErrInvalidAmount, amountStr)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", len(l), err)
		}
		l = append(l, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	s.log.WithField("records", len(l)).Debug("ledger loaded")
	return l, nil
}

// Save implements Store. All rows are replaced in a single transaction.
func (s *SQLiteStore) Save(l model.Ledger) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM expenses"); err != nil {
		return fmt.Errorf("clearing ledger: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO expenses (date, category, amount, description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range l {
		if _, err := stmt.Exec(e.Date.Format(time.RFC3339Nano), e.Category, e.Amount.String(), e.Description); err != nil {
			return fmt.Errorf("inserting expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ledger: %w", err)
	}

	s.log.WithField("records", len(l)).Debug("ledger saved")
	return nil
}

// Count returns the number of stored expenses.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
