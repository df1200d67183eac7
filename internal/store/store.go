// Package store persists the expense ledger. Every backend loads and saves the
// whole ledger at once; a save is the unit of atomicity.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/sirupsen/logrus"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Backends lists every supported backend name.
var Backends = []string{BackendJSON, BackendYAML, BackendSQLite}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store loads and saves the full ledger.
type Store interface {
	// Load returns the persisted ledger, or an empty one if nothing was saved yet.
	Load() (model.Ledger, error)
	// Save replaces the persisted ledger with l.
	Save(l model.Ledger) error
	Close() error
}

// Open returns the store for backend at path.
func Open(backend, path string, log logrus.FieldLogger) (Store, error) {
	log = orStandard(log).WithFields(logrus.Fields{"backend": backend, "path": path})

	switch strings.ToLower(backend) {
	case "", BackendJSON:
		return NewJSONStore(path, log), nil
	case BackendYAML, "yml":
		return NewYAMLStore(path, log), nil
	case BackendSQLite:
		return OpenSQLite(path, log)
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownBackend, backend, strings.Join(Backends, ", "))
	}
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

// readFileIfExists returns nil data and no error when path does not exist.
func readFileIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return data, nil
}

func orStandard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}
