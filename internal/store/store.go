// Package store keeps small bits of client state (session cookie, last
// used server) in a sqlite file under the user's data directory, so a
// restart does not force a fresh login.
package store

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

// Well-known setting keys.
const (
	KeySession   = "session"
	KeyServerURL = "server_url"
)

// Store wraps the settings database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the settings database at the default path.
func Open() (*Store, error) {
	path, err := defaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath creates or opens the settings database at an explicit path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open settings db")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init settings schema")
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// defaultPath returns the settings file location, preferring XDG_DATA_HOME.
func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "aura")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create data dir")
	}
	return filepath.Join(appDir, "aura.db"), nil
}

// Get retrieves a setting, empty string when unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, errors.Wrap(err, "get setting")
}

// Set stores a setting, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return errors.Wrap(err, "set setting")
}

// Delete removes a setting.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	return errors.Wrap(err, "delete setting")
}
