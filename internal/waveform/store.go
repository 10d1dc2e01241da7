package waveform

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "chorus"
	dbFileName = "waveforms.db"
)

// Store persists computed waveforms keyed by normalized source ref, so
// transient registry teardowns and process restarts do not force a
// recompute. It is an accelerator only: the engine's in-memory cache
// stays authoritative.
type Store struct {
	db *sql.DB
}

// Open opens the store at the default XDG data location.
func Open() (*Store, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the store at an explicit path, creating parent
// directories and the schema as needed.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS waveforms (
			ref     TEXT PRIMARY KEY,
			samples TEXT NOT NULL
		);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put saves the waveform for ref, replacing any previous one.
func (s *Store) Put(ref string, data Data) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO waveforms (ref, samples) VALUES (?, ?)
		ON CONFLICT(ref) DO UPDATE SET samples = excluded.samples
	`, ref, string(encoded))
	return err
}

// Get returns the waveform for ref, or nil if none is stored.
func (s *Store) Get(ref string) (Data, error) {
	var encoded string
	err := s.db.QueryRow(`SELECT samples FROM waveforms WHERE ref = ?`, ref).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal([]byte(encoded), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the waveform for ref. Removing an absent ref is not
// an error.
func (s *Store) Delete(ref string) error {
	_, err := s.db.Exec(`DELETE FROM waveforms WHERE ref = ?`, ref)
	return err
}
