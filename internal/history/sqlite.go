package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// sortableTime orders lexically.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps every run's manifest as a JSON payload keyed by run id.
// Load returns the most recently updated run.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "history.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("history: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS manifests (
		run_id TEXT PRIMARY KEY,
		updated_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create manifests table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Load returns the latest manifest.
func (s *SQLiteStore) Load() (Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM manifests ORDER BY updated_at DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Manifest{}, ErrNotFound
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("history: select manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(payload, &m); err != nil {
		return Manifest{}, fmt.Errorf("history: decode manifest: %w", err)
	}
	return m, nil
}

// List returns every stored manifest, newest first.
func (s *SQLiteStore) List() ([]Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT payload FROM manifests ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("history: select manifests: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Manifest
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		var m Manifest
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("history: decode manifest: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Save upserts the manifest under its run id.
func (s *SQLiteStore) Save(m Manifest) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.RunID == "" {
		return errors.New("history: manifest has no run id")
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.Exec(`INSERT INTO manifests(run_id, updated_at, payload) VALUES(?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET updated_at=excluded.updated_at, payload=excluded.payload`,
		m.RunID, m.UpdatedAt.UTC().Format(sortableTime), data); err != nil {
		return fmt.Errorf("history: upsert manifest: %w", err)
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
