package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the latest manifest as indented JSON.
type FileStore struct {
	path string
}

// NewFileStore stores the manifest at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path reports the manifest file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the persisted manifest if present.
func (s *FileStore) Load() (Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, ErrNotFound
		}
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("history: decode %s: %w", s.path, err)
	}
	return m, nil
}

// Save writes the manifest through a temporary file and rename.
func (s *FileStore) Save(m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(encoded, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
