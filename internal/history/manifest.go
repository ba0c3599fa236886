// Package history persists the clone registry of a run so that submit,
// resubmit and status work across invocations.
package history

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no manifest has been saved yet.
var ErrNotFound = errors.New("history: manifest not found")

// State is the lifecycle stage a point reached.
type State string

const (
	StatePending      State = "PENDING"
	StateNamed        State = "NAMED"
	StateProvisioned  State = "PROVISIONED"
	StateReconciled   State = "RECONCILED"
	StateRegistered   State = "REGISTERED"
	StateReadExisting State = "READ_EXISTING"
	StateFailed       State = "FAILED"
)

// Registered reports whether the state puts the case in the clone registry.
func (s State) Registered() bool {
	return s == StateRegistered || s == StateReadExisting
}

// PointRecord tracks one lattice point.
type PointRecord struct {
	Index  int      `json:"index"`
	Suffix string   `json:"suffix"`
	Case   string   `json:"case"`
	Output string   `json:"output,omitempty"`
	Values []string `json:"values,omitempty"`
	State  State    `json:"state"`
	Reused bool     `json:"reused,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Manifest is the persisted snapshot of a clone run.
type Manifest struct {
	RunID    string `json:"run_id"`
	RootCase string `json:"root_case"`
	Prefix   string `json:"prefix"`
	Fill     bool   `json:"fill"`
	// Dimensions labels each entry of PointRecord.Values.
	Dimensions []string      `json:"dimensions,omitempty"`
	Points     []PointRecord `json:"points"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest(rootCase, prefix string, fill bool) Manifest {
	now := time.Now().UTC()
	return Manifest{
		RunID:     uuid.NewString(),
		RootCase:  rootCase,
		Prefix:    prefix,
		Fill:      fill,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record inserts or replaces the record with the same index.
func (m *Manifest) Record(rec PointRecord) {
	m.UpdatedAt = time.Now().UTC()
	for i := range m.Points {
		if m.Points[i].Index == rec.Index {
			m.Points[i] = rec
			return
		}
	}
	m.Points = append(m.Points, rec)
}

// Cases lists registered case paths in registration order.
func (m Manifest) Cases() []string {
	var out []string
	for _, p := range m.Points {
		if p.State.Registered() && strings.TrimSpace(p.Case) != "" {
			out = append(out, p.Case)
		}
	}
	return out
}

// Store loads and saves manifests.
type Store interface {
	Load() (Manifest, error)
	Save(Manifest) error
	Close() error
}

// Lister is implemented by stores that keep every run.
type Lister interface {
	List() ([]Manifest, error)
}

// Runs returns every run the store keeps, newest first. Stores that only
// keep the latest run yield at most one manifest.
func Runs(store Store) ([]Manifest, error) {
	if lister, ok := store.(Lister); ok {
		return lister.List()
	}
	m, err := store.Load()
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []Manifest{m}, nil
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	}
	return nil, errors.New("history: unknown backend " + backend)
}
