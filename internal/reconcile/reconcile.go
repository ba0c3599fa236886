// Package reconcile maps a lattice point onto configuration writes for one
// case. Namelist-targeted parameters are written into user_nl_{component}
// after purging every key the lattice owns; store-targeted parameters are
// written through the case control interface, one command per key.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/namelist-lattice/internal/lattice"
)

// Marker precedes the entries appended for a lattice point.
const Marker = "! Following entries written by namelist-lattice"

// DefaultComponent selects user_nl_eam when no component is configured.
const DefaultComponent = "eam"

// Assignment is a single key = value write.
type Assignment struct {
	Key   string
	Value string
}

func (a Assignment) String() string {
	return a.Key + "=" + a.Value
}

// Plan is the mapping record for one lattice point. It is built, applied and
// discarded; only CasePath outlives the run.
type Plan struct {
	Index      int
	Point      lattice.Point
	Suffix     string
	CasePath   string
	OutputPath string
	Namelist   []Assignment
	Store      []Assignment
}

// StoreWriter writes structured-store variables on a case.
type StoreWriter interface {
	SetVariable(ctx context.Context, casePath, key, value string) error
}

// Reconciler computes and applies Plans for one registry.
type Reconciler struct {
	dims      []lattice.Dimension
	owned     map[string]struct{}
	store     StoreWriter
	component string
}

// New snapshots the registry's dimensions. An empty component selects DefaultComponent.
func New(reg *lattice.Registry, store StoreWriter, component string) *Reconciler {
	component = strings.TrimSpace(component)
	if component == "" {
		component = DefaultComponent
	}
	owned := map[string]struct{}{}
	for _, key := range reg.Keys() {
		owned[key] = struct{}{}
	}
	return &Reconciler{
		dims:      reg.Dimensions(),
		owned:     owned,
		store:     store,
		component: component,
	}
}

// Owns reports whether key belongs to any registered dimension.
func (r *Reconciler) Owns(key string) bool {
	_, ok := r.owned[key]
	return ok
}

// NamelistPath returns the namelist file of a case.
func (r *Reconciler) NamelistPath(casePath string) string {
	return filepath.Join(casePath, "user_nl_"+r.component)
}

// Plan partitions a point's values into namelist and store writes, in
// registration order with group members expanded one by one.
func (r *Reconciler) Plan(index int, point lattice.Point, suffix, casePath, outputPath string) Plan {
	plan := Plan{
		Index:      index,
		Point:      point.Clone(),
		Suffix:     suffix,
		CasePath:   casePath,
		OutputPath: outputPath,
	}
	for i, dim := range r.dims {
		if i >= len(point) {
			break
		}
		names := dim.Names()
		for j, name := range names {
			if j >= len(point[i]) {
				break
			}
			write := Assignment{Key: name, Value: point[i][j].Text}
			if dim.Target() == lattice.TargetStore {
				plan.Store = append(plan.Store, write)
			} else {
				plan.Namelist = append(plan.Namelist, write)
			}
		}
	}
	return plan
}

// Apply issues every store write, then rewrites the namelist file. The first
// failing store write aborts the point.
func (r *Reconciler) Apply(ctx context.Context, plan Plan) error {
	for _, write := range plan.Store {
		if r.store == nil {
			return fmt.Errorf("reconcile: no store writer configured for %s", write.Key)
		}
		if err := r.store.SetVariable(ctx, plan.CasePath, write.Key, write.Value); err != nil {
			return fmt.Errorf("reconcile: set %s on %s: %w", write, plan.CasePath, err)
		}
	}
	if err := ApplyNamelistFile(r.NamelistPath(plan.CasePath), r.Owns, plan.Namelist); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	return nil
}

// ApplyNamelistFile rewrites path with Namelist. A missing file is treated as empty.
func ApplyNamelistFile(path string, owns func(string) bool, writes []Assignment) error {
	mode := fs.FileMode(0o644)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
	updated := Namelist(string(data), owns, writes)
	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Namelist drops every entry whose key is owned, drops earlier copies of the
// marker, keeps all other lines verbatim, and appends the marker followed by
// one "key = value" line per write. Applying the same writes twice yields the
// same content.
func Namelist(content string, owns func(string) bool, writes []Assignment) string {
	var b strings.Builder
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == Marker {
			continue
		}
		if owns != nil && owns(EntryKey(line)) {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(Marker)
	b.WriteByte('\n')
	for _, w := range writes {
		fmt.Fprintf(&b, "%s = %s\n", w.Key, w.Value)
	}
	return b.String()
}

// EntryKey returns the text before the first '=' with all whitespace removed.
// Comment lines yield a key starting with '!' and never match a parameter.
func EntryKey(line string) string {
	compact := strings.Join(strings.Fields(line), "")
	key, _, _ := strings.Cut(compact, "=")
	return key
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
