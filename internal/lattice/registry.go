package lattice

import (
	"fmt"
	"strings"
)

// Mode selects how dimensions combine into lattice points.
type Mode int

const (
	// ModeFill builds the full Cartesian product.
	ModeFill Mode = iota
	// ModeZip pairs the i-th value of every dimension.
	ModeZip
)

func (m Mode) String() string {
	if m == ModeZip {
		return "zip"
	}
	return "fill"
}

// Warning is a non-fatal registration notice.
type Warning struct {
	Name    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Name, w.Message)
}

// Option customizes a Registry.
type Option func(*Registry)

// WithMode sets how dimensions combine. The default is ModeFill.
func WithMode(mode Mode) Option {
	return func(r *Registry) {
		r.mode = mode
	}
}

// WithWarningHandler receives registration warnings such as unquoted string
// literals. Warnings are only delivered for adds that succeed.
func WithWarningHandler(fn func(Warning)) Option {
	return func(r *Registry) {
		if fn != nil {
			r.warn = fn
		}
	}
}

// ScalarSpec declares one scalar dimension. Exactly one of Values or Bounds
// must be supplied.
type ScalarSpec struct {
	Name   string
	Values []Value
	Bounds *Bounds
}

// GroupSpec declares a grouped dimension whose members always change together.
type GroupSpec struct {
	Names  []string
	Values []Tuple
	Label  string
	Target Target
}

// Registry holds the registered dimensions and the lattice built from them.
// It is not safe for concurrent use.
type Registry struct {
	mode   Mode
	dims   []Dimension
	points []Point
	warn   func(Warning)
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{mode: ModeFill, warn: func(Warning) {}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode reports how the lattice is expanded.
func (r *Registry) Mode() Mode { return r.mode }

// Dimensions returns the registered dimensions in registration order.
func (r *Registry) Dimensions() []Dimension {
	out := make([]Dimension, len(r.dims))
	copy(out, r.dims)
	return out
}

// Keys returns every parameter name owned by the registry, with group members
// expanded, in registration order.
func (r *Registry) Keys() []string {
	var keys []string
	for _, d := range r.dims {
		keys = append(keys, d.names...)
	}
	return keys
}

// Lattice returns a copy of the current lattice points.
func (r *Registry) Lattice() ([]Point, error) {
	if len(r.dims) < 2 {
		return nil, fmt.Errorf("%w: %d registered", ErrLatticeNotReady, len(r.dims))
	}
	out := make([]Point, len(r.points))
	for i, p := range r.points {
		out[i] = p.Clone()
	}
	return out, nil
}

// Size returns the number of lattice points.
func (r *Registry) Size() (int, error) {
	if len(r.dims) < 2 {
		return 0, fmt.Errorf("%w: %d registered", ErrLatticeNotReady, len(r.dims))
	}
	return len(r.points), nil
}

// Filter keeps the points whose mask entry is true. The unfiltered lattice is
// not retained.
func (r *Registry) Filter(mask []bool) error {
	if len(r.dims) < 2 {
		return fmt.Errorf("%w: %d registered", ErrLatticeNotReady, len(r.dims))
	}
	filtered, err := Filter(r.points, mask)
	if err != nil {
		return err
	}
	r.points = filtered
	return nil
}

// AddScalar registers a single scalar dimension.
func (r *Registry) AddScalar(target Target, spec ScalarSpec) error {
	return r.AddScalars(target, spec)
}

// AddScalars registers several scalar dimensions at once. Either all of them
// are added or none is.
func (r *Registry) AddScalars(target Target, specs ...ScalarSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: no dimensions given", ErrEmptyDimension)
	}
	taken := r.takenNames()
	var (
		dims     []Dimension
		warnings []Warning
	)
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return fmt.Errorf("%w: parameter name is required", ErrEmptyDimension)
		}
		if _, exists := taken[name]; exists {
			return fmt.Errorf("%w: parameter %s already exists in lattice", ErrDuplicateName, name)
		}
		taken[name] = struct{}{}
		if strings.Contains(name, ",") {
			warnings = append(warnings, Warning{Name: name, Message: "comma in parameter name; should this be a group?"})
		}
		values, err := scalarValues(name, spec)
		if err != nil {
			return err
		}
		tuples := make([]Tuple, len(values))
		for i, v := range values {
			tuples[i] = Tuple{v}
		}
		warnings = append(warnings, quoteWarnings(name, tuples)...)
		dims = append(dims, newDimension([]string{name}, tuples, target, ""))
	}
	if err := r.commit(dims); err != nil {
		return err
	}
	r.emit(warnings)
	return nil
}

// AddGroup registers a grouped dimension.
func (r *Registry) AddGroup(spec GroupSpec) error {
	label := strings.TrimSpace(spec.Label)
	if label == "" {
		return fmt.Errorf("%w: group label is required for a grouped dimension", ErrConflictingArguments)
	}
	if len(spec.Names) == 0 {
		return fmt.Errorf("%w: group %s has no member names", ErrEmptyDimension, label)
	}
	if len(spec.Values) == 0 {
		return fmt.Errorf("%w: group %s has no values", ErrEmptyDimension, label)
	}
	taken := r.takenNames()
	if _, exists := taken[label]; exists {
		return fmt.Errorf("%w: group label %s already exists in lattice", ErrDuplicateName, label)
	}
	names := make([]string, len(spec.Names))
	seen := make(map[string]struct{}, len(spec.Names))
	for i, raw := range spec.Names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return fmt.Errorf("%w: group %s has an empty member name", ErrEmptyDimension, label)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: parameter group %s contains %s twice", ErrDuplicateName, label, name)
		}
		if _, exists := taken[name]; exists {
			return fmt.Errorf("%w: parameter %s already exists in lattice", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
		names[i] = name
	}
	for i, tuple := range spec.Values {
		if len(tuple) != len(names) {
			return fmt.Errorf("%w: group %s has %d names but value %d (%s) has %d components",
				ErrArityMismatch, label, len(names), i, tuple.Text(), len(tuple))
		}
	}
	dim := newDimension(names, spec.Values, spec.Target, label)
	if err := r.commit([]Dimension{dim}); err != nil {
		return err
	}
	r.emit(quoteWarnings(label, spec.Values))
	return nil
}

func (r *Registry) commit(added []Dimension) error {
	next := make([]Dimension, 0, len(r.dims)+len(added))
	next = append(next, r.dims...)
	next = append(next, added...)
	points, err := Build(next, r.mode)
	if err != nil {
		return err
	}
	r.dims = next
	r.points = points
	return nil
}

// takenNames collects every member name and display label already in use.
func (r *Registry) takenNames() map[string]struct{} {
	taken := map[string]struct{}{}
	for _, d := range r.dims {
		for _, name := range d.names {
			taken[name] = struct{}{}
		}
		taken[d.Label()] = struct{}{}
	}
	return taken
}

func (r *Registry) emit(warnings []Warning) {
	for _, w := range warnings {
		r.warn(w)
	}
}

func scalarValues(name string, spec ScalarSpec) ([]Value, error) {
	hasValues := len(spec.Values) > 0
	hasBounds := spec.Bounds != nil
	switch {
	case hasValues && hasBounds:
		return nil, fmt.Errorf("%w: %s: either values or bounds must be given, not both", ErrConflictingArguments, name)
	case !hasValues && !hasBounds:
		return nil, fmt.Errorf("%w: %s: either values or bounds must be given", ErrConflictingArguments, name)
	case hasBounds:
		values, err := spec.Bounds.values()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return values, nil
	}
	out := make([]Value, len(spec.Values))
	copy(out, spec.Values)
	return out, nil
}

func quoteWarnings(name string, tuples []Tuple) []Warning {
	var warnings []Warning
	for _, tuple := range tuples {
		for _, v := range tuple {
			if v.Kind == KindString && !v.Quoted() {
				warnings = append(warnings, Warning{
					Name:    name,
					Message: fmt.Sprintf("value %s is a string without surrounding quotes; the model may reject it", v.Text),
				})
			}
		}
	}
	return warnings
}
