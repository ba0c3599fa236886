package lattice

import (
	"fmt"
	"strings"
)

// Target selects the configuration substrate that receives a dimension's writes.
type Target int

const (
	// TargetNamelist writes key = value lines into the case's user namelist file.
	TargetNamelist Target = iota
	// TargetStore writes through the case control interface (xmlchange).
	TargetStore
)

func (t Target) String() string {
	switch t {
	case TargetNamelist:
		return "namelist"
	case TargetStore:
		return "store"
	}
	return "unknown"
}

// ParseTarget maps a configuration keyword to a Target. Empty selects the namelist.
func ParseTarget(value string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "namelist", "user_nl", "text":
		return TargetNamelist, nil
	case "store", "xml", "xmlchange":
		return TargetStore, nil
	}
	return TargetNamelist, fmt.Errorf("lattice: unknown target %q (want namelist or store)", value)
}

// Dimension is one registered axis. It is immutable once added to a Registry.
type Dimension struct {
	names  []string
	values []Tuple
	kinds  []Kind
	target Target
	group  string
}

// Names returns the member names; a single name for scalar dimensions.
func (d Dimension) Names() []string {
	return cloneStrings(d.names)
}

// Values returns the value tuples in declaration order.
func (d Dimension) Values() []Tuple {
	out := make([]Tuple, len(d.values))
	for i, t := range d.values {
		out[i] = t.Clone()
	}
	return out
}

// Kinds returns the value kind of each member, fixed at registration.
func (d Dimension) Kinds() []Kind {
	out := make([]Kind, len(d.kinds))
	copy(out, d.kinds)
	return out
}

func (d Dimension) Target() Target { return d.target }

func (d Dimension) IsGroup() bool { return d.group != "" }

func (d Dimension) GroupLabel() string { return d.group }

// Label is the display name used in case suffixes: the group label for
// grouped dimensions, the parameter name otherwise.
func (d Dimension) Label() string {
	if d.IsGroup() {
		return d.group
	}
	return d.names[0]
}

// Len returns the dimension's cardinality.
func (d Dimension) Len() int { return len(d.values) }

func newDimension(names []string, values []Tuple, target Target, group string) Dimension {
	kinds := make([]Kind, len(names))
	for _, tuple := range values {
		for i, v := range tuple {
			if v.Kind == KindString {
				kinds[i] = KindString
			}
		}
	}
	stored := make([]Tuple, len(values))
	for i, t := range values {
		stored[i] = t.Clone()
	}
	return Dimension{
		names:  cloneStrings(names),
		values: stored,
		kinds:  kinds,
		target: target,
		group:  group,
	}
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
