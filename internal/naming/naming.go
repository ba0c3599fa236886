// Package naming derives case directory names from lattice points.
//
// A label joins one "{display}_{value}" pair per dimension with a double
// underscore, in registration order:
//
//	dt_1800__diff_1_1_1__nu_1.000000e15
//
// Grouped dimensions display under their group label with their components
// joined by underscores. Numbers at or above 1e5 render in %e notation with
// the '+' removed.
package naming

import (
	"fmt"
	"strings"

	"github.com/kingrea/namelist-lattice/internal/lattice"
)

// Separator joins label pairs, and the prefix to the suffix in case names.
const Separator = "__"

const exponentThreshold = 1e5

// Namer labels points of one registry.
type Namer struct {
	dims []lattice.Dimension
}

// New snapshots the registry's dimensions.
func New(reg *lattice.Registry) *Namer {
	return &Namer{dims: reg.Dimensions()}
}

// Label derives the suffix for a point.
func (n *Namer) Label(point lattice.Point) string {
	pairs := make([]string, 0, len(n.dims))
	for i, dim := range n.dims {
		if i >= len(point) {
			break
		}
		pairs = append(pairs, dim.Label()+"_"+DisplayValue(dim, point[i]))
	}
	return strings.Join(pairs, Separator)
}

// Suffixes resolves one suffix per point. An empty override derives labels;
// a single override is shared by every point; otherwise the override must
// have one entry per point.
func (n *Namer) Suffixes(points []lattice.Point, override []string) ([]string, error) {
	out := make([]string, len(points))
	switch {
	case len(override) == 0:
		for i, p := range points {
			out[i] = n.Label(p)
		}
	case len(override) == 1:
		for i := range points {
			out[i] = override[0]
		}
	case len(override) == len(points):
		copy(out, override)
	default:
		return nil, fmt.Errorf("%w: %d suffixes for %d lattice points (give one, or one per point)",
			lattice.ErrLengthMismatch, len(override), len(points))
	}
	return out, nil
}

// DisplayValue renders a slot value for use in a directory name.
func DisplayValue(dim lattice.Dimension, tuple lattice.Tuple) string {
	kinds := dim.Kinds()
	parts := make([]string, len(tuple))
	for i, v := range tuple {
		kind := v.Kind
		if i < len(kinds) {
			kind = kinds[i]
		}
		parts[i] = displayComponent(kind, v)
	}
	return strings.Join(parts, "_")
}

func displayComponent(kind lattice.Kind, v lattice.Value) string {
	if kind == lattice.KindNumber && v.Number >= exponentThreshold {
		return strings.ReplaceAll(fmt.Sprintf("%e", v.Number), "+", "")
	}
	return strings.ReplaceAll(v.Text, ",", "_")
}

// CaseName joins a prefix and suffix into a case directory name.
func CaseName(prefix, suffix string) string {
	return prefix + Separator + suffix
}
