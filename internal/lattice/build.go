package lattice

import (
	"fmt"
	"strings"
)

// Point is one lattice position: one tuple per dimension, in registration order.
type Point []Tuple

// Clone returns a deep copy of the point.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	for i, t := range p {
		out[i] = t.Clone()
	}
	return out
}

// Build expands dims into lattice points. It is pure: the same dimensions and
// mode always produce the same sequence.
//
// In ModeFill the first dimension varies fastest. In ModeZip every dimension
// must have the same cardinality.
func Build(dims []Dimension, mode Mode) ([]Point, error) {
	if len(dims) == 0 {
		return nil, nil
	}
	if mode == ModeZip {
		return zip(dims)
	}
	return product(dims), nil
}

func product(dims []Dimension) []Point {
	total := 1
	for _, d := range dims {
		total *= d.Len()
	}
	if total == 0 {
		return []Point{}
	}
	points := make([]Point, 0, total)
	idx := make([]int, len(dims))
	for n := 0; n < total; n++ {
		point := make(Point, len(dims))
		for i, d := range dims {
			point[i] = d.values[idx[i]].Clone()
		}
		points = append(points, point)
		for i := range idx {
			idx[i]++
			if idx[i] < dims[i].Len() {
				break
			}
			idx[i] = 0
		}
	}
	return points
}

func zip(dims []Dimension) ([]Point, error) {
	size := dims[0].Len()
	for _, d := range dims[1:] {
		if d.Len() != size {
			return nil, fmt.Errorf("%w: no-fill mode needs equal lengths, got %s",
				ErrCardinalityMismatch, describeLengths(dims))
		}
	}
	points := make([]Point, size)
	for n := 0; n < size; n++ {
		point := make(Point, len(dims))
		for i, d := range dims {
			point[i] = d.values[n].Clone()
		}
		points[n] = point
	}
	return points, nil
}

func describeLengths(dims []Dimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%s=%d", d.Label(), d.Len())
	}
	return strings.Join(parts, ", ")
}
