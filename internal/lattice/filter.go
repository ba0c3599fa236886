package lattice

import "fmt"

// Filter returns the points whose mask entry is true, preserving order.
func Filter(points []Point, mask []bool) ([]Point, error) {
	if len(mask) != len(points) {
		return nil, fmt.Errorf("%w: mask has %d entries for %d lattice points", ErrLengthMismatch, len(mask), len(points))
	}
	out := make([]Point, 0, len(points))
	for i, keep := range mask {
		if keep {
			out = append(out, points[i].Clone())
		}
	}
	return out, nil
}
