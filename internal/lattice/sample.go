package lattice

import (
	"fmt"
	"math"
)

// Bounds generates evenly spaced samples between Lower and Upper inclusive.
// With Log set the spacing is uniform in log10, i.e. samples are 10^x for x
// evenly spaced between log10(Lower) and log10(Upper).
type Bounds struct {
	Lower   float64
	Upper   float64
	Samples int
	Log     bool
}

func (b Bounds) values() ([]Value, error) {
	if b.Samples < 1 {
		return nil, fmt.Errorf("%w: samples must be >= 1, got %d", ErrInvalidBounds, b.Samples)
	}
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite", ErrInvalidBounds)
	}
	var samples []float64
	if b.Log {
		if b.Lower <= 0 || b.Upper <= 0 {
			return nil, fmt.Errorf("%w: log spacing requires positive bounds, got [%g, %g]", ErrInvalidBounds, b.Lower, b.Upper)
		}
		samples = Logspace(b.Lower, b.Upper, b.Samples)
	} else {
		samples = Linspace(b.Lower, b.Upper, b.Samples)
	}
	out := make([]Value, len(samples))
	for i, s := range samples {
		out[i] = Num(s)
	}
	return out, nil
}

// Linspace returns n evenly spaced samples over [lo, hi]. The last sample is
// exactly hi; a single sample is lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Logspace returns n samples over [lo, hi] spaced uniformly in log10.
func Logspace(lo, hi float64, n int) []float64 {
	exps := Linspace(math.Log10(lo), math.Log10(hi), n)
	out := make([]float64, len(exps))
	for i, e := range exps {
		out[i] = math.Pow(10, e)
	}
	if n > 0 {
		out[0] = lo
	}
	if n > 1 {
		out[n-1] = hi
	}
	return out
}
