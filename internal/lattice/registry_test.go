package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(values ...int) []Value {
	out := make([]Value, len(values))
	for i, v := range values {
		out[i] = Int(v)
	}
	return out
}

func pointTexts(points []Point) [][]string {
	out := make([][]string, len(points))
	for i, p := range points {
		row := make([]string, len(p))
		for j, t := range p {
			row[j] = t.Text()
		}
		out[i] = row
	}
	return out
}

func TestFillModeFirstDimensionVariesFastest(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1, 2)}))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "b", Values: ints(10, 20)}))

	points, err := reg.Lattice()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "10"}, {"2", "10"}, {"1", "20"}, {"2", "20"}}, pointTexts(points))
}

func TestFillModeSizeIsProductOfCardinalities(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddScalars(TargetNamelist,
		ScalarSpec{Name: "a", Values: ints(1, 2, 3)},
		ScalarSpec{Name: "b", Values: ints(1, 2)},
	))
	require.NoError(t, reg.AddGroup(GroupSpec{
		Names:  []string{"p1", "p2"},
		Values: []Tuple{ParseTuple("1,1"), ParseTuple("2,2"), ParseTuple("3,3"), ParseTuple("4,4")},
		Label:  "grp",
	}))
	size, err := reg.Size()
	require.NoError(t, err)
	assert.Equal(t, 3*2*4, size)
}

func TestZipModePairsPositions(t *testing.T) {
	reg := NewRegistry(WithMode(ModeZip))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1, 2)}))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "b", Values: ints(10, 20)}))

	points, err := reg.Lattice()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "10"}, {"2", "20"}}, pointTexts(points))
}

func TestZipModeCardinalityMismatchKeepsLastValidState(t *testing.T) {
	reg := NewRegistry(WithMode(ModeZip))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1, 2)}))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "b", Values: ints(10, 20)}))

	err := reg.AddScalar(TargetNamelist, ScalarSpec{Name: "c", Values: ints(1, 2, 3)})
	require.ErrorIs(t, err, ErrCardinalityMismatch)
	assert.Len(t, reg.Dimensions(), 2)
	size, err := reg.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestLatticeNotReadyBelowTwoDimensions(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lattice()
	require.ErrorIs(t, err, ErrLatticeNotReady)

	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1, 2)}))
	_, err = reg.Lattice()
	require.ErrorIs(t, err, ErrLatticeNotReady)
	require.ErrorIs(t, reg.Filter([]bool{true, false}), ErrLatticeNotReady)
}

func TestDuplicateNamesRejectedRegardlessOfOrder(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*Registry) error
		add   func(*Registry) error
	}{
		{
			name:  "scalar after scalar",
			setup: func(r *Registry) error { return r.AddScalar(TargetNamelist, ScalarSpec{Name: "p2", Values: ints(1)}) },
			add:   func(r *Registry) error { return r.AddScalar(TargetStore, ScalarSpec{Name: "p2", Values: ints(2)}) },
		},
		{
			name: "scalar after group member",
			setup: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p1", "p2", "p3"}, Values: []Tuple{ParseTuple("1,1,1"), ParseTuple("2,2,2")}, Label: "grp"})
			},
			add: func(r *Registry) error { return r.AddScalar(TargetNamelist, ScalarSpec{Name: "p2", Values: ints(1)}) },
		},
		{
			name:  "group member after scalar",
			setup: func(r *Registry) error { return r.AddScalar(TargetNamelist, ScalarSpec{Name: "p2", Values: ints(1)}) },
			add: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p1", "p2"}, Values: []Tuple{ParseTuple("1,1")}, Label: "grp"})
			},
		},
		{
			name: "group member after group member",
			setup: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p1", "p2"}, Values: []Tuple{ParseTuple("1,1")}, Label: "g1"})
			},
			add: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p3", "p1"}, Values: []Tuple{ParseTuple("1,1")}, Label: "g2"})
			},
		},
		{
			name: "group label reused",
			setup: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p1", "p2"}, Values: []Tuple{ParseTuple("1,1")}, Label: "grp"})
			},
			add: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p3", "p4"}, Values: []Tuple{ParseTuple("1,1")}, Label: "grp"})
			},
		},
		{
			name:  "duplicates inside one group",
			setup: func(r *Registry) error { return nil },
			add: func(r *Registry) error {
				return r.AddGroup(GroupSpec{Names: []string{"p1", "p1"}, Values: []Tuple{ParseTuple("1,1")}, Label: "grp"})
			},
		},
		{
			name:  "duplicates inside one batch",
			setup: func(r *Registry) error { return nil },
			add: func(r *Registry) error {
				return r.AddScalars(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1)}, ScalarSpec{Name: "a", Values: ints(2)})
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			require.NoError(t, tc.setup(reg))
			before := len(reg.Dimensions())
			require.ErrorIs(t, tc.add(reg), ErrDuplicateName)
			assert.Len(t, reg.Dimensions(), before)
		})
	}
}

func TestGroupArityMismatch(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddGroup(GroupSpec{
		Names:  []string{"p1", "p2", "p3"},
		Values: []Tuple{ParseTuple("1,1,1"), ParseTuple("2,2")},
		Label:  "grp",
	})
	require.ErrorIs(t, err, ErrArityMismatch)
	assert.Empty(t, reg.Dimensions())
}

func TestGroupRequiresLabel(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddGroup(GroupSpec{Names: []string{"p1", "p2"}, Values: []Tuple{ParseTuple("1,1")}})
	require.ErrorIs(t, err, ErrConflictingArguments)
}

func TestScalarValuesAndBoundsAreExclusive(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddScalar(TargetNamelist, ScalarSpec{
		Name:   "a",
		Values: ints(1),
		Bounds: &Bounds{Lower: 0, Upper: 1, Samples: 2},
	})
	require.ErrorIs(t, err, ErrConflictingArguments)

	err = reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a"})
	require.ErrorIs(t, err, ErrConflictingArguments)
	assert.Empty(t, reg.Dimensions())
}

func TestScalarBatchIsAtomic(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddScalars(TargetNamelist,
		ScalarSpec{Name: "a", Values: ints(1)},
		ScalarSpec{Name: "b"},
	)
	require.ErrorIs(t, err, ErrConflictingArguments)
	assert.Empty(t, reg.Dimensions())
}

func TestBoundsGenerateSamples(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddScalars(TargetNamelist,
		ScalarSpec{Name: "lin", Bounds: &Bounds{Lower: 0, Upper: 1, Samples: 5}},
		ScalarSpec{Name: "log", Bounds: &Bounds{Lower: 1e-4, Upper: 1, Samples: 5, Log: true}},
	))
	dims := reg.Dimensions()
	require.Len(t, dims, 2)

	var lin, logs []float64
	for _, tuple := range dims[0].Values() {
		lin = append(lin, tuple[0].Number)
	}
	for _, tuple := range dims[1].Values() {
		logs = append(logs, tuple[0].Number)
	}
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, lin, 1e-12)
	assert.InDeltaSlice(t, []float64{1e-4, 1e-3, 1e-2, 1e-1, 1}, logs, 1e-12)
	assert.Equal(t, []Kind{KindNumber}, dims[0].Kinds())
}

func TestInvalidBounds(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Bounds: &Bounds{Lower: 0, Upper: 1, Samples: 0}})
	require.ErrorIs(t, err, ErrInvalidBounds)
	err = reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Bounds: &Bounds{Lower: 0, Upper: 1, Samples: 3, Log: true}})
	require.ErrorIs(t, err, ErrInvalidBounds)
}

func TestWarningsAreAdvisory(t *testing.T) {
	var warnings []Warning
	reg := NewRegistry(WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{
		Name:   "scheme",
		Values: []Value{Str("'quoted'"), Str("bare")},
	}))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "x,y", Values: ints(1)}))

	require.Len(t, warnings, 2)
	assert.Equal(t, "scheme", warnings[0].Name)
	assert.Contains(t, warnings[0].Message, "bare")
	assert.Contains(t, warnings[1].Message, "group")
	assert.Len(t, reg.Dimensions(), 2)
}

func TestKindsAreFixedPerMember(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddGroup(GroupSpec{
		Names:  []string{"n", "s"},
		Values: []Tuple{ParseTuple("1,'a'"), ParseTuple("2,'b'")},
		Label:  "mix",
	}))
	assert.Equal(t, []Kind{KindNumber, KindString}, reg.Dimensions()[0].Kinds())
}

func TestKeysExpandGroupMembers(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1)}))
	require.NoError(t, reg.AddGroup(GroupSpec{Names: []string{"p1", "p2"}, Values: []Tuple{ParseTuple("1,1")}, Label: "grp", Target: TargetStore}))
	assert.Equal(t, []string{"a", "p1", "p2"}, reg.Keys())
}

func TestAddRebuildsAndDropsFilter(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "a", Values: ints(1, 2)}))
	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "b", Values: ints(10, 20)}))
	require.NoError(t, reg.Filter([]bool{true, false, false, true}))
	size, _ := reg.Size()
	require.Equal(t, 2, size)

	require.NoError(t, reg.AddScalar(TargetNamelist, ScalarSpec{Name: "c", Values: ints(7)}))
	size, _ = reg.Size()
	assert.Equal(t, 4, size)
}

func TestBuildIsDeterministic(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddScalars(TargetNamelist,
		ScalarSpec{Name: "a", Values: ints(1, 2, 3)},
		ScalarSpec{Name: "b", Values: []Value{Str("'x'"), Str("'y'")}},
	))
	first, err := Build(reg.Dimensions(), ModeFill)
	require.NoError(t, err)
	second, err := Build(reg.Dimensions(), ModeFill)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
