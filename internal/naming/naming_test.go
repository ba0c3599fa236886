package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/namelist-lattice/internal/lattice"
)

func newRegistry(t *testing.T) *lattice.Registry {
	t.Helper()
	reg := lattice.NewRegistry()
	require.NoError(t, reg.AddScalar(lattice.TargetNamelist, lattice.ScalarSpec{
		Name:   "nu",
		Values: []lattice.Value{lattice.Int(150000), lattice.ParseValue("0.5")},
	}))
	require.NoError(t, reg.AddGroup(lattice.GroupSpec{
		Names:  []string{"p1", "p2", "p3"},
		Values: []lattice.Tuple{lattice.ParseTuple("1,1,1"), lattice.ParseTuple("2,2,2")},
		Label:  "grp",
	}))
	return reg
}

func TestLabelJoinsPairsInRegistrationOrder(t *testing.T) {
	reg := newRegistry(t)
	points, err := reg.Lattice()
	require.NoError(t, err)
	namer := New(reg)

	assert.Equal(t, "nu_1.500000e05__grp_1_1_1", namer.Label(points[0]))
	assert.Equal(t, "nu_0.5__grp_1_1_1", namer.Label(points[1]))
	assert.Equal(t, "nu_0.5__grp_2_2_2", namer.Label(points[3]))
}

func TestLargeNumbersUseExponentWithoutPlus(t *testing.T) {
	dim := lattice.NewRegistry()
	require.NoError(t, dim.AddScalar(lattice.TargetNamelist, lattice.ScalarSpec{Name: "n", Values: []lattice.Value{lattice.Num(150000)}}))
	got := DisplayValue(dim.Dimensions()[0], lattice.Tuple{lattice.Num(150000)})
	assert.Equal(t, "1.500000e05", got)
	assert.NotContains(t, got, "+")

	assert.Equal(t, "99999", DisplayValue(dim.Dimensions()[0], lattice.Tuple{lattice.Int(99999)}))
}

func TestFortranDoublePrecisionKeepsExponentRendering(t *testing.T) {
	reg := lattice.NewRegistry()
	require.NoError(t, reg.AddScalar(lattice.TargetNamelist, lattice.ScalarSpec{
		Name:   "a",
		Values: []lattice.Value{
			lattice.ParseValue("100000"),
			lattice.ParseValue("1e5"),
			lattice.ParseValue("99999.9"),
			lattice.ParseValue("1.0d6"),
		},
	}))
	require.NoError(t, reg.AddScalar(lattice.TargetNamelist, lattice.ScalarSpec{Name: "b", Values: []lattice.Value{lattice.Int(1)}}))
	points, err := reg.Lattice()
	require.NoError(t, err)
	namer := New(reg)

	assert.Equal(t, "a_1.000000e05__b_1", namer.Label(points[0]))
	assert.Equal(t, "a_1.000000e05__b_1", namer.Label(points[1]))
	assert.Equal(t, "a_99999.9__b_1", namer.Label(points[2]))
	assert.Equal(t, "a_1.000000e06__b_1", namer.Label(points[3]))
}

func TestGroupComponentsRenderPerKind(t *testing.T) {
	reg := lattice.NewRegistry()
	require.NoError(t, reg.AddGroup(lattice.GroupSpec{
		Names:  []string{"a", "b"},
		Values: []lattice.Tuple{{lattice.Int(200000), lattice.Str("'x,y'")}},
		Label:  "g",
	}))
	got := DisplayValue(reg.Dimensions()[0], lattice.Tuple{lattice.Int(200000), lattice.Str("'x,y'")})
	assert.Equal(t, "2.000000e05_'x_y'", got)
}

func TestDistinctPointsGetDistinctLabels(t *testing.T) {
	reg := newRegistry(t)
	points, err := reg.Lattice()
	require.NoError(t, err)
	namer := New(reg)
	seen := map[string]bool{}
	for _, p := range points {
		label := namer.Label(p)
		assert.False(t, seen[label], "duplicate label %s", label)
		seen[label] = true
	}
}

func TestSuffixOverrides(t *testing.T) {
	reg := newRegistry(t)
	points, err := reg.Lattice()
	require.NoError(t, err)
	namer := New(reg)

	shared, err := namer.Suffixes(points, []string{"run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "run", "run", "run"}, shared)

	each, err := namer.Suffixes(points, []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, each)

	_, err = namer.Suffixes(points, []string{"a", "b"})
	require.ErrorIs(t, err, lattice.ErrLengthMismatch)

	derived, err := namer.Suffixes(points, nil)
	require.NoError(t, err)
	assert.Equal(t, namer.Label(points[2]), derived[2])
}

func TestCaseName(t *testing.T) {
	assert.Equal(t, "F2010__nu_0.5", CaseName("F2010", "nu_0.5"))
}
