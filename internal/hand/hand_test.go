package hand

import (
	"testing"

	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValues(t *testing.T) {
	_, err := NewValues()
	require.ErrorIs(t, err, ErrEmptyValues)

	in := []int{0, 5}
	v, err := NewValues(in...)
	require.NoError(t, err)
	in[0] = 99
	assert.Equal(t, []int{0, 5}, v.Slice(), "values must not alias the caller's slice")

	out := v.Slice()
	out[1] = 42
	assert.Equal(t, 5, v.At(1), "Slice must return a copy")
}

func TestValuesAccessors(t *testing.T) {
	v := MustValues(5, 0, 5)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []int{0, 5}, v.Distinct())
	assert.InDelta(t, 2.0/3.0, v.Frequencies()[5], 1e-12)
	assert.Equal(t, "{5, 0, 5}", v.String())
	assert.Equal(t, "{0, 5}", Default().String())
}

func TestMustValuesPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrEmptyValues, func() { MustValues() })
}

func TestUniformSourceDrawsMembers(t *testing.T) {
	src := NewSource(Default(), randutil.New(1))
	counts := map[int]int{}
	for i := 0; i < 10000; i++ {
		counts[src.Draw()]++
	}
	require.Len(t, counts, 2)
	assert.InDelta(t, 5000, counts[0], 300)
	assert.InDelta(t, 5000, counts[5], 300)
}

func TestUniformSourceDegenerate(t *testing.T) {
	src := NewSource(MustValues(0, 0), randutil.New(1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0, src.Draw())
	}
}
