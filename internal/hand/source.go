package hand

import rand "math/rand/v2"

// Source produces hand values. Draws are independent of each other.
type Source interface {
	Draw() int
}

// UniformSource draws uniformly from a value set.
type UniformSource struct {
	values Values
	rng    *rand.Rand
}

// NewSource returns a UniformSource over values driven by rng.
func NewSource(values Values, rng *rand.Rand) *UniformSource {
	return &UniformSource{values: values, rng: rng}
}

// Draw returns one member of the value set.
func (s *UniformSource) Draw() int {
	return s.values.At(s.rng.IntN(s.values.Len()))
}
