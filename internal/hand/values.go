// Package hand provides the values a player's hand can take and the random
// source hands are drawn from.
package hand

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrEmptyValues is returned when a value set has no members.
var ErrEmptyValues = errors.New("hand value set must not be empty")

// Values is an immutable multiset of hand values. Each member is equally
// likely to be drawn, so repeated members weight the draw.
type Values struct {
	v []int
}

// Default is the two-value set {0, 5}.
func Default() Values {
	return Values{v: []int{0, 5}}
}

// NewValues builds a value set from the given members.
func NewValues(values ...int) (Values, error) {
	if len(values) == 0 {
		return Values{}, ErrEmptyValues
	}
	return Values{v: slices.Clone(values)}, nil
}

// MustValues is like NewValues but panics on an empty set.
func MustValues(values ...int) Values {
	v, err := NewValues(values...)
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of members, counting repeats.
func (v Values) Len() int { return len(v.v) }

// At returns the i-th member.
func (v Values) At(i int) int { return v.v[i] }

// Slice returns a copy of the members in order.
func (v Values) Slice() []int { return slices.Clone(v.v) }

// Frequencies maps every distinct member to its draw probability.
func (v Values) Frequencies() map[int]float64 {
	freq := make(map[int]float64, len(v.v))
	for _, x := range v.v {
		freq[x] += 1 / float64(len(v.v))
	}
	return freq
}

// Distinct returns the distinct members in ascending order.
func (v Values) Distinct() []int {
	d := slices.Clone(v.v)
	slices.Sort(d)
	return slices.Compact(d)
}

func (v Values) String() string {
	parts := make([]string, len(v.v))
	for i, x := range v.v {
		parts[i] = fmt.Sprint(x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
