package analysis

import (
	"math"
	"testing"

	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumDistributionDefaultValues(t *testing.T) {
	dist := SumDistribution(hand.Default(), 4)

	require.Len(t, dist, 5)
	assert.InDelta(t, 1.0/16, dist[0], 1e-12)
	assert.InDelta(t, 4.0/16, dist[5], 1e-12)
	assert.InDelta(t, 6.0/16, dist[10], 1e-12)
	assert.InDelta(t, 4.0/16, dist[15], 1e-12)
	assert.InDelta(t, 1.0/16, dist[20], 1e-12)
	assert.Equal(t, []int{0, 5, 10, 15, 20}, Support(hand.Default(), 4))
}

func TestSumDistributionSumsToOne(t *testing.T) {
	for _, values := range []hand.Values{
		hand.Default(),
		hand.MustValues(0, 0),
		hand.MustValues(1, 2, 3),
		hand.MustValues(0, 5, 5),
	} {
		total := 0.0
		for _, p := range SumDistribution(values, 6) {
			total += p
		}
		assert.InDelta(t, 1.0, total, 1e-9, "values %s", values)
	}
}

func TestMatchProbability(t *testing.T) {
	tests := []struct {
		name   string
		values hand.Values
		alive  int
		want   float64
	}{
		{"single player", hand.Default(), 1, 1},
		{"heads up", hand.Default(), 2, 0.5},
		{"three alive", hand.Default(), 3, 6.0 / 16},
		{"five alive", hand.Default(), 5, 70.0 / 256},
		{"degenerate", hand.MustValues(0, 0), 5, 1},
		{"three values heads up", hand.MustValues(0, 1, 2), 2, 1.0 / 3},
		{"weighted", hand.MustValues(0, 5, 5), 2, 1.0/9 + 4.0/9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MatchProbability(tt.values, tt.alive), 1e-12)
		})
	}
}

func TestExpectedRounds(t *testing.T) {
	assert.InDelta(t, 2.0, ExpectedRounds(hand.Default(), 2), 1e-12)
	assert.InDelta(t, 1.0, ExpectedRounds(hand.MustValues(0, 0), 4), 1e-12)
}

func TestZScore(t *testing.T) {
	assert.Equal(t, 0.0, ZScore(50, 100, 0.5))
	assert.InDelta(t, 2.0, ZScore(60, 100, 0.5), 1e-12)
	assert.Equal(t, 0.0, ZScore(0, 0, 0.5))
	assert.Equal(t, 0.0, ZScore(10, 10, 1))
}

func TestChiSquareUniform(t *testing.T) {
	stat, p := ChiSquareUniform([]int{100, 100, 100, 100})
	assert.Equal(t, 0.0, stat)
	assert.InDelta(t, 1.0, p, 1e-12)

	stat, p = ChiSquareUniform([]int{400, 0, 0, 0})
	assert.InDelta(t, 1200.0, stat, 1e-9)
	assert.Less(t, p, 1e-6)

	stat, p = ChiSquareUniform([]int{7})
	assert.Equal(t, 0.0, stat)
	assert.Equal(t, 1.0, p)

	_, p = ChiSquareUniform([]int{0, 0})
	assert.False(t, math.IsNaN(p))
}
