// Package analysis computes exact probabilities for the guessing game and the
// tests used to compare simulated results against them.
package analysis

import (
	"math"
	"slices"

	"github.com/jaked0626/analyzing-fingers-while-drunk/internal/hand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SumDistribution returns the distribution of the total of draws independent
// uniform draws from values.
func SumDistribution(values hand.Values, draws int) map[int]float64 {
	if draws <= 0 {
		return map[int]float64{0: 1}
	}

	distinct := values.Distinct()
	if len(distinct) == 2 {
		return binomialSum(values, distinct[0], distinct[1], draws)
	}

	freq := values.Frequencies()
	dist := map[int]float64{0: 1}
	for i := 0; i < draws; i++ {
		next := make(map[int]float64, len(dist)*len(freq))
		for total, p := range dist {
			for v, q := range freq {
				next[total+v] += p * q
			}
		}
		dist = next
	}
	return dist
}

// binomialSum handles two-valued sets: the total is low*draws plus
// (high-low) times a Binomial(draws, P(high)) count.
func binomialSum(values hand.Values, low, high, draws int) map[int]float64 {
	b := distuv.Binomial{N: float64(draws), P: values.Frequencies()[high]}
	dist := make(map[int]float64, draws+1)
	for k := 0; k <= draws; k++ {
		dist[low*draws+(high-low)*k] = b.Prob(float64(k))
	}
	return dist
}

// MatchProbability returns the chance that the guesser is right in a round
// with alive players. The guesser knows its own hand, so it is right exactly
// when its alive-1 fresh draws total the same as the other players' hands.
func MatchProbability(values hand.Values, alive int) float64 {
	if alive <= 1 {
		return 1
	}
	dist := SumDistribution(values, alive-1)
	p := 0.0
	for _, q := range dist {
		p += q * q
	}
	return math.Min(1, p)
}

// ExpectedRounds returns the mean number of rounds until someone is
// eliminated with alive players, or +Inf if nobody can ever be.
func ExpectedRounds(values hand.Values, alive int) float64 {
	p := MatchProbability(values, alive)
	if p == 0 {
		return math.Inf(1)
	}
	return 1 / p
}

// Support returns the possible totals for draws draws in ascending order
func Support(values hand.Values, draws int) []int {
	dist := SumDistribution(values, draws)
	totals := make([]int, 0, len(dist))
	for total := range dist {
		totals = append(totals, total)
	}
	slices.Sort(totals)
	return totals
}

// ZScore returns how many standard errors an observed rate of successes out
// of trials lies from the expected probability p.
func ZScore(successes, trials int, p float64) float64 {
	if trials == 0 || p <= 0 || p >= 1 {
		return 0
	}
	observed := float64(successes) / float64(trials)
	return (observed - p) / math.Sqrt(p*(1-p)/float64(trials))
}

// ChiSquareUniform tests whether counts are consistent with every category
// being equally likely. It returns the statistic and its p-value.
func ChiSquareUniform(counts []int) (float64, float64) {
	if len(counts) < 2 {
		return 0, 1
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, 1
	}

	expected := float64(total) / float64(len(counts))
	stat := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return stat, dist.Survival(stat)
}
