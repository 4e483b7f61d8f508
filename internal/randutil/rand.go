// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the source for the index-th game of a run seeded with seed.
// Every index gets its own stream, so a game's draws do not depend on which
// worker plays it or how many games came before it.
func Derive(seed int64, index int) *rand.Rand {
	return New(int64(mix(uint64(seed) ^ mix(uint64(index)+goldenRatio64))))
}

// Seed returns seed unchanged unless it is zero, in which case a time based
// seed is returned. Callers log the result so runs can be replayed.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
