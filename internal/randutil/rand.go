// Package randutil derives reproducible random sources from a single seed.
package randutil

import (
	rand "math/rand/v2"

	"github.com/lox/holdem/poker"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand whose sequence depends only on seed. It satisfies
// poker.Permuter.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Deck returns a deck shuffled from seed. A zero seed gives a securely
// shuffled deck instead.
func Deck(seed int64) *poker.Deck {
	if seed == 0 {
		return poker.NewDeck(nil)
	}
	return poker.NewDeck(New(seed))
}

// Child derives the seed for the i-th independent stream of a run.
func Child(seed int64, i int) int64 {
	return int64(splitmix(uint64(seed) + uint64(i)*goldenRatio64))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
