// Package randutil centralises how deterministic RNGs are seeded so every
// round of a simulation can be replayed from its seed alone.
package randutil

import (
	"hash/fnv"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64,
// deriving the two 64-bit PCG seeds rand/v2 needs.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForRound derives an independent per-round RNG from a base seed, so rounds
// run in parallel without sharing state and still replay individually.
func ForRound(baseSeed int64, round int) *rand.Rand {
	return New(int64(uint64(baseSeed) + uint64(round)*goldenRatio64))
}

// SeedFromString hashes a label (a player ID, a game name) into a seed.
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
