// Package tsp - RNG utilities for seeded restarts.
//
// Determinism: same seed ⇒ identical restart sequence on every platform.
// math/rand.Rand is not goroutine-safe; every solve owns its streams.
package tsp

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 ⇒ defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64 finalizer).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// restartRNG returns the independent stream used by restart number r.
// Streams depend only on (seed, r) so adding restarts never perturbs earlier ones.
func restartRNG(seed int64, r int) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, uint64(r))))
}

// randomOpenPath returns start followed by a uniformly shuffled permutation
// of the remaining n-1 vertices.
//
// Complexity: O(n).
func randomOpenPath(n, start int, rng *rand.Rand) []int {
	p := make([]int, 0, n)
	p = append(p, start)
	var v int
	for v = 0; v < n; v++ {
		if v != start {
			p = append(p, v)
		}
	}
	rest := p[1:]
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	return p
}
