// Package randutil centralizes deterministic random generation for every
// heuristic in this module.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms.
//   - Explicit threading: every heuristic takes a *rand.Rand argument; nothing
//     reads process-global random state.
//   - No hidden allocations in hot paths; O(n) shuffles.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use DeriveSeed to give repeated runs independent, reproducible streams.
package randutil

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// OrDefault returns rng, or a DefaultSeed stream when rng is nil.
func OrDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}

	return FromSeed(0)
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64-style finalizer, so neighbouring streams are decorrelated.
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// ShuffleInts performs an in-place Fisher–Yates shuffle of a.
// Complexity: O(n) time, O(1) extra space.
func ShuffleInts(a []int, rng *rand.Rand) {
	var (
		n = len(a)
		i int
		j int
	)
	if n <= 1 {
		return
	}
	r := OrDefault(rng)
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Range returns the slice 0..n-1 in ascending order (nil for n ≤ 0).
func Range(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
