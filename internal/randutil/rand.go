package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by
// rand/v2 so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Streams derives n statistically independent generators from a single seed.
// Stream i is a pure function of (seed, i), so a fixed seed and worker count
// always reproduce the same per-worker sequences.
func Streams(seed int64, n int) []*rand.Rand {
	streams := make([]*rand.Rand, n)
	for i := range streams {
		u := uint64(seed) + uint64(i+1)*goldenRatio64
		streams[i] = rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
	}
	return streams
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
