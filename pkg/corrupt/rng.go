// pkg/corrupt/rng.go
//
// Centralized deterministic random generation for the corruption pipeline.
// Same seed + same table + same parameters must produce identical selected
// indices and identical corrupted bytes, so no time-based or package-level
// RNG sources are allowed anywhere; every draw goes through a *rand.Rand
// owned by the caller's injector instance.
package corrupt

import "math/rand"

// defaultSeed is the fixed seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultSeed int64 = 42

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 means use defaultSeed; otherwise use the seed verbatim.
func NewRand(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultSeed
	}
	return rand.New(rand.NewSource(s))
}

// ShuffleInts performs an in-place Fisher-Yates shuffle of a using rng.
func ShuffleInts(a []int, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// pickOther draws an index in [0, n) distinct from exclude.
// n must be at least 2.
func pickOther(n, exclude int, rng *rand.Rand) int {
	j := rng.Intn(n - 1)
	if j >= exclude {
		j++
	}
	return j
}
