package systems

import (
	"math/rand"

	"github.com/pthm-cable/analogdigital/config"
)

// randRange returns a uniform integer in [lo, hi]. An empty range yields lo.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// randIn returns a uniform integer within the configured inclusive range.
func randIn(rng *rand.Rand, r config.IntRange) int {
	return randRange(rng, r.Min, r.Max)
}

// oneIn reports true with probability 1/n.
func oneIn(rng *rand.Rand, n int) bool {
	if n <= 1 {
		return true
	}
	return rng.Intn(n) == 0
}
