package searcher

import (
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Rand is a source of uniformly distributed integers. Implementations need not
// be safe for concurrent use; every agent owns its own.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a source seeded from system entropy.
func NewRand() Rand {
	return frand.New()
}

// NewSeededRand returns a reproducible source.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Choose picks uniformly from a nonempty slice.
func Choose[T any](rng Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
