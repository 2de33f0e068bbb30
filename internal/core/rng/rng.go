// Package rng derives independent deterministic random streams from a
// single root seed. Each subsystem asks for its own labeled stream so
// that adding a draw in one subsystem never shifts the sequence seen by
// another.
package rng

import (
	"hash/fnv"
	"math/rand"
)

// Derive returns a rand.Rand seeded from the root seed and a subsystem
// label. The same (seed, label) pair always yields the same sequence.
func Derive(seed int64, label string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(label))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}
