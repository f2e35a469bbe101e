package sim

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// seedFor derives a stable per-entity seed from the engine seed and an
// entity id, so two entities created from the same engine seed still get
// independent streams.
func seedFor(base uint64, id string) uint64 {
	return base ^ xxhash.Sum64String(id)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed<<1|1))
}

// rangeF returns a uniform float64 in [min, max).
func rangeF(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}
