package sim

import "math/rand"

// Random is the simulation's seeded byte generator. It counts draws so a
// saved world can replay the stream to the same position.
type Random struct {
	seed  int64
	draws uint64
	rng   *rand.Rand
}

// NewRandom creates a generator for the given seed.
func NewRandom(seed int64) *Random {
	return &Random{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// RndT returns a value in [0, 255].
func (r *Random) RndT() int {
	r.draws++
	return r.rng.Intn(256)
}

// restore reseeds and skips ahead to the given draw count.
func (r *Random) restore(seed int64, draws uint64) {
	r.seed = seed
	r.rng = rand.New(rand.NewSource(seed))
	r.draws = 0
	for r.draws < draws {
		r.RndT()
	}
}
