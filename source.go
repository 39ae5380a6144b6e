package eigenfish

import "github.com/nozzle/eigenfish/internal/rand"

// Source supplies the random variates the sampler consumes.
// *math/rand/v2.Rand satisfies it, as does the generator from NewSource.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal deviate.
	NormFloat64() float64
}

// NewSource returns a Mersenne Twister seeded like numpy.random.seed(seed),
// so uniform, normal and torus draws reproduce NumPy's legacy global
// generator value for value.
func NewSource(seed int64) Source {
	return rand.NewMT19937(uint32(seed))
}

// workerSeed derives a 32-bit seed for a parallel worker from the master source.
func workerSeed(src Source) uint32 {
	return uint32(src.Float64() * (1 << 32))
}
