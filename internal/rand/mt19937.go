// Package rand provides random number generation compatible with NumPy's RandomState.
// This implements the Mersenne Twister (MT19937) algorithm for exact reproducibility
// with Python's numpy.random.RandomState, including the legacy Gaussian sampler
// behind numpy.random.normal.
package rand

import "math"

const (
	mtN        = 624
	mtM        = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
)

// MT19937 is a Mersenne Twister random number generator compatible with NumPy.
// It is not safe for concurrent use; parallel callers need one generator each.
type MT19937 struct {
	mt  [mtN]uint32
	mti int

	// Cached second value of the polar Box-Muller pair, as in NumPy's legacy_gauss.
	hasGauss bool
	gauss    float64
}

// NewMT19937 creates a new Mersenne Twister with the given seed.
// This matches numpy.random.RandomState(seed).
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// Seed initializes the generator with a seed.
// This matches numpy.random.seed(seed), which also drops any cached Gaussian.
func (mt *MT19937) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = 1812433253*(mt.mt[i-1]^(mt.mt[i-1]>>30)) + uint32(i)
	}
	mt.mti = mtN
	mt.hasGauss = false
	mt.gauss = 0
}

// Uint32 generates a random uint32.
func (mt *MT19937) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0, matrixA}

	if mt.mti >= mtN {
		// Generate N words at a time
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
		}
		y = (mt.mt[mtN-1] & upperMask) | (mt.mt[0] & lowerMask)
		mt.mt[mtN-1] = mt.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
		mt.mti = 0
	}

	y = mt.mt[mt.mti]
	mt.mti++

	// Tempering
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18

	return y
}

// Uint64 returns two consecutive outputs joined high word first.
// It makes *MT19937 a math/rand/v2 Source.
func (mt *MT19937) Uint64() uint64 {
	hi := uint64(mt.Uint32())
	return hi<<32 | uint64(mt.Uint32())
}

// Float64 generates a random float64 in [0, 1).
// This matches numpy's random_sample() / uniform(0, 1).
func (mt *MT19937) Float64() float64 {
	// NumPy's random_double: 27 high bits of one word and 26 of the next.
	a := mt.Uint32() >> 5
	b := mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uniform generates a random float64 in [low, high).
// This matches numpy.random.uniform(low, high).
func (mt *MT19937) Uniform(low, high float64) float64 {
	return low + (high-low)*mt.Float64()
}

// NormFloat64 returns a standard normal deviate.
// This matches numpy.random.standard_normal on a legacy RandomState: the polar
// Box-Muller method producing two values, the second cached for the next call.
func (mt *MT19937) NormFloat64() float64 {
	if mt.hasGauss {
		mt.hasGauss = false
		return mt.gauss
	}

	var x1, x2, r2 float64
	for {
		x1 = 2.0*mt.Float64() - 1.0
		x2 = 2.0*mt.Float64() - 1.0
		r2 = x1*x1 + x2*x2
		if r2 < 1.0 && r2 != 0.0 {
			break
		}
	}

	f := math.Sqrt(-2.0 * math.Log(r2) / r2)
	mt.gauss = f * x1
	mt.hasGauss = true
	return f * x2
}

// Normal generates a normal deviate with the given mean and standard deviation.
// This matches numpy.random.normal(loc, scale).
func (mt *MT19937) Normal(loc, scale float64) float64 {
	return loc + scale*mt.NormFloat64()
}

// Intn returns a random int in [0, n).
func (mt *MT19937) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// Simple modulo reduction; NumPy's bounded integer path masks and rejects,
	// so index draws are not bit-compatible with numpy.random.choice.
	return int(mt.Uint32()>>1) % n
}
