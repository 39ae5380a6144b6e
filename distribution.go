package eigenfish

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DefaultTorusRadius is the circle radius used by the original torus plots.
const DefaultTorusRadius = 1.0

// Kind selects how parameter values are drawn.
type Kind int

const (
	// UniformRect draws each parameter from U[-Param, Param] (real).
	UniformRect Kind = iota
	// Gaussian draws each parameter from N(0, Param²) (real).
	Gaussian
	// Torus draws each parameter as Param·e^{iθ}, θ ~ U[0, 2π).
	Torus
)

func (k Kind) String() string {
	switch k {
	case UniformRect:
		return "uniform-rect"
	case Gaussian:
		return "gaussian"
	case Torus:
		return "torus"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Distribution is a per-parameter sampling law. Every parameter slot gets an
// independent draw, so the joint law over all slots is a product.
type Distribution struct {
	Kind Kind
	// Param is the half-width for UniformRect, the standard deviation for
	// Gaussian and the radius for Torus.
	Param float64
}

// Uniform returns the UniformRect distribution over [-r, r].
func Uniform(r float64) Distribution { return Distribution{Kind: UniformRect, Param: r} }

// Normal returns the zero-mean Gaussian distribution with the given stddev.
func Normal(stddev float64) Distribution { return Distribution{Kind: Gaussian, Param: stddev} }

// Circle returns the Torus distribution with the given radius.
func Circle(radius float64) Distribution { return Distribution{Kind: Torus, Param: radius} }

func (d Distribution) String() string {
	return fmt.Sprintf("%s(%g)", d.Kind, d.Param)
}

func (d Distribution) validate() error {
	switch d.Kind {
	case UniformRect, Gaussian, Torus:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidDistribution, int(d.Kind))
	}
	if math.IsNaN(d.Param) || math.IsInf(d.Param, 0) || d.Param < 0 {
		return fmt.Errorf("%w: %s parameter %v", ErrInvalidDistribution, d.Kind, d.Param)
	}
	return nil
}

// draw samples one parameter value. The draw sequences match NumPy:
// uniform(-r, r), normal(0, s) and r*exp(1j*uniform(0, 2π)).
func (d Distribution) draw(src Source) complex128 {
	switch d.Kind {
	case Gaussian:
		return complex(d.Param*src.NormFloat64(), 0)
	case Torus:
		theta := 2 * math.Pi * src.Float64()
		return complex(d.Param, 0) * cmplx.Exp(complex(0, theta))
	default:
		return complex(-d.Param+2*d.Param*src.Float64(), 0)
	}
}
