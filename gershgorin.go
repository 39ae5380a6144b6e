package eigenfish

// Circles holds Gershgorin disks as three parallel slices, one entry per row.
type Circles struct {
	CentersX []float64
	CentersY []float64
	Radii    []float64
}

// GershgorinCircles returns disks bounding the spectrum of a matrix of phases.
//
// This is not a general Gershgorin estimator. It assumes every off-diagonal
// entry has modulus 1, so each row's off-diagonal sum is n-1, and it reports
// false whenever the template failed the phase test at construction. Centers
// are read from the current template, so a slot on the diagonal contributes
// its most recent parameter.
func (s *Sampler[T]) GershgorinCircles() (Circles, bool) {
	if !s.phases {
		return Circles{}, false
	}

	c := Circles{
		CentersX: make([]float64, s.n),
		CentersY: make([]float64, s.n),
		Radii:    make([]float64, s.n),
	}
	radius := float64(s.n - 1)
	for i := 0; i < s.n; i++ {
		d := s.matrix.At(i, i)
		c.CentersX[i] = real(d)
		c.CentersY[i] = imag(d)
		c.Radii[i] = radius
	}
	return c, true
}
