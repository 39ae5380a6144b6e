// Package eigen computes the full spectrum of small dense square matrices.
//
// Real input is handed to gonum's mat.Eigen (LAPACK Dgeev). gonum has no
// general complex eigensolver, so complex input is reduced to upper
// Hessenberg form with Householder reflections and then deflated with a
// single-shift complex QR iteration, following the structure of LAPACK's
// zgehrd/zlahqr. Only eigenvalues are produced; no vectors are accumulated.
package eigen

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned when an eigenvalue iteration fails to converge.
var ErrNoConvergence = errors.New("eigen: eigenvalue iteration did not converge")

// Solver holds the workspace for repeated decompositions of n×n matrices.
// A Solver is not safe for concurrent use.
type Solver struct {
	n int

	// real path
	re  *mat.Dense
	eig mat.Eigen

	// complex path, row-major
	h  []complex128
	cs []float64
	sn []complex128

	vals []complex128
}

// NewSolver returns a Solver for n×n matrices.
func NewSolver(n int) *Solver {
	if n <= 0 {
		panic("eigen: non-positive dimension")
	}
	return &Solver{
		n:    n,
		re:   mat.NewDense(n, n, nil),
		h:    make([]complex128, n*n),
		cs:   make([]float64, n),
		sn:   make([]complex128, n),
		vals: make([]complex128, n),
	}
}

// Dim returns the matrix dimension the solver was built for.
func (s *Solver) Dim() int { return s.n }

// Values computes all eigenvalues of a. The order is whatever the underlying
// routine produces. The returned slice is owned by the solver and is
// overwritten by the next call.
func (s *Solver) Values(a mat.CMatrix) ([]complex128, error) {
	r, c := a.Dims()
	if r != s.n || c != s.n {
		return nil, fmt.Errorf("eigen: got %d×%d matrix, solver is %d×%d", r, c, s.n, s.n)
	}

	if s.load(a) {
		return s.realValues()
	}
	return s.complexValues()
}

// load copies a into the workspace and reports whether every entry is real.
func (s *Solver) load(a mat.CMatrix) bool {
	n := s.n
	isReal := true
	if cd, ok := a.(*mat.CDense); ok {
		raw := cd.RawCMatrix()
		for i := 0; i < n; i++ {
			copy(s.h[i*n:(i+1)*n], raw.Data[i*raw.Stride:i*raw.Stride+n])
		}
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				s.h[i*n+j] = a.At(i, j)
			}
		}
	}
	for _, v := range s.h {
		if imag(v) != 0 {
			isReal = false
			break
		}
	}
	return isReal
}

func (s *Solver) realValues() ([]complex128, error) {
	n := s.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s.re.Set(i, j, real(s.h[i*n+j]))
		}
	}
	if ok := s.eig.Factorize(s.re, mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}
	s.vals = s.eig.Values(s.vals)
	return s.vals, nil
}

func (s *Solver) complexValues() ([]complex128, error) {
	s.hessenberg()
	if err := s.hqr(); err != nil {
		return nil, err
	}
	return s.vals, nil
}
