package eigen

import (
	"math"
	"math/cmplx"
)

const (
	ulp    = 0x1p-52
	safmin = 0x1p-1022

	// Exceptional shifts break cycles such as the ones produced by
	// permutation matrices, where the Wilkinson shift is stationary.
	exceptionalEvery = 10
	exceptionalScale = 0.75
)

// cabs1 is the LAPACK |re|+|im| magnitude used for deflation tests.
func cabs1(z complex128) float64 {
	return math.Abs(real(z)) + math.Abs(imag(z))
}

// hessenberg reduces s.h to upper Hessenberg form in place by a sequence of
// Householder similarity transforms H = I - 2vv*.
func (s *Solver) hessenberg() {
	n := s.n
	h := s.h
	v := s.sn // reused as scratch; the QR phase overwrites it

	for k := 0; k < n-2; k++ {
		var norm float64
		for i := k + 1; i < n; i++ {
			norm = math.Hypot(norm, cmplx.Abs(h[i*n+k]))
		}
		if norm == 0 {
			continue
		}

		x0 := h[(k+1)*n+k]
		phase := complex(1, 0)
		if x0 != 0 {
			phase = x0 / complex(cmplx.Abs(x0), 0)
		}

		// v = x + phase*|x|*e1, normalized; the sign avoids cancellation.
		v[k+1] = x0 + phase*complex(norm, 0)
		for i := k + 2; i < n; i++ {
			v[i] = h[i*n+k]
		}
		var vnorm float64
		for i := k + 1; i < n; i++ {
			vnorm = math.Hypot(vnorm, cmplx.Abs(v[i]))
		}
		if vnorm == 0 {
			continue
		}
		for i := k + 1; i < n; i++ {
			v[i] /= complex(vnorm, 0)
		}

		// Left: h = h - 2 v (v* h), columns k..n-1.
		for j := k; j < n; j++ {
			var t complex128
			for i := k + 1; i < n; i++ {
				t += cmplx.Conj(v[i]) * h[i*n+j]
			}
			t *= 2
			for i := k + 1; i < n; i++ {
				h[i*n+j] -= v[i] * t
			}
		}

		// Right: h = h - 2 (h v) v*, all rows.
		for i := 0; i < n; i++ {
			var t complex128
			for m := k + 1; m < n; m++ {
				t += h[i*n+m] * v[m]
			}
			t *= 2
			for m := k + 1; m < n; m++ {
				h[i*n+m] -= t * cmplx.Conj(v[m])
			}
		}

		for i := k + 2; i < n; i++ {
			h[i*n+k] = 0
		}
	}
}

// hqr finds the eigenvalues of the Hessenberg matrix in s.h, writing them to
// s.vals in diagonal order.
func (s *Solver) hqr() error {
	n := s.n
	h := s.h

	var anorm float64
	for _, z := range h {
		if a := cabs1(z); a > anorm {
			anorm = a
		}
	}
	smlnum := safmin * (float64(n) / ulp)
	maxIts := 30 * max(10, n)

	its := 0
	for hi := n - 1; hi >= 0; {
		// Find the top of the unreduced block ending at hi.
		l := hi
		for ; l > 0; l-- {
			sub := cabs1(h[l*n+l-1])
			if sub <= smlnum {
				break
			}
			tst := cabs1(h[(l-1)*n+l-1]) + cabs1(h[l*n+l])
			if tst == 0 {
				tst = anorm
			}
			if sub <= ulp*tst {
				break
			}
		}
		if l > 0 {
			h[l*n+l-1] = 0
		}

		if l == hi {
			s.vals[hi] = h[hi*n+hi]
			hi--
			its = 0
			continue
		}

		its++
		if its > maxIts {
			return ErrNoConvergence
		}

		var mu complex128
		if its%exceptionalEvery == 0 {
			mu = h[hi*n+hi] + complex(exceptionalScale*cabs1(h[hi*n+hi-1]), 0)
		} else {
			mu = s.wilkinson(hi)
		}
		s.qrStep(l, hi, mu)
	}
	return nil
}

// wilkinson returns the eigenvalue of the trailing 2×2 block of the active
// window that is closer to its bottom-right entry.
func (s *Solver) wilkinson(hi int) complex128 {
	n := s.n
	h := s.h
	a := h[(hi-1)*n+hi-1]
	b := h[(hi-1)*n+hi]
	c := h[hi*n+hi-1]
	d := h[hi*n+hi]

	half := (a - d) / 2
	disc := cmplx.Sqrt(half*half + b*c)
	mid := (a + d) / 2
	m1, m2 := mid+disc, mid-disc
	if cmplx.Abs(m1-d) < cmplx.Abs(m2-d) {
		return m1
	}
	return m2
}

// qrStep performs one explicitly shifted QR sweep H - mu*I = QR, H <- RQ + mu*I
// on the window [l, hi] using Givens rotations.
func (s *Solver) qrStep(l, hi int, mu complex128) {
	n := s.n
	h := s.h

	for k := l; k <= hi; k++ {
		h[k*n+k] -= mu
	}

	for k := l; k < hi; k++ {
		c, sn := givens(h[k*n+k], h[(k+1)*n+k])
		s.cs[k], s.sn[k] = c, sn
		cc := complex(c, 0)
		for j := k; j <= hi; j++ {
			x, y := h[k*n+j], h[(k+1)*n+j]
			h[k*n+j] = cc*x + sn*y
			h[(k+1)*n+j] = -cmplx.Conj(sn)*x + cc*y
		}
		h[(k+1)*n+k] = 0
	}

	for k := l; k < hi; k++ {
		cc, sn := complex(s.cs[k], 0), s.sn[k]
		for i := l; i <= k+1; i++ {
			x, y := h[i*n+k], h[i*n+k+1]
			h[i*n+k] = cc*x + cmplx.Conj(sn)*y
			h[i*n+k+1] = -sn*x + cc*y
		}
	}

	for k := l; k <= hi; k++ {
		h[k*n+k] += mu
	}
}

// givens returns c (real) and s such that
//
//	[ c        s ] [a]   [r]
//	[ -conj(s) c ] [b] = [0]
func givens(a, b complex128) (float64, complex128) {
	if b == 0 {
		return 1, 0
	}
	absB := cmplx.Abs(b)
	if a == 0 {
		return 0, cmplx.Conj(b) / complex(absB, 0)
	}
	absA := cmplx.Abs(a)
	norm := math.Hypot(absA, absB)
	c := absA / norm
	sn := (a / complex(absA, 0)) * cmplx.Conj(b) / complex(norm, 0)
	return c, sn
}
