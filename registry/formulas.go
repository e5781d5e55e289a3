// SPDX-License-Identifier: MIT
// Package: eiscircuit/registry
//
// formulas.go - numerically careful complex helpers shared by the built-in formulas.
//
// Extended-complex convention:
//   - "infinite" impedance is cmplx.Inf() (open circuit).
//   - Each helper maps its own degenerate inputs (zero, Inf) to a limit value so
//     that no formula multiplies 0 by Inf or divides by an exact zero.

package registry

import (
	"math"
	"math/cmplx"
)

// tanhLargeArg is the |Re z| beyond which tanh(z) equals ±1 to double precision.
const tanhLargeArg = 20.0

// invScale returns 1/(y·p) with the open/short limits resolved explicitly.
func invScale(y float64, p complex128) complex128 {
	switch {
	case cmplx.IsNaN(p) || math.IsNaN(y):
		return cmplx.NaN()
	case y == 0 || p == 0:
		return cmplx.Inf()
	case cmplx.IsInf(p) || math.IsInf(y, 0):
		return 0
	}

	return 1 / (complex(y, 0) * p)
}

// scale returns y·p where 0·Inf resolves to 0 (a zero-valued element is a short).
func scale(y float64, p complex128) complex128 {
	switch {
	case cmplx.IsNaN(p) || math.IsNaN(y):
		return cmplx.NaN()
	case y == 0 || p == 0:
		return 0
	case cmplx.IsInf(p) || math.IsInf(y, 0):
		return cmplx.Inf()
	}

	return complex(y*real(p), y*imag(p))
}

// jwPow returns (jω)^n for real ω and 0 ≤ n, computed in polar form so that
// ω = 0 and ω = ±Inf stay well defined.
func jwPow(w, n float64) complex128 {
	if math.IsNaN(w) {
		return cmplx.NaN()
	}
	if n == 0 {
		return 1
	}
	mag := math.Pow(math.Abs(w), n)
	if mag == 0 {
		return 0
	}
	if math.IsInf(mag, 0) {
		return cmplx.Inf()
	}
	phase := n * math.Pi / 2
	if w < 0 {
		phase = -phase
	}

	return cmplx.Rect(mag, phase)
}

// sqrtJw returns √(jω).
func sqrtJw(w float64) complex128 { return jwPow(w, 0.5) }

// tanhc is a complex tanh that saturates to ±1 for large |Re z| instead of
// overflowing sinh/cosh into NaN.
func tanhc(z complex128) complex128 {
	if math.Abs(real(z)) > tanhLargeArg {
		return complex(math.Copysign(1, real(z)), 0)
	}

	return cmplx.Tanh(z)
}

// cothc returns coth(z); coth(0) is infinite.
func cothc(z complex128) complex128 {
	t := tanhc(z)
	if t == 0 {
		return cmplx.Inf()
	}

	return 1 / t
}

// fill assigns v to every slot of dst.
func fill(dst []complex128, v complex128) {
	for i := range dst {
		dst[i] = v
	}
}
