// SPDX-License-Identifier: MIT
// Package: eiscircuit/sweep
//
// sweep.go - grid generation on top of gonum/floats.

package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Points returns n frequencies from start to stop inclusive.
//
// Errors:
//   - ErrTooFewPoints if n < 1.
//   - ErrBadRange     if an end point is non-finite, if start == stop with
//     n ≥ 2, or if a logarithmic spacing meets a non-positive end point.
//   - ErrUnknownSpacing for a Spacing value outside the declared constants.
func Points(spacing Spacing, start, stop float64, n int) ([]float64, error) {
	if err := validate(spacing, start, stop, n); err != nil {
		return nil, err
	}
	if n == 1 {
		return []float64{start}, nil
	}
	dst := make([]float64, n)
	if spacing.logarithmic() {
		floats.LogSpan(dst, start, stop)
	} else {
		floats.Span(dst, start, stop)
	}
	// Pin the end points against exp/log round-off.
	dst[0], dst[n-1] = start, stop

	return dst, nil
}

// LogPerDecade returns a geometric grid with ppd points per decade, rounded
// to the nearest whole number of intervals.
func LogPerDecade(start, stop float64, ppd int) ([]float64, error) {
	return perInterval(Decade, start, stop, ppd, math.Log10)
}

// LogPerOctave returns a geometric grid with ppo points per octave.
func LogPerOctave(start, stop float64, ppo int) ([]float64, error) {
	return perInterval(Octave, start, stop, ppo, math.Log2)
}

func perInterval(spacing Spacing, start, stop float64, per int, log func(float64) float64) ([]float64, error) {
	if per < 1 {
		return nil, fmt.Errorf("%w: %d per %s", ErrTooFewPoints, per, spacing)
	}
	if err := validate(spacing, start, stop, 2); err != nil {
		return nil, err
	}
	intervals := int(math.Round(math.Abs(log(stop)-log(start)) * float64(per)))
	if intervals < 1 {
		intervals = 1
	}

	return Points(spacing, start, stop, intervals+1)
}

func validate(spacing Spacing, start, stop float64, n int) error {
	switch {
	case spacing != Decade && spacing != Octave && spacing != Linear:
		return fmt.Errorf("%w: %s", ErrUnknownSpacing, spacing)
	case n < 1:
		return fmt.Errorf("%w: n=%d", ErrTooFewPoints, n)
	case math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(stop) || math.IsInf(stop, 0):
		return fmt.Errorf("%w: [%g, %g] is not finite", ErrBadRange, start, stop)
	case n > 1 && start == stop:
		return fmt.Errorf("%w: empty range at %g", ErrBadRange, start)
	case spacing.logarithmic() && (start <= 0 || stop <= 0):
		return fmt.Errorf("%w: %s spacing needs positive end points, got [%g, %g]", ErrBadRange, spacing, start, stop)
	}

	return nil
}

// Descending returns a copy of a monotonic grid running from high to low, the
// order impedance analysers usually record in. Ascending grids are reversed.
func Descending(freqs []float64) []float64 {
	out := append([]float64(nil), freqs...)
	if len(out) > 1 && out[0] < out[len(out)-1] {
		floats.Reverse(out)
	}

	return out
}

// Angular converts frequencies in Hz to angular frequencies in rad/s.
func Angular(freqs []float64) []float64 {
	return floats.ScaleTo(make([]float64, len(freqs)), 2*math.Pi, freqs)
}
