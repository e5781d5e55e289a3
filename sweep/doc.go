// Package sweep generates the frequency grids impedance spectra are evaluated
// on.
//
// A grid is described by its spacing, its end points (inclusive) and its size:
//
//	f, _ := sweep.Points(sweep.Decade, 1e-2, 1e5, 71)   // 10 points per decade
//	f, _ = sweep.LogPerDecade(1e-2, 1e5, 10)            // same grid
//	f = sweep.Descending(f)                             // EIS order, high to low
//	w := sweep.Angular(f)                               // rad/s for Impedance
//
// Decade and Octave grids are geometric; Linear grids are arithmetic. Start
// may exceed stop, in which case the grid runs downwards.
//
// Errors:
//
//	ErrBadRange     - non-finite end points, equal end points for n ≥ 2, or a
//	                  non-positive end point on a logarithmic spacing.
//	ErrTooFewPoints - n < 1, or a per-interval density < 1.
package sweep
