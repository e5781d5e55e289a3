// Package param provides the typed, bounded scalar values attached to circuit
// element instances.
//
// A Parameter is the mutable half of a pair; its immutable schema is a
// Definition, owned by the element registry:
//
//	Definition{ID: "R", Default: 1e3, Lower: 0, Upper: math.Inf(1)}
//	p := param.New(def)          // value=1e3, bounds [0,+Inf], not fixed
//	err := p.SetValue(-1)        // ErrOutOfBounds; p is unchanged
//
// Bound policy:
//
//   - lower ≤ value ≤ upper holds at all times. Bounds may be ±Inf.
//   - Every mutation re-validates; violations are rejected, never clamped.
//   - The policy is identical for fixed parameters. Fixed only means "excluded
//     from the free-parameter vector handed to optimizers".
//
// Errors:
//
//	ErrInvalidDefinition - malformed Definition (empty ID, NaN, lower > upper, default outside bounds).
//	ErrOutOfBounds       - value outside [lower, upper].
//	ErrInvalidBounds     - lower > upper or NaN bound.
//	ErrNotANumber        - NaN value.
package param
