// SPDX-License-Identifier: MIT
// Package: eiscircuit/param
//
// parameter.go - the mutable, bounded parameter value.
//
// Concurrency:
//   - A Parameter is not synchronized. Callers that evaluate a circuit from
//     several goroutines must not mutate its parameters meanwhile; clone instead.

package param

import (
	"fmt"
	"math"
)

// Parameter is a bounded scalar value owned by exactly one element instance.
// The zero value is not usable; construct with New.
type Parameter struct {
	id    string
	value float64
	lower float64
	upper float64
	fixed bool
}

// New returns a Parameter initialised from def (value = def.Default).
// The definition is assumed valid (the registry validates at register time).
// Complexity: O(1).
func New(def Definition) *Parameter {
	return &Parameter{
		id:    def.ID,
		value: def.Default,
		lower: def.Lower,
		upper: def.Upper,
		fixed: def.Fixed,
	}
}

// ID returns the parameter identifier.
func (p *Parameter) ID() string { return p.id }

// Value returns the current value.
func (p *Parameter) Value() float64 { return p.value }

// Lower returns the lower bound (possibly -Inf).
func (p *Parameter) Lower() float64 { return p.lower }

// Upper returns the upper bound (possibly +Inf).
func (p *Parameter) Upper() float64 { return p.upper }

// Fixed reports whether the parameter is excluded from fitting.
func (p *Parameter) Fixed() bool { return p.fixed }

// SetValue replaces the value after checking it against the current bounds.
// The check applies whether or not the parameter is fixed.
//
// Errors:
//   - ErrNotANumber  if v is NaN.
//   - ErrOutOfBounds if v is outside [Lower, Upper].
func (p *Parameter) SetValue(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("%s: %w", p.id, ErrNotANumber)
	}
	if !Within(v, p.lower, p.upper) {
		return fmt.Errorf("%s: %w: %g not in [%g, %g]", p.id, ErrOutOfBounds, v, p.lower, p.upper)
	}
	p.value = v

	return nil
}

// SetBounds replaces both bounds. The current value must remain inside them.
//
// Errors:
//   - ErrInvalidBounds if a bound is NaN or lower > upper.
//   - ErrOutOfBounds   if the current value falls outside the new bounds.
func (p *Parameter) SetBounds(lower, upper float64) error {
	return p.Set(p.value, lower, upper, p.fixed)
}

// SetFixed sets the fixed flag. Bounds are unaffected.
func (p *Parameter) SetFixed(fixed bool) { p.fixed = fixed }

// Set updates value, bounds and fixed flag atomically: on error nothing changes.
// Complexity: O(1).
func (p *Parameter) Set(value, lower, upper float64, fixed bool) error {
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return fmt.Errorf("%s: %w: [%g, %g]", p.id, ErrInvalidBounds, lower, upper)
	}
	if math.IsNaN(value) {
		return fmt.Errorf("%s: %w", p.id, ErrNotANumber)
	}
	if !Within(value, lower, upper) {
		return fmt.Errorf("%s: %w: %g not in [%g, %g]", p.id, ErrOutOfBounds, value, lower, upper)
	}
	p.value, p.lower, p.upper, p.fixed = value, lower, upper, fixed

	return nil
}

// Clone returns an independent copy.
func (p *Parameter) Clone() *Parameter {
	c := *p
	return &c
}

// Equal reports whether both parameters carry the same ID, value, bounds and flag.
func (p *Parameter) Equal(o *Parameter) bool {
	if p == nil || o == nil {
		return p == o
	}

	return *p == *o
}

// ValueIsDefault reports whether the value equals def.Default.
func (p *Parameter) ValueIsDefault(def Definition) bool { return p.value == def.Default }

// BoundsAreDefault reports whether both bounds equal the definition's bounds.
func (p *Parameter) BoundsAreDefault(def Definition) bool {
	return p.lower == def.Lower && p.upper == def.Upper
}

// FixedIsDefault reports whether the fixed flag equals def.Fixed.
func (p *Parameter) FixedIsDefault(def Definition) bool { return p.fixed == def.Fixed }

// String renders "id=value".
func (p *Parameter) String() string {
	return fmt.Sprintf("%s=%g", p.id, p.value)
}
