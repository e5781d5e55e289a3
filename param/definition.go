// SPDX-License-Identifier: MIT
// Package: eiscircuit/param
//
// definition.go - immutable parameter schema and its validation.

package param

import (
	"fmt"
	"math"
)

// ReservedFixedKey is the CDC block key that toggles the fixed flag of every
// parameter of an element. No parameter may use it as its ID.
const ReservedFixedKey = "fixed"

// Definition describes one parameter slot of an element kind.
//
// Fields:
//   - ID          - identifier, unique within the owning element ("R", "tau").
//   - Description - free text for listings.
//   - Unit        - display unit ("ohm", "F").
//   - Default     - initial value; must lie within [Lower, Upper].
//   - Lower/Upper - bounds; ±Inf for unbounded.
//   - Fixed       - initial fixed flag.
type Definition struct {
	ID          string
	Description string
	Unit        string
	Default     float64
	Lower       float64
	Upper       float64
	Fixed       bool
}

// Unbounded returns a Definition with the given ID and default and bounds (-Inf, +Inf).
func Unbounded(id string, def float64) Definition {
	return Definition{ID: id, Default: def, Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// NonNegative returns a Definition with the given ID and default and bounds [0, +Inf].
func NonNegative(id string, def float64) Definition {
	return Definition{ID: id, Default: def, Lower: 0, Upper: math.Inf(1)}
}

// Validate checks the Definition invariants and returns ErrInvalidDefinition
// wrapped with the offending detail.
// Complexity: O(len(ID)).
func (d Definition) Validate() error {
	if !IsIdentifier(d.ID) {
		return fmt.Errorf("%w: id %q is not an identifier", ErrInvalidDefinition, d.ID)
	}
	if d.ID == ReservedFixedKey {
		return fmt.Errorf("%w: id %q is reserved", ErrInvalidDefinition, d.ID)
	}
	if math.IsNaN(d.Default) || math.IsNaN(d.Lower) || math.IsNaN(d.Upper) {
		return fmt.Errorf("%w: %s: NaN in default or bounds", ErrInvalidDefinition, d.ID)
	}
	if d.Lower > d.Upper {
		return fmt.Errorf("%w: %s: lower bound %g > upper bound %g", ErrInvalidDefinition, d.ID, d.Lower, d.Upper)
	}
	if !Within(d.Default, d.Lower, d.Upper) {
		return fmt.Errorf("%w: %s: default %g outside [%g, %g]", ErrInvalidDefinition, d.ID, d.Default, d.Lower, d.Upper)
	}

	return nil
}

// IsIdentifier reports whether s matches [A-Za-z][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}

	return true
}

// Within reports whether lower ≤ v ≤ upper. NaN is never within.
func Within(v, lower, upper float64) bool {
	return v >= lower && v <= upper
}
