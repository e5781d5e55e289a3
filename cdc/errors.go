// SPDX-License-Identifier: MIT
// Package: eiscircuit/cdc
//
// errors.go - sentinels and the positioned ParseError.

package cdc

import (
	"errors"
	"fmt"
)

// ErrUnbalancedBrackets indicates an opener without its closer, or a closer
// without (or mismatching) its opener.
var ErrUnbalancedBrackets = errors.New("cdc: unbalanced brackets")

// ErrSyntax indicates malformed CDC other than bracket imbalance.
var ErrSyntax = errors.New("cdc: syntax error")

// ParseError locates a failure in the input. Err is a sentinel from this
// package or from registry, param or circuit; errors.Is sees through it.
type ParseError struct {
	Err      error
	Offset   int    // byte offset into the input
	Fragment string // offending text, possibly empty
}

// Error renders "cdc: offset N near "frag": cause".
func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("cdc: offset %d: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("cdc: offset %d near %q: %v", e.Offset, e.Fragment, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }
