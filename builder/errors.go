// SPDX-License-Identifier: MIT
// Package: eiscircuit/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Context is attached with %w through builderErrorf, never baked into
//     the sentinel text.
//   - Option constructors panic on programmer error; Builder methods do not.

package builder

import (
	"errors"
	"fmt"
)

// ErrUnbalancedConstruction indicates a frame imbalance: Build while frames are
// still open, Close on the root frame, or Build of an empty root.
// Usage: if errors.Is(err, ErrUnbalancedConstruction) { /* missing Close */ }.
var ErrUnbalancedConstruction = errors.New("builder: unbalanced construction")

// ErrMaxDepth indicates an Open call that would exceed the nesting limit set
// with WithMaxDepth.
var ErrMaxDepth = errors.New("builder: nesting limit exceeded")

// ErrNotContainer indicates OpenContainer with a symbol whose definition does
// not own a sub-circuit.
var ErrNotContainer = errors.New("builder: symbol is not a container")

// ErrAlreadyBuilt indicates use of a Builder after a successful Build.
var ErrAlreadyBuilt = errors.New("builder: already built")

// builderErrorf prefixes a formatted message with the method context. The
// format may contain %w so the cause stays visible to errors.Is.
// It returns an error of the form "<method>: <formatted message>".
//
// Complexity: O(len(format) + Σlen(args)).
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{method}, args...)...)
}
