// Package builder provides validation helpers enforcing the frame contracts
// of Builder. Each returns an error built by builderErrorf.
package builder

import "github.com/katalvlaran/eiscircuit/circuit"

// validateOpen ensures another frame fits under the nesting limit.
// Complexity: O(1).
func validateOpen(method string, depth, limit int) error {
	if depth >= limit {
		return builderErrorf(method, "%w: depth %d, limit %d", ErrMaxDepth, depth+1, limit)
	}

	return nil
}

// validateClosable ensures the current frame is not the root.
func validateClosable(method string, depth int) error {
	if depth == 0 {
		return builderErrorf(method, "%w: no open frame to close", ErrUnbalancedConstruction)
	}

	return nil
}

// validateNonEmpty ensures a frame being finished has at least one child.
func validateNonEmpty(method string, f *frame) error {
	if len(f.children) == 0 {
		return builderErrorf(method, "%s frame: %w", f.describe(), circuit.ErrEmptyCircuit)
	}

	return nil
}
