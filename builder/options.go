// SPDX-License-Identifier: MIT
// Package: eiscircuit/builder
//
// options.go - functional options for New.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors validate and panic on meaningless inputs.
//     Builder methods themselves never panic.

package builder

import (
	"fmt"

	"github.com/katalvlaran/eiscircuit/registry"
)

// BuilderOption customizes a Builder before its first call.
// Complexity: applying N options costs O(N).
type BuilderOption func(*builderConfig)

// WithRegistry resolves symbols in reg instead of registry.Default().
// Panics on nil.
func WithRegistry(reg *registry.Registry) BuilderOption {
	if reg == nil {
		panic("builder: WithRegistry(nil)")
	}
	return func(c *builderConfig) {
		c.reg = reg
	}
}

// WithMaxDepth limits how many frames may be open above the root.
// Panics if limit < MinMaxDepth.
func WithMaxDepth(limit int) BuilderOption {
	if limit < MinMaxDepth {
		panic(fmt.Sprintf("builder: WithMaxDepth(%d): limit must be ≥ %d", limit, MinMaxDepth))
	}
	return func(c *builderConfig) {
		c.maxDepth = limit
	}
}
