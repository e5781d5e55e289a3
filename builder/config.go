// SPDX-License-Identifier: MIT
// Package: eiscircuit/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   - reg      = registry.Default()
//   - maxDepth = DefaultMaxDepth

package builder

import (
	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/registry"
)

// builderConfig aggregates the knobs of a Builder.
type builderConfig struct {
	// reg resolves symbols and container templates.
	reg *registry.Registry
	// maxDepth bounds the number of open frames above the root.
	maxDepth int
}

// newBuilderConfig applies opts in order over the defaults; last wins.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		reg:      registry.Default(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// parseOptions returns the cdc options matching this configuration, so
// default templates resolve against the same registry as AddElement.
func (c builderConfig) parseOptions() []cdc.Option {
	return []cdc.Option{cdc.WithRegistry(c.reg)}
}
