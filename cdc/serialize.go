// SPDX-License-Identifier: MIT
// Package: eiscircuit/cdc
//
// serialize.go - canonical CDC output.

package cdc

import (
	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/registry"
)

// SerializeOption configures Serialize and SerializeNode.
type SerializeOption func(*serializeConfig)

type serializeConfig struct {
	reg       *registry.Registry
	precision int
}

// WithPrecision renders values with n significant digits. The default is the
// shortest representation that parses back to the same float64.
func WithPrecision(n int) SerializeOption {
	return func(c *serializeConfig) { c.precision = n }
}

// WithTemplateRegistry sets the registry used to canonicalise default
// templates. Panics on nil.
func WithTemplateRegistry(reg *registry.Registry) SerializeOption {
	if reg == nil {
		panic("cdc: WithTemplateRegistry(nil)")
	}
	return func(c *serializeConfig) { c.reg = reg }
}

func (cfg *serializeConfig) formatOptions() []circuit.FormatOption {
	cache := make(map[string]string)
	canon := func(template string) string {
		if s, ok := cache[template]; ok {
			return s
		}
		s := template
		if conn, err := ParseConnection(template, WithRegistry(cfg.reg)); err == nil {
			s = circuit.FormatNode(conn)
		}
		cache[template] = s
		return s
	}

	return []circuit.FormatOption{
		circuit.WithPrecision(cfg.precision),
		circuit.WithTemplateCanonicalizer(canon),
	}
}

func newSerializeConfig(opts []SerializeOption) *serializeConfig {
	cfg := &serializeConfig{reg: registry.Default(), precision: -1}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Serialize renders c as minimal canonical CDC.
// Parse(Serialize(c)) yields a circuit with the same structure, labels and
// parameters (given the default precision).
func Serialize(c *circuit.Circuit, opts ...SerializeOption) string {
	return circuit.Format(c, newSerializeConfig(opts).formatOptions()...)
}

// SerializeNode renders a subtree; a series node renders without brackets.
func SerializeNode(n circuit.Node, opts ...SerializeOption) string {
	return circuit.FormatNode(n, newSerializeConfig(opts).formatOptions()...)
}
