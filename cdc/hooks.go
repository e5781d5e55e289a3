// SPDX-License-Identifier: MIT
// Package: eiscircuit/cdc
//
// hooks.go - grammar services installed into registry and circuit, which
// cannot import this package.

package cdc

import (
	"errors"

	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/registry"
)

func init() {
	registry.SetTemplateValidator(validateTemplate)
	circuit.SetTemplateExpander(expandTemplate)
}

// validateTemplate parses the default template of def against reg without
// marking any symbol used. def may name itself; the expansion depth cap then
// reports ErrSyntax.
func validateTemplate(reg *registry.Registry, def *registry.Definition) error {
	sd, _ := def.Subcircuit()
	p := &parser{
		src: sd.Default, reg: reg, depth: 1, labels: make(map[string]struct{}),
		self: def, checkOnly: true,
	}
	if _, err := p.parseRoot(); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return pe
		}
		return err
	}

	return nil
}

func expandTemplate(reg *registry.Registry, def *registry.Definition) (*circuit.Connection, error) {
	return DefaultSubcircuit(def, WithRegistry(reg))
}
