// SPDX-License-Identifier: MIT
// Package: eiscircuit/registry
//
// preset.go - derived element kinds: an existing formula under a new symbol
// with its own parameter defaults, bounds and fixed flags.

package registry

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/eiscircuit/param"
)

// ParameterOverride replaces selected fields of a base parameter definition.
// Nil fields keep the base value.
type ParameterOverride struct {
	Default *float64
	Lower   *float64
	Upper   *float64
	Fixed   *bool
}

// Preset derives a new kind from Base. Parameters are keyed by parameter ID.
type Preset struct {
	Symbol      string
	Name        string
	Description string
	Base        string
	Parameters  map[string]ParameterOverride
}

// RegisterPreset resolves p.Base (without marking it used), applies the
// overrides and registers the result under p.Symbol.
//
// Errors:
//   - ErrUnknownSymbol     if Base is not registered.
//   - ErrUnknownParameter  if an override names a parameter Base does not have.
//   - ErrInvalidDefinition / ErrDuplicateSymbol as for Register.
func (r *Registry) RegisterPreset(p Preset) (*Definition, error) {
	base, ok := r.Peek(p.Base)
	if !ok {
		return nil, fmt.Errorf("preset %s: %w: base %q", p.Symbol, ErrUnknownSymbol, p.Base)
	}
	params := base.Parameters()

	// Apply overrides in ID order so the first reported error is deterministic.
	ids := make([]string, 0, len(p.Parameters))
	for id := range p.Parameters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		i, ok := base.ParameterIndex(id)
		if !ok {
			return nil, fmt.Errorf("preset %s: %w: %q", p.Symbol, ErrUnknownParameter, id)
		}
		params[i] = p.Parameters[id].apply(params[i])
	}

	desc := p.Description
	if desc == "" {
		desc = base.description
	}
	var d Definable
	if sub, isContainer := base.Subcircuit(); isContainer {
		d = ContainerDefinition{
			Symbol: p.Symbol, Name: p.Name, Description: desc,
			Parameters: params, Subcircuit: sub, Impedance: base.container,
		}
	} else {
		d = ElementDefinition{
			Symbol: p.Symbol, Name: p.Name, Description: desc,
			Parameters: params, Impedance: base.element,
		}
	}

	return r.Register(d)
}

func (o ParameterOverride) apply(d param.Definition) param.Definition {
	if o.Default != nil {
		d.Default = *o.Default
	}
	if o.Lower != nil {
		d.Lower = *o.Lower
	}
	if o.Upper != nil {
		d.Upper = *o.Upper
	}
	if o.Fixed != nil {
		d.Fixed = *o.Fixed
	}

	return d
}
