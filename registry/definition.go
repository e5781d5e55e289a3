// SPDX-License-Identifier: MIT
// Package: eiscircuit/registry
//
// definition.go - registration inputs and the resolved, immutable Definition.

package registry

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/eiscircuit/param"
)

// ImpedanceFunc evaluates an element formula over a whole frequency vector.
// params is ordered like the definition's parameter list; dst has len(omega).
// Implementations must not retain params, omega or dst, and must map degenerate
// inputs (ω = 0, ±Inf, NaN) to extended-complex values instead of trapping.
type ImpedanceFunc func(params []float64, omega []float64, dst []complex128)

// ContainerImpedanceFunc combines a container's own parameters with the
// aggregate impedance of its nested sub-circuit (inner, len(omega)).
type ContainerImpedanceFunc func(params []float64, omega []float64, inner, dst []complex128)

// Definable is the sealed registration input: ElementDefinition or ContainerDefinition.
type Definable interface {
	resolve() (*Definition, error)
}

// ElementDefinition describes a leaf element kind.
type ElementDefinition struct {
	Symbol      string
	Name        string
	Description string
	Parameters  []param.Definition
	Impedance   ImpedanceFunc
}

// SubcircuitDefinition describes the nested sub-circuit slot of a container.
//
// Key is the CDC block key carrying the embedded sub-CDC, e.g. Tlm{Z=R(RC)}.
// Default is the CDC template instantiated when no sub-circuit is given.
type SubcircuitDefinition struct {
	Key         string
	Description string
	Default     string
}

// ContainerDefinition describes a container kind: an element owning one nested
// Connection and composing its impedance with it.
type ContainerDefinition struct {
	Symbol      string
	Name        string
	Description string
	Parameters  []param.Definition
	Subcircuit  SubcircuitDefinition
	Impedance   ContainerImpedanceFunc
}

// Definition is the resolved registry entry shared by elements and containers.
// It is immutable after registration and safe for concurrent use.
type Definition struct {
	symbol      string
	name        string
	description string
	params      []param.Definition
	index       map[string]int

	element   ImpedanceFunc
	container ContainerImpedanceFunc
	sub       *SubcircuitDefinition
}

// resolve validates an element definition and freezes it.
func (d ElementDefinition) resolve() (*Definition, error) {
	if d.Impedance == nil {
		return nil, fmt.Errorf("%w: %s: nil impedance formula", ErrInvalidDefinition, d.Symbol)
	}
	out, err := newDefinition(d.Symbol, d.Name, d.Description, d.Parameters)
	if err != nil {
		return nil, err
	}
	out.element = d.Impedance

	return out, nil
}

// resolve validates a container definition and freezes it.
// The template's grammar is checked later by Registry.checkTemplate, which
// needs the registry to resolve its symbols.
func (d ContainerDefinition) resolve() (*Definition, error) {
	if d.Impedance == nil {
		return nil, fmt.Errorf("%w: %s: nil impedance formula", ErrInvalidDefinition, d.Symbol)
	}
	out, err := newDefinition(d.Symbol, d.Name, d.Description, d.Parameters)
	if err != nil {
		return nil, err
	}
	key := d.Subcircuit.Key
	if !param.IsIdentifier(key) || key == param.ReservedFixedKey {
		return nil, fmt.Errorf("%w: %s: subcircuit key %q is not a usable identifier", ErrInvalidDefinition, d.Symbol, key)
	}
	if _, clash := out.index[key]; clash {
		return nil, fmt.Errorf("%w: %s: subcircuit key %q collides with a parameter", ErrInvalidDefinition, d.Symbol, key)
	}
	if strings.TrimSpace(d.Subcircuit.Default) == "" {
		return nil, fmt.Errorf("%w: %s: empty default subcircuit", ErrInvalidDefinition, d.Symbol)
	}
	sub := d.Subcircuit
	out.sub = &sub
	out.container = d.Impedance

	return out, nil
}

// newDefinition runs the checks common to both kinds.
// Complexity: O(P) for P parameters.
func newDefinition(symbol, name, desc string, params []param.Definition) (*Definition, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %s: empty name", ErrInvalidDefinition, symbol)
	}
	out := &Definition{
		symbol:      symbol,
		name:        name,
		description: desc,
		params:      make([]param.Definition, len(params)),
		index:       make(map[string]int, len(params)),
	}
	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, symbol, err)
		}
		if _, dup := out.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate parameter %q", ErrInvalidDefinition, symbol, p.ID)
		}
		out.index[p.ID] = i
		out.params[i] = p
	}

	return out, nil
}

// reservedTokens are the Connection/block tokens that may never appear in a symbol.
const reservedTokens = "()[]{},="

// ValidateSymbol checks that s is usable as a CDC symbol: non-empty, free of
// reserved tokens, and of the form [A-Z][a-z]*.
func ValidateSymbol(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidDefinition)
	}
	if strings.ContainsAny(s, reservedTokens) {
		return fmt.Errorf("%w: symbol %q contains a reserved token", ErrInvalidDefinition, s)
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return fmt.Errorf("%w: symbol %q must start with an upper-case letter", ErrInvalidDefinition, s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return fmt.Errorf("%w: symbol %q must continue with lower-case letters only", ErrInvalidDefinition, s)
		}
	}

	return nil
}

// Symbol returns the CDC symbol ("R", "Wo").
func (d *Definition) Symbol() string { return d.symbol }

// Name returns the display name.
func (d *Definition) Name() string { return d.name }

// Description returns the free-text description.
func (d *Definition) Description() string { return d.description }

// Parameters returns a copy of the ordered parameter schema.
func (d *Definition) Parameters() []param.Definition {
	out := make([]param.Definition, len(d.params))
	copy(out, d.params)
	return out
}

// NumParameters returns the number of parameter slots.
func (d *Definition) NumParameters() int { return len(d.params) }

// Parameter returns the i-th parameter schema.
func (d *Definition) Parameter(i int) param.Definition { return d.params[i] }

// ParameterIndex returns the slot of the parameter named id.
func (d *Definition) ParameterIndex(id string) (int, bool) {
	i, ok := d.index[id]
	return i, ok
}

// NewParameters instantiates fresh parameters at their defaults.
func (d *Definition) NewParameters() []*param.Parameter {
	out := make([]*param.Parameter, len(d.params))
	for i, p := range d.params {
		out[i] = param.New(p)
	}

	return out
}

// IsContainer reports whether the definition owns a nested sub-circuit.
func (d *Definition) IsContainer() bool { return d.sub != nil }

// Subcircuit returns the sub-circuit slot of a container definition.
func (d *Definition) Subcircuit() (SubcircuitDefinition, bool) {
	if d.sub == nil {
		return SubcircuitDefinition{}, false
	}

	return *d.sub, true
}

// Evaluate applies an element formula. It panics if called on a container, which
// is a programmer error; the circuit package dispatches on IsContainer.
func (d *Definition) Evaluate(params, omega []float64, dst []complex128) {
	d.element(params, omega, dst)
}

// Compose applies a container formula to the nested aggregate impedance.
func (d *Definition) Compose(params, omega []float64, inner, dst []complex128) {
	d.container(params, omega, inner, dst)
}

// String renders "Symbol (Name)".
func (d *Definition) String() string {
	return d.symbol + " (" + d.name + ")"
}
