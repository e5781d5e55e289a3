// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// element.go - leaf elements and containers.

package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/eiscircuit/param"
	"github.com/katalvlaran/eiscircuit/registry"
)

// Element is an instance of a registered element or container kind.
// Its parameters are ordered like the definition's schema.
type Element struct {
	def      *registry.Definition
	params   []*param.Parameter
	index    int
	explicit bool
	sub      *Connection
	owned    bool
}

// ElementOption customises an Element during NewElement. Options run in order
// and may fail; the first error aborts construction.
type ElementOption func(e *Element) error

// WithIndex pins the element ordinal (label "R3" for WithIndex(3)).
func WithIndex(n int) ElementOption {
	return func(e *Element) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidIndex, n)
		}
		e.index, e.explicit = n, true
		return nil
	}
}

// WithValue sets the value of parameter id, checked against its current bounds.
func WithValue(id string, v float64) ElementOption {
	return func(e *Element) error {
		p, err := e.lookupParam(id)
		if err != nil {
			return err
		}
		return p.SetValue(v)
	}
}

// WithBounds replaces the bounds of parameter id.
func WithBounds(id string, lower, upper float64) ElementOption {
	return func(e *Element) error {
		p, err := e.lookupParam(id)
		if err != nil {
			return err
		}
		return p.SetBounds(lower, upper)
	}
}

// WithFixed sets the fixed flag of parameter id.
func WithFixed(id string, fixed bool) ElementOption {
	return func(e *Element) error {
		p, err := e.lookupParam(id)
		if err != nil {
			return err
		}
		p.SetFixed(fixed)
		return nil
	}
}

// WithAllFixed sets the fixed flag of every parameter.
func WithAllFixed(fixed bool) ElementOption {
	return func(e *Element) error {
		for _, p := range e.params {
			p.SetFixed(fixed)
		}
		return nil
	}
}

// WithParameter sets value, bounds and fixed flag of parameter id atomically.
func WithParameter(id string, value, lower, upper float64, fixed bool) ElementOption {
	return func(e *Element) error {
		p, err := e.lookupParam(id)
		if err != nil {
			return err
		}
		return p.Set(value, lower, upper, fixed)
	}
}

// WithSubcircuit attaches the nested sub-circuit of a container. A parallel
// connection is wrapped in a single-child series connection.
func WithSubcircuit(sub *Connection) ElementOption {
	return func(e *Element) error {
		if sub == nil {
			return fmt.Errorf("subcircuit: %w", ErrNilNode)
		}
		e.sub = sub
		return nil
	}
}

// NewElement instantiates def with default parameters and applies opts.
//
// Errors:
//   - ErrNilNode                   if def is nil.
//   - registry.ErrUnknownParameter if an option names an undeclared parameter.
//   - param.ErrOutOfBounds et al.  from parameter updates.
//   - ErrMissingSubcircuit / ErrUnexpectedSubcircuit for container mismatches.
//   - ErrSharedNode                if the sub-circuit is owned elsewhere.
func NewElement(def *registry.Definition, opts ...ElementOption) (*Element, error) {
	if def == nil {
		return nil, fmt.Errorf("definition: %w", ErrNilNode)
	}
	e := &Element{def: def, params: def.NewParameters()}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("%s: %w", def.Symbol(), err)
		}
	}
	switch {
	case def.IsContainer() && e.sub == nil:
		return nil, fmt.Errorf("%s: %w", def.Symbol(), ErrMissingSubcircuit)
	case !def.IsContainer() && e.sub != nil:
		return nil, fmt.Errorf("%s: %w", def.Symbol(), ErrUnexpectedSubcircuit)
	case e.sub != nil:
		sub, err := asSeries(e.sub)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Symbol(), err)
		}
		sub.setOwned()
		e.sub = sub
	}

	return e, nil
}

// lookupParam resolves id or returns registry.ErrUnknownParameter.
func (e *Element) lookupParam(id string) (*param.Parameter, error) {
	i, ok := e.def.ParameterIndex(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownParameter, id)
	}

	return e.params[i], nil
}

// Kind returns KindContainer for containers and KindElement otherwise.
func (e *Element) Kind() Kind {
	if e.def.IsContainer() {
		return KindContainer
	}

	return KindElement
}

// Children returns the sub-circuit of a container, nil for leaves.
func (e *Element) Children() []Node {
	if e.sub == nil {
		return nil
	}

	return []Node{e.sub}
}

// Definition returns the registry definition.
func (e *Element) Definition() *registry.Definition { return e.def }

// Symbol returns the CDC symbol of the element kind.
func (e *Element) Symbol() string { return e.def.Symbol() }

// Index returns the ordinal; 0 until the element joins a Circuit (unless explicit).
func (e *Element) Index() int { return e.index }

// ExplicitIndex reports whether the ordinal was given by the caller.
func (e *Element) ExplicitIndex() bool { return e.explicit }

// Label returns symbol + ordinal ("R1"), or the bare symbol before labelling.
func (e *Element) Label() string {
	if e.index == 0 {
		return e.def.Symbol()
	}

	return e.def.Symbol() + strconv.Itoa(e.index)
}

// Parameters returns the live parameters in schema order. Mutating them
// mutates the element.
func (e *Element) Parameters() []*param.Parameter {
	out := make([]*param.Parameter, len(e.params))
	copy(out, e.params)
	return out
}

// Parameter returns the live parameter named id.
func (e *Element) Parameter(id string) (*param.Parameter, bool) {
	p, err := e.lookupParam(id)
	return p, err == nil
}

// Subcircuit returns the nested sub-circuit of a container, nil otherwise.
func (e *Element) Subcircuit() *Connection { return e.sub }

// values copies the current parameter values in schema order.
func (e *Element) values() []float64 {
	out := make([]float64, len(e.params))
	for i, p := range e.params {
		out[i] = p.Value()
	}

	return out
}

// evaluate applies the element formula once for the whole frequency vector.
// For containers the sub-circuit is evaluated first.
func (e *Element) evaluate(omega []float64, dst []complex128) {
	vals := e.values()
	if e.sub == nil {
		e.def.Evaluate(vals, omega, dst)
		return
	}
	inner := make([]complex128, len(omega))
	e.sub.evaluate(omega, inner)
	e.def.Compose(vals, omega, inner, dst)
}

func (e *Element) cloneNode() Node {
	c := &Element{
		def:      e.def,
		params:   make([]*param.Parameter, len(e.params)),
		index:    e.index,
		explicit: e.explicit,
	}
	for i, p := range e.params {
		c.params[i] = p.Clone()
	}
	if e.sub != nil {
		c.sub = e.sub.cloneNode().(*Connection)
		c.sub.setOwned()
	}

	return c
}

func (e *Element) isOwned() bool { return e.owned }
func (e *Element) setOwned()     { e.owned = true }

// String renders the label and parameters, e.g. "R1{R=100}".
func (e *Element) String() string {
	parts := make([]string, len(e.params))
	for i, p := range e.params {
		parts[i] = p.String()
	}

	return e.Label() + "{" + strings.Join(parts, ",") + "}"
}
