// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// circuit.go - the labelled root and its parameter views.

package circuit

import (
	"fmt"
	"math"

	"github.com/katalvlaran/eiscircuit/param"
)

// Circuit is the root of a tree: one top-level series connection plus the
// label index of every element it contains, nested ones included.
type Circuit struct {
	root     *Connection
	elements []*Element
	byLabel  map[string]*Element
}

// New claims root and labels its elements.
//
// A parallel root is wrapped in a single-child series connection. Elements
// keep their explicit ordinal; the rest receive the smallest unused ordinal
// of their symbol, in depth-first order.
//
// Errors:
//   - ErrNilNode        if root is nil.
//   - ErrSharedNode     if root already has an owner.
//   - ErrDuplicateLabel if two elements carry the same explicit label.
//
// Complexity: O(N) over all nodes.
func New(root *Connection) (*Circuit, error) {
	if root == nil {
		return nil, fmt.Errorf("root: %w", ErrNilNode)
	}
	if root.owned {
		return nil, fmt.Errorf("root: %w", ErrSharedNode)
	}

	// Validate labels before touching anything so a failure leaves root unowned.
	var elems []*Element
	collectElements(root, &elems)
	taken := make(map[string]map[int]struct{})
	for _, e := range elems {
		if !e.explicit {
			continue
		}
		set := taken[e.Symbol()]
		if set == nil {
			set = make(map[int]struct{})
			taken[e.Symbol()] = set
		}
		if _, dup := set[e.index]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, e.Label())
		}
		set[e.index] = struct{}{}
	}

	if root.kind != KindSeries {
		wrapped, err := NewSeries(root)
		if err != nil {
			return nil, err
		}
		root = wrapped
	}
	root.setOwned()

	next := make(map[string]int)
	c := &Circuit{root: root, elements: elems, byLabel: make(map[string]*Element, len(elems))}
	for _, e := range elems {
		if !e.explicit {
			e.index = nextFree(taken, next, e.Symbol())
		}
		c.byLabel[e.Label()] = e
	}

	return c, nil
}

// nextFree returns the smallest ordinal ≥ 1 of symbol not yet in taken and
// records it.
func nextFree(taken map[string]map[int]struct{}, next map[string]int, symbol string) int {
	set := taken[symbol]
	if set == nil {
		set = make(map[int]struct{})
		taken[symbol] = set
	}
	n := next[symbol]
	for {
		n++
		if _, used := set[n]; !used {
			break
		}
	}
	set[n] = struct{}{}
	next[symbol] = n

	return n
}

// collectElements appends elements in depth-first order, containers before
// their interiors.
func collectElements(n Node, out *[]*Element) {
	switch v := n.(type) {
	case *Element:
		*out = append(*out, v)
		if v.sub != nil {
			collectElements(v.sub, out)
		}
	case *Connection:
		for _, ch := range v.children {
			collectElements(ch, out)
		}
	}
}

// Root returns the top-level series connection.
func (c *Circuit) Root() *Connection { return c.root }

// Elements returns every element in depth-first order.
func (c *Circuit) Elements() []*Element {
	out := make([]*Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Element returns the element labelled label ("R1").
func (c *Circuit) Element(label string) (*Element, error) {
	e, ok := c.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}

	return e, nil
}

// ParameterRef addresses one parameter of one element of a circuit.
type ParameterRef struct {
	Element   *Element
	Parameter *param.Parameter
}

// Key returns "<label>.<id>", e.g. "R1.R".
func (r ParameterRef) Key() string {
	return r.Element.Label() + "." + r.Parameter.ID()
}

// Parameters returns every parameter, in element order then schema order.
func (c *Circuit) Parameters() []ParameterRef {
	var out []ParameterRef
	for _, e := range c.elements {
		for _, p := range e.params {
			out = append(out, ParameterRef{Element: e, Parameter: p})
		}
	}

	return out
}

// Parameter resolves a "<label>.<id>" key.
func (c *Circuit) Parameter(key string) (ParameterRef, error) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] != '.' {
			continue
		}
		e, ok := c.byLabel[key[:i]]
		if !ok {
			break
		}
		p, ok := e.Parameter(key[i+1:])
		if !ok {
			break
		}
		return ParameterRef{Element: e, Parameter: p}, nil
	}

	return ParameterRef{}, fmt.Errorf("%w: %q", ErrUnknownLabel, key)
}

// FreeParameters returns the parameters not marked fixed, in Parameters order.
// This is the vector an optimizer varies.
func (c *Circuit) FreeParameters() []ParameterRef {
	var out []ParameterRef
	for _, r := range c.Parameters() {
		if !r.Parameter.Fixed() {
			out = append(out, r)
		}
	}

	return out
}

// FreeValues returns the current values of FreeParameters.
func (c *Circuit) FreeValues() []float64 {
	free := c.FreeParameters()
	out := make([]float64, len(free))
	for i, r := range free {
		out[i] = r.Parameter.Value()
	}

	return out
}

// SetFreeValues assigns values to FreeParameters in order. Either every value
// is applied or none is.
//
// Errors:
//   - ErrVectorLength      if len(values) differs from the free-parameter count.
//   - param.ErrNotANumber  if a value is NaN.
//   - param.ErrOutOfBounds if a value falls outside its parameter's bounds.
func (c *Circuit) SetFreeValues(values []float64) error {
	free := c.FreeParameters()
	if len(values) != len(free) {
		return fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(values), len(free))
	}
	for i, r := range free {
		p, v := r.Parameter, values[i]
		if math.IsNaN(v) {
			return fmt.Errorf("%s: %w", r.Key(), param.ErrNotANumber)
		}
		if !param.Within(v, p.Lower(), p.Upper()) {
			return fmt.Errorf("%s: %w: %g not in [%g, %g]", r.Key(), param.ErrOutOfBounds, v, p.Lower(), p.Upper())
		}
	}
	for i, r := range free {
		if err := r.Parameter.SetValue(values[i]); err != nil {
			return fmt.Errorf("%s: %w", r.Key(), err)
		}
	}

	return nil
}

// Clone returns a deep copy of the tree and every parameter. Labels are kept.
func (c *Circuit) Clone() *Circuit {
	root := c.root.cloneNode().(*Connection)
	root.setOwned()
	var elems []*Element
	collectElements(root, &elems)
	out := &Circuit{root: root, elements: elems, byLabel: make(map[string]*Element, len(elems))}
	for _, e := range elems {
		out.byLabel[e.Label()] = e
	}

	return out
}

// String returns the canonical CDC of c.
func (c *Circuit) String() string { return Format(c) }
