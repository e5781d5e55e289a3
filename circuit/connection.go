// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// connection.go - series and parallel connections.

package circuit

import (
	"fmt"
	"math/cmplx"
)

// Connection is an internal tree node combining its children in series or in
// parallel. It is immutable once constructed.
type Connection struct {
	kind     Kind
	children []Node
	owned    bool
}

// NewSeries returns a series connection claiming children in order.
// Complexity: O(k) for k children.
func NewSeries(children ...Node) (*Connection, error) {
	return newConnection(KindSeries, children)
}

// NewParallel returns a parallel connection claiming children in order.
func NewParallel(children ...Node) (*Connection, error) {
	return newConnection(KindParallel, children)
}

// newConnection validates children before claiming any of them, so a failed
// call leaves every child unowned.
func newConnection(kind Kind, children []Node) (*Connection, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrEmptyCircuit)
	}
	seen := make(map[Node]struct{}, len(children))
	for i, ch := range children {
		if ch == nil || isNilNode(ch) {
			return nil, fmt.Errorf("%s: child %d: %w", kind, i, ErrNilNode)
		}
		if _, dup := seen[ch]; dup || ch.isOwned() {
			return nil, fmt.Errorf("%s: child %d: %w", kind, i, ErrSharedNode)
		}
		seen[ch] = struct{}{}
	}
	c := &Connection{kind: kind, children: make([]Node, len(children))}
	for i, ch := range children {
		ch.setOwned()
		c.children[i] = ch
	}

	return c, nil
}

// isNilNode catches typed nil pointers stored in a Node interface.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Element:
		return v == nil
	case *Connection:
		return v == nil
	}

	return false
}

// asSeries returns c itself if it is a series connection, or c wrapped in a
// single-child series connection otherwise.
func asSeries(c *Connection) (*Connection, error) {
	if c.kind == KindSeries {
		if c.owned {
			return nil, ErrSharedNode
		}
		return c, nil
	}

	return NewSeries(c)
}

// Kind returns KindSeries or KindParallel.
func (c *Connection) Kind() Kind { return c.kind }

// Children returns a copy of the ordered children.
func (c *Connection) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of children.
func (c *Connection) Len() int { return len(c.children) }

// evaluate combines child impedances: Σ Zi for series, 1/Σ(1/Zi) for parallel.
func (c *Connection) evaluate(omega []float64, dst []complex128) {
	scratch := make([]complex128, len(omega))
	for i := range dst {
		dst[i] = 0
	}
	if c.kind == KindSeries {
		for _, ch := range c.children {
			ch.evaluate(omega, scratch)
			for i, z := range scratch {
				dst[i] += z
			}
		}
		return
	}

	// Parallel: dst accumulates admittance; short marks exact zero-impedance branches.
	short := make([]bool, len(omega))
	for _, ch := range c.children {
		ch.evaluate(omega, scratch)
		for i, z := range scratch {
			switch {
			case z == 0:
				short[i] = true
			case cmplx.IsInf(z):
				// Open branch: zero admittance.
			default:
				dst[i] += 1 / z
			}
		}
	}
	for i, y := range dst {
		switch {
		case short[i]:
			dst[i] = 0
		case y == 0:
			dst[i] = cmplx.Inf()
		default:
			dst[i] = 1 / y
		}
	}
}

func (c *Connection) cloneNode() Node {
	out := &Connection{kind: c.kind, children: make([]Node, len(c.children))}
	for i, ch := range c.children {
		cl := ch.cloneNode()
		cl.setOwned()
		out.children[i] = cl
	}

	return out
}

func (c *Connection) isOwned() bool { return c.owned }
func (c *Connection) setOwned()     { c.owned = true }
