// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// types.go - structural tags and the sealed Node interface.

package circuit

// Kind is the structural tag of a Node.
type Kind uint8

const (
	// KindElement is a leaf element.
	KindElement Kind = iota + 1
	// KindContainer is an element owning a nested sub-circuit.
	KindContainer
	// KindSeries is a series Connection.
	KindSeries
	// KindParallel is a parallel Connection.
	KindParallel
)

// String returns the plain-data type tag of k.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindContainer:
		return "container"
	case KindSeries:
		return "series"
	case KindParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Node is a vertex of the circuit tree: *Element or *Connection.
// The interface is sealed; behaviour of element kinds comes from the registry.
type Node interface {
	// Kind returns the structural tag.
	Kind() Kind

	// Children returns the direct children: connection members, or the
	// sub-circuit of a container. Leaves return nil.
	Children() []Node

	evaluate(omega []float64, dst []complex128)
	cloneNode() Node
	isOwned() bool
	setOwned()
}
