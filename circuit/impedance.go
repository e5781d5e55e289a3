// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// impedance.go - recursive vectorised impedance evaluation.

package circuit

import "github.com/katalvlaran/eiscircuit/sweep"

// Impedance evaluates n at the angular frequencies omega (rad/s).
//
// Each node is visited once for the whole vector: elements call their formula
// once, series connections sum, parallel connections sum admittances, and
// containers compose their own formula with the aggregate of their sub-circuit.
//
// Complexity: O(N·F) for N nodes and F frequencies.
// Concurrency: pure; safe as long as no parameter of n is mutated meanwhile.
func Impedance(n Node, omega []float64) []complex128 {
	dst := make([]complex128, len(omega))
	if n == nil || isNilNode(n) || len(omega) == 0 {
		return dst
	}
	n.evaluate(omega, dst)

	return dst
}

// Impedance evaluates c at the angular frequencies omega (rad/s).
func (c *Circuit) Impedance(omega []float64) []complex128 {
	return Impedance(c.root, omega)
}

// ImpedanceAt evaluates c at the frequencies freqHz (Hz).
func (c *Circuit) ImpedanceAt(freqHz []float64) []complex128 {
	return Impedance(c.root, sweep.Angular(freqHz))
}
