// Package eiscircuit models electrochemical impedance spectra with equivalent
// circuits: compact Boukamp-style descriptions such as "R(C[RW])" compiled into
// evaluable trees of elements, series and parallel connections.
//
// What is in the box?
//
//   - param/    bounded, optionally fixed scalar parameters
//   - registry/ element kinds: formulas, parameter schemas, containers, presets
//   - circuit/  the circuit tree, impedance evaluation, walking, plain data, JSON
//   - cdc/      Circuit Description Code parser and canonical serializer
//   - builder/  a chainable programmatic constructor, equivalent to the parser
//   - sweep/    decade, octave and linear frequency grids
//   - config/   YAML project files: default sweep, presets, named circuits
//
// Quick example:
//
//	c, _ := cdc.Parse("R{R=10}(C{C=2e-5}[R{R=1k}W{Y=0.005}])")
//	f, _ := sweep.LogPerDecade(1e-2, 1e5, 10)
//	z := c.Impedance(sweep.Angular(f))
//
// Bracket convention: [] is series, () is parallel, and the top level is an
// implicit series. Elements are labelled R1, R2, C1, ... in depth-first order;
// explicit indices ("R3") are kept.
//
// Concurrency: evaluation is pure. Clone a circuit per goroutine before
// mutating parameters; the registry is read-mostly after start-up.
//
//	go install github.com/katalvlaran/eiscircuit/cmd/eiscircuit@latest
package eiscircuit
