// Package cdc compiles circuit description code into circuit trees and
// renders trees back into canonical CDC.
//
// Grammar (Boukamp convention; the top level is an implicit series):
//
//	circuit   := series EOF
//	series    := term { term }
//	parallel  := '(' term { [','] term } ')'
//	term      := element | '[' series ']' | parallel
//	element   := SYMBOL [INDEX] { block }
//	block     := '{' entry { ',' entry } '}'
//	entry     := KEY '=' ( valuespec | bool | subcdc )
//	valuespec := number [unit] ['F'] [ '/' [bound] '/' [bound] ]
//	SYMBOL    := [A-Z][a-z]*      INDEX := [0-9]+
//	unit      := T G M meg k K m u n p f
//
// Examples:
//
//	R(RC)                       R + (R || C)
//	R{R=100}(R{R=200}C{C=1u})   the same with explicit values
//	R(Q[RW])                    Randles cell with diffusion
//	C{C=2.5e-6F/1e-7/1e-5}      fixed value with custom bounds
//	C{C=1e-6}{fixed=true}       every parameter of C fixed
//	Tlm{R=5,Z=(RC)}             container with an explicit sub-circuit
//
// Entry semantics:
//
//   - A parameter entry fully defines its parameter: the value, the fixed flag
//     (F present or not) and the bounds (the definition's when omitted; an empty
//     bound also keeps the definition's). Parameters without an entry keep their
//     registry defaults.
//   - "fixed=true|false" sets the fixed flag of every parameter of the element.
//     Blocks and entries apply left to right.
//   - The sub-circuit key of a container (Z for the built-ins) carries nested
//     CDC. Without it the definition's default template is instantiated.
//
// Serialization is minimal: only entries that differ from their definition,
// only explicit indices, and a container sub-circuit only when it differs from
// the default template. Parse(Serialize(c)) reproduces c.
//
// Errors:
//
//	*ParseError wraps one of:
//	ErrUnbalancedBrackets        - unmatched opener, stray or mismatched closer.
//	ErrSyntax                    - any other malformed input.
//	registry.ErrUnknownSymbol    - symbol not registered.
//	registry.ErrUnknownParameter - entry key neither parameter nor reserved key.
//	param.ErrOutOfBounds         - value outside its bounds.
//	param.ErrInvalidBounds       - lower > upper.
//	circuit.ErrEmptyCircuit      - empty input, "[]", "()" or empty sub-circuit.
//	circuit.ErrDuplicateLabel    - two elements with the same explicit label.
package cdc
