// Package registry is the catalog of element and container kinds known to the
// circuit engine, keyed by their CDC symbol.
//
// Graph nodes never switch on a compiled-in type: they reference a *Definition
// resolved through a Registry, and every behavioural difference between kinds
// lives in the Definition's formula. New kinds are data, not code changes:
//
//	_, err := registry.Register(registry.ElementDefinition{
//		Symbol:     "Rx",
//		Name:       "Scaled resistor",
//		Parameters: []param.Definition{param.NonNegative("R", 1)},
//		Impedance: func(p, omega []float64, dst []complex128) {
//			for i := range omega {
//				dst[i] = complex(2*p[0], 0)
//			}
//		},
//	})
//
// Lifecycle:
//
//   - Default() returns the process-wide registry; built-ins are registered in init.
//   - Additional kinds are registered during program initialisation, before any
//     concurrent parse or evaluation starts. Reads are safe from any goroutine.
//   - Register never replaces an entry (ErrDuplicateSymbol). Override replaces
//     one only while no parse/build has resolved the symbol (ErrSymbolInUse).
//
// Container default templates are checked when registered. Importing package
// cdc makes that a full parse against the registry; without it only bracket
// balance is checked.
//
// Symbols must match [A-Z][a-z]*: the CDC lexer reads an upper-case letter
// followed by lower-case letters as one symbol, and trailing digits as the index.
//
// Errors:
//
//	ErrDuplicateSymbol   - symbol already registered.
//	ErrInvalidDefinition - malformed definition (symbol, name, formula, parameters,
//	                       container template).
//	ErrUnknownSymbol     - lookup of an unregistered symbol.
//	ErrUnknownParameter  - parameter ID not part of a definition.
//	ErrSymbolInUse       - Override of a symbol that was already resolved.
package registry
