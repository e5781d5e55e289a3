// Package builder assembles circuits programmatically through a chainable,
// stack-based API that mirrors the CDC grammar one call per token.
//
//	c, err := builder.New().
//		AddElement("R", circuit.WithValue("R", 100)). // R
//		OpenParallel().                               // (
//		AddElement("R", circuit.WithValue("R", 200)). //  R
//		AddElement("C").                              //  C
//		Close().                                      // )
//		Build()
//
// is structurally identical to cdc.Parse("R{R=100}(R{R=200}C)"): same canonical
// CDC, same plain data, same impedance.
//
// The package offers:
//
//   - Frames: the bottom frame is the root series. OpenSeries, OpenParallel and
//     OpenContainer push a frame; Close pops one and attaches the finished node
//     to the frame below. A container frame becomes the container's sub-circuit.
//   - Containers: AddElement on a container symbol instantiates its registered
//     default template, exactly like the parser does for a bare symbol.
//   - Sticky errors: the first failure is recorded, later calls are no-ops, and
//     Build returns it with method context ("AddElement(X): ...").
//   - Options: WithRegistry (symbol source), WithMaxDepth (nesting limit).
//     Option constructors panic on meaningless input; building never panics.
//
// Errors:
//
//	ErrUnbalancedConstruction - Build with open frames, Close on the root, or
//	                            Build of an empty root (joined with
//	                            circuit.ErrEmptyCircuit).
//	ErrMaxDepth               - an Open call beyond the configured nesting limit.
//	ErrNotContainer           - OpenContainer on a plain element symbol.
//	ErrAlreadyBuilt           - any call after a successful Build.
//
// Lower-level sentinels (registry.ErrUnknownSymbol, param.ErrOutOfBounds,
// circuit.ErrEmptyCircuit, ...) are wrapped, so errors.Is sees through them.
//
// Concurrency: a Builder is not safe for concurrent use.
package builder
