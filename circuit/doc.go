// Package circuit provides the equivalent-circuit tree, its impedance
// evaluator and its plain-data form.
//
// The tree is a tagged variant with four structural kinds:
//
//	KindElement    - leaf; behaviour comes from its registry.Definition formula.
//	KindContainer  - element owning one nested Connection (its sub-circuit).
//	KindSeries     - Connection whose impedance is Σ Zi.
//	KindParallel   - Connection whose impedance is 1 / Σ (1/Zi).
//
// Ownership & lifecycle:
//
//   - Every node has at most one owner. NewSeries, NewParallel, NewElement
//     (for sub-circuits) and New claim their children; claiming an owned node
//     fails with ErrSharedNode, so the tree is acyclic by construction.
//   - Connections are immutable once built. A Circuit is immutable in topology;
//     parameter values stay mutable in place through *param.Parameter.
//   - Labels (symbol + ordinal, "R1", "R2", …) are assigned by New in depth-first
//     order. Explicit indices (from CDC "R3" or WithIndex) are kept; the others
//     take the next free ordinal per symbol.
//
// Evaluation:
//
//	Z := c.Impedance(omega)       // angular frequencies, one call per node
//	Z := c.ImpedanceAt(freqHz)    // ω = 2πf
//
// Parallel tie-break: if any child is an exact short (Z = 0) the aggregate is
// exactly 0; if every child is open (infinite) the aggregate is infinite.
// Frequency degeneracies (ω = 0, ±Inf) are resolved by each element formula.
//
// Concurrency:
//
//   - Evaluation is pure and holds no shared mutable state. It is safe to
//     evaluate from many goroutines as long as nobody mutates parameters
//     meanwhile. Workers that mutate (fitting drivers) must Clone per worker.
//
// Errors:
//
//	ErrEmptyCircuit         - a circuit or connection without children.
//	ErrNilNode              - nil child, nil definition or nil root.
//	ErrSharedNode           - node already owned by another parent.
//	ErrDuplicateLabel       - two elements with the same explicit symbol+index.
//	ErrInvalidIndex         - explicit index < 1.
//	ErrMissingSubcircuit    - container without a sub-circuit.
//	ErrUnexpectedSubcircuit - sub-circuit given to a plain element.
//	ErrVectorLength         - free-parameter vector of the wrong length.
//	ErrUnknownLabel         - lookup of a label or key not in the circuit.
//	ErrInvalidPlainData     - malformed plain-data mapping.
package circuit
