package circuit

import "errors"

var (
	// ErrEmptyCircuit indicates a circuit or connection with no children.
	ErrEmptyCircuit = errors.New("circuit: empty circuit or connection")

	// ErrNilNode indicates a nil child, definition or root.
	ErrNilNode = errors.New("circuit: nil node")

	// ErrSharedNode indicates an attempt to attach a node that already has an owner.
	ErrSharedNode = errors.New("circuit: node already owned")

	// ErrDuplicateLabel indicates two elements carrying the same explicit label.
	ErrDuplicateLabel = errors.New("circuit: duplicate element label")

	// ErrInvalidIndex indicates an explicit element index below 1.
	ErrInvalidIndex = errors.New("circuit: invalid element index")

	// ErrMissingSubcircuit indicates a container constructed without a sub-circuit.
	ErrMissingSubcircuit = errors.New("circuit: container requires a subcircuit")

	// ErrUnexpectedSubcircuit indicates a sub-circuit given to a non-container element.
	ErrUnexpectedSubcircuit = errors.New("circuit: element does not take a subcircuit")

	// ErrVectorLength indicates a parameter vector whose length does not match.
	ErrVectorLength = errors.New("circuit: parameter vector length mismatch")

	// ErrUnknownLabel indicates a label or parameter key not present in the circuit.
	ErrUnknownLabel = errors.New("circuit: unknown label")

	// ErrInvalidPlainData indicates a malformed plain-data mapping.
	ErrInvalidPlainData = errors.New("circuit: invalid plain data")
)
