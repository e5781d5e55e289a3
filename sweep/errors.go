package sweep

import "errors"

var (
	// ErrBadRange indicates end points that cannot span a grid.
	ErrBadRange = errors.New("sweep: bad frequency range")

	// ErrTooFewPoints indicates a grid size or density below one.
	ErrTooFewPoints = errors.New("sweep: too few points")

	// ErrUnknownSpacing indicates a spacing name ParseSpacing does not know.
	ErrUnknownSpacing = errors.New("sweep: unknown spacing")
)
