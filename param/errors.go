package param

import "errors"

var (
	// ErrInvalidDefinition indicates a malformed parameter Definition.
	ErrInvalidDefinition = errors.New("param: invalid parameter definition")

	// ErrOutOfBounds indicates a value outside the parameter's [lower, upper] interval.
	ErrOutOfBounds = errors.New("param: value out of bounds")

	// ErrInvalidBounds indicates lower > upper or a NaN bound.
	ErrInvalidBounds = errors.New("param: invalid bounds")

	// ErrNotANumber indicates a NaN value.
	ErrNotANumber = errors.New("param: value is NaN")
)
