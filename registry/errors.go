package registry

import "errors"

var (
	// ErrDuplicateSymbol indicates a registration whose symbol already exists.
	ErrDuplicateSymbol = errors.New("registry: duplicate symbol")

	// ErrInvalidDefinition indicates a malformed element or container definition.
	ErrInvalidDefinition = errors.New("registry: invalid definition")

	// ErrUnknownSymbol indicates a lookup of a symbol that is not registered.
	ErrUnknownSymbol = errors.New("registry: unknown symbol")

	// ErrUnknownParameter indicates a parameter ID that the definition does not declare.
	ErrUnknownParameter = errors.New("registry: unknown parameter")

	// ErrSymbolInUse indicates an Override of a symbol already resolved by a parse or build.
	ErrSymbolInUse = errors.New("registry: symbol already in use")
)
