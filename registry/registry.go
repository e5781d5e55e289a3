// SPDX-License-Identifier: MIT
// Package: eiscircuit/registry
//
// registry.go - the symbol → Definition catalog.
//
// Concurrency:
//   - mu guards defs and used. Definitions themselves are immutable, so a
//     *Definition returned by Lookup can be shared freely across goroutines.

package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps CDC symbols to element and container definitions.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
	// used records symbols resolved by a parse or build; Override refuses them.
	used map[string]struct{}
}

// New returns an empty Registry.
// Complexity: O(1).
func New() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
		used: make(map[string]struct{}),
	}
}

// NewWithBuiltins returns a Registry pre-populated with the built-in catalogue.
// Useful for tests that register custom kinds without touching Default().
func NewWithBuiltins() *Registry {
	r := New()
	for _, d := range builtins() {
		if _, err := r.Register(d); err != nil {
			panic(fmt.Sprintf("registry: builtin %v", err))
		}
	}

	return r
}

// Register validates d and adds it under its symbol.
//
// Errors:
//   - ErrInvalidDefinition if d is malformed (see ValidateSymbol and param.Definition.Validate),
//     or if a container's default template does not parse against r.
//   - ErrDuplicateSymbol   if the symbol is already registered.
//
// Complexity: O(P) for P parameters.
func (r *Registry) Register(d Definable) (*Definition, error) {
	def, err := d.resolve()
	if err != nil {
		return nil, err
	}
	if err := r.checkTemplate(def); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.symbol]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, def.symbol)
	}
	r.defs[def.symbol] = def

	return def, nil
}

// Override replaces an existing definition, provided no parse or build has
// resolved its symbol yet.
//
// Errors:
//   - ErrInvalidDefinition if d is malformed.
//   - ErrUnknownSymbol     if nothing is registered under the symbol.
//   - ErrSymbolInUse       if the symbol was already resolved through Lookup.
func (r *Registry) Override(d Definable) (*Definition, error) {
	def, err := d.resolve()
	if err != nil {
		return nil, err
	}
	if err := r.checkTemplate(def); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.symbol]; !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, def.symbol)
	}
	if _, inUse := r.used[def.symbol]; inUse {
		return nil, fmt.Errorf("%w: %q", ErrSymbolInUse, def.symbol)
	}
	r.defs[def.symbol] = def

	return def, nil
}

// Lookup resolves symbol and marks it as used.
// Returns ErrUnknownSymbol if it is not registered.
// Complexity: O(1).
func (r *Registry) Lookup(symbol string) (*Definition, error) {
	r.mu.RLock()
	def, ok := r.defs[symbol]
	_, marked := r.used[symbol]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	if !marked {
		r.mu.Lock()
		r.used[symbol] = struct{}{}
		r.mu.Unlock()
	}

	return def, nil
}

// Peek resolves symbol without marking it as used.
func (r *Registry) Peek(symbol string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[symbol]
	return def, ok
}

// Has reports whether symbol is registered.
func (r *Registry) Has(symbol string) bool {
	_, ok := r.Peek(symbol)
	return ok
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Symbols returns all registered symbols, sorted.
// Complexity: O(N log N).
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.defs))
	for s := range r.defs {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Strings(out)

	return out
}

// Definitions returns all definitions ordered by symbol.
func (r *Registry) Definitions() []*Definition {
	syms := r.Symbols()
	out := make([]*Definition, 0, len(syms))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range syms {
		if d, ok := r.defs[s]; ok {
			out = append(out, d)
		}
	}

	return out
}

var defaultRegistry = New()

func init() {
	for _, d := range builtins() {
		if _, err := defaultRegistry.Register(d); err != nil {
			panic(fmt.Sprintf("registry: builtin %v", err))
		}
	}
}

// Default returns the process-wide registry holding the built-in kinds.
func Default() *Registry { return defaultRegistry }

// Register adds d to the process-wide registry.
func Register(d Definable) (*Definition, error) { return defaultRegistry.Register(d) }

// Lookup resolves symbol in the process-wide registry.
func Lookup(symbol string) (*Definition, error) { return defaultRegistry.Lookup(symbol) }
