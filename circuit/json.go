// Package: eiscircuit/circuit
//
// json.go - JSON transport of the plain-data form.

package circuit

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/katalvlaran/eiscircuit/registry"
)

// EncodeJSON renders the plain-data form of c as JSON with sorted keys.
// indent 0 produces compact output.
func EncodeJSON(c *Circuit, indent int) string {
	return oj.JSON(c.ToMap(), &oj.Options{Sort: true, Indent: indent})
}

// DecodeJSON parses JSON produced by EncodeJSON (or any document of the same
// shape) and rebuilds the circuit through FromMap.
func DecodeJSON(reg *registry.Registry, data []byte) (*Circuit, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlainData, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: $: document is %T, want object", ErrInvalidPlainData, v)
	}

	return FromMap(reg, m)
}

// Query evaluates a JSONPath expression against the plain-data form of c,
// e.g. "$..parameters[?(@.fixed == true)].id".
func Query(c *Circuit, selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}

	return x.Get(c.ToMap()), nil
}
