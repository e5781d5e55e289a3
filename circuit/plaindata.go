// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// plaindata.go - map/list form of a circuit for generic transports.
//
// Shape:
//
//	{"type": "circuit", "children": [<node>...]}
//	{"type": "series"|"parallel", "children": [<node>...]}
//	{"type": "element"|"container", "symbol": "R", "index": 2,
//	 "parameters": [{"id": "R", "value": 100, "lower": 0, "upper": null, "fixed": false}],
//	 "subcircuit": {"type": "series", ...}}
//
// "index" appears only for explicit ordinals; a null bound is infinite in its
// own direction (lower -Inf, upper +Inf). Any other infinite number is written
// as the string "inf" or "-inf", since JSON has no literal for it.

package circuit

import (
	"fmt"
	"math"

	"github.com/katalvlaran/eiscircuit/registry"
)

// Plain-data keys and type tags.
const (
	KeyType       = "type"
	KeyChildren   = "children"
	KeySymbol     = "symbol"
	KeyIndex      = "index"
	KeyParameters = "parameters"
	KeySubcircuit = "subcircuit"

	KeyID    = "id"
	KeyValue = "value"
	KeyLower = "lower"
	KeyUpper = "upper"
	KeyFixed = "fixed"

	TypeCircuit = "circuit"

	PlainInf    = "inf"
	PlainNegInf = "-inf"
)

// ToMap returns the plain-data form of c.
func (c *Circuit) ToMap() map[string]any {
	return map[string]any{
		KeyType:     TypeCircuit,
		KeyChildren: childrenToList(c.root.children),
	}
}

// NodeToMap returns the plain-data form of a subtree.
func NodeToMap(n Node) map[string]any {
	switch v := n.(type) {
	case *Element:
		m := map[string]any{
			KeyType:   v.Kind().String(),
			KeySymbol: v.Symbol(),
		}
		if v.explicit {
			m[KeyIndex] = v.index
		}
		params := make([]any, len(v.params))
		for i, p := range v.params {
			params[i] = map[string]any{
				KeyID:    p.ID(),
				KeyValue: numberToPlain(p.Value()),
				KeyLower: boundToPlain(p.Lower(), math.Inf(-1)),
				KeyUpper: boundToPlain(p.Upper(), math.Inf(1)),
				KeyFixed: p.Fixed(),
			}
		}
		m[KeyParameters] = params
		if v.sub != nil {
			m[KeySubcircuit] = NodeToMap(v.sub)
		}
		return m
	case *Connection:
		return map[string]any{
			KeyType:     v.kind.String(),
			KeyChildren: childrenToList(v.children),
		}
	}

	return nil
}

func childrenToList(children []Node) []any {
	out := make([]any, len(children))
	for i, ch := range children {
		out[i] = NodeToMap(ch)
	}

	return out
}

// boundToPlain writes null for the bound's natural infinity.
func boundToPlain(b, null float64) any {
	if b == null {
		return nil
	}

	return numberToPlain(b)
}

func numberToPlain(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return PlainInf
	case math.IsInf(v, -1):
		return PlainNegInf
	}

	return v
}

// FromMap rebuilds a circuit from its plain-data form, resolving symbols in
// reg (registry.Default() when nil). Validation matches the CDC parser: a
// container without "subcircuit" takes its default template, expanded by the
// installed TemplateExpander. Importing package cdc installs one; with none
// installed the container fails with ErrMissingSubcircuit.
//
// Errors:
//   - ErrInvalidPlainData           for malformed shapes, with the offending path.
//   - registry.ErrUnknownSymbol     for unregistered symbols.
//   - registry.ErrUnknownParameter  for undeclared parameter IDs.
//   - param.ErrOutOfBounds et al.   for invalid values.
//   - ErrEmptyCircuit, ErrDuplicateLabel from construction.
func FromMap(reg *registry.Registry, m map[string]any) (*Circuit, error) {
	if reg == nil {
		reg = registry.Default()
	}
	d := &decoder{reg: reg}
	if t, _ := m[KeyType].(string); t != TypeCircuit {
		return nil, d.invalid("", "type %q, want %q", m[KeyType], TypeCircuit)
	}
	children, err := d.children("", m)
	if err != nil {
		return nil, err
	}
	root, err := NewSeries(children...)
	if err != nil {
		return nil, err
	}

	return New(root)
}

// NodeFromMap rebuilds a single subtree from its plain-data form.
func NodeFromMap(reg *registry.Registry, m map[string]any) (Node, error) {
	if reg == nil {
		reg = registry.Default()
	}
	d := &decoder{reg: reg}

	return d.node("", m)
}

type decoder struct {
	reg *registry.Registry
}

func (d *decoder) invalid(path, format string, args ...any) error {
	if path == "" {
		path = "$"
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidPlainData, path, fmt.Sprintf(format, args...))
}

func (d *decoder) node(path string, m map[string]any) (Node, error) {
	if m == nil {
		return nil, d.invalid(path, "null node")
	}
	t, _ := m[KeyType].(string)
	switch t {
	case KindSeries.String(), KindParallel.String():
		children, err := d.children(path, m)
		if err != nil {
			return nil, err
		}
		if t == KindSeries.String() {
			return NewSeries(children...)
		}
		return NewParallel(children...)
	case KindElement.String(), KindContainer.String():
		return d.element(path, m)
	default:
		return nil, d.invalid(join(path, KeyType), "unknown node type %v", m[KeyType])
	}
}

func (d *decoder) children(path string, m map[string]any) ([]Node, error) {
	list, err := d.list(join(path, KeyChildren), m[KeyChildren])
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", join(path, KeyChildren), ErrEmptyCircuit)
	}
	out := make([]Node, len(list))
	for i, raw := range list {
		p := fmt.Sprintf("%s[%d]", join(path, KeyChildren), i)
		cm, ok := raw.(map[string]any)
		if !ok {
			return nil, d.invalid(p, "node is %T, want object", raw)
		}
		if out[i], err = d.node(p, cm); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (d *decoder) element(path string, m map[string]any) (Node, error) {
	symbol, ok := m[KeySymbol].(string)
	if !ok {
		return nil, d.invalid(join(path, KeySymbol), "missing symbol")
	}
	def, err := d.reg.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", join(path, KeySymbol), err)
	}

	var opts []ElementOption
	if raw, present := m[KeyIndex]; present {
		n, ok := toFloat(raw)
		if !ok || math.IsInf(n, 0) || n != math.Trunc(n) {
			return nil, d.invalid(join(path, KeyIndex), "index %v is not an integer", raw)
		}
		opts = append(opts, WithIndex(int(n)))
	}

	params, err := d.list(join(path, KeyParameters), m[KeyParameters])
	if err != nil {
		return nil, err
	}
	for i, raw := range params {
		p := fmt.Sprintf("%s[%d]", join(path, KeyParameters), i)
		opt, err := d.parameter(p, def, raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}

	raw, present := m[KeySubcircuit]
	if (!present || raw == nil) && def.IsContainer() {
		if expand := templateExpander(); expand != nil {
			conn, err := expand(d.reg, def)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", join(path, KeySubcircuit), err)
			}
			opts = append(opts, WithSubcircuit(conn))
		}
	}
	if present && raw != nil {
		sm, ok := raw.(map[string]any)
		if !ok {
			return nil, d.invalid(join(path, KeySubcircuit), "subcircuit is %T, want object", raw)
		}
		sub, err := d.node(join(path, KeySubcircuit), sm)
		if err != nil {
			return nil, err
		}
		conn, ok := sub.(*Connection)
		if !ok {
			if conn, err = NewSeries(sub); err != nil {
				return nil, err
			}
		}
		opts = append(opts, WithSubcircuit(conn))
	}

	e, err := NewElement(def, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", orRoot(path), err)
	}

	return e, nil
}

// parameter decodes one parameter entry. Absent bounds and flag keep the
// definition's; a null bound means infinite.
func (d *decoder) parameter(path string, def *registry.Definition, raw any) (ElementOption, error) {
	pm, ok := raw.(map[string]any)
	if !ok {
		return nil, d.invalid(path, "parameter is %T, want object", raw)
	}
	id, ok := pm[KeyID].(string)
	if !ok {
		return nil, d.invalid(join(path, KeyID), "missing id")
	}
	slot, ok := def.ParameterIndex(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", join(path, KeyID), registry.ErrUnknownParameter, id)
	}
	pd := def.Parameter(slot)

	value, ok := toFloat(pm[KeyValue])
	if !ok {
		return nil, d.invalid(join(path, KeyValue), "value %v is not a number", pm[KeyValue])
	}
	lower, err := d.bound(join(path, KeyLower), pm, KeyLower, pd.Lower, math.Inf(-1))
	if err != nil {
		return nil, err
	}
	upper, err := d.bound(join(path, KeyUpper), pm, KeyUpper, pd.Upper, math.Inf(1))
	if err != nil {
		return nil, err
	}
	fixed := pd.Fixed
	if rawFixed, present := pm[KeyFixed]; present {
		if fixed, ok = rawFixed.(bool); !ok {
			return nil, d.invalid(join(path, KeyFixed), "fixed %v is not a bool", rawFixed)
		}
	}

	return WithParameter(id, value, lower, upper, fixed), nil
}

func (d *decoder) bound(path string, pm map[string]any, key string, absent, null float64) (float64, error) {
	raw, present := pm[key]
	switch {
	case !present:
		return absent, nil
	case raw == nil:
		return null, nil
	}
	v, ok := toFloat(raw)
	if !ok {
		return 0, d.invalid(path, "bound %v is not a number", raw)
	}

	return v, nil
}

// list accepts []any and []map[string]any; nil is an empty list.
func (d *decoder) list(path string, raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	default:
		return nil, d.invalid(path, "%T is not a list", raw)
	}
}

// toFloat coerces the numeric types produced by common decoders and the
// infinity strings written by numberToPlain.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case string:
		switch v {
		case PlainInf, "+inf":
			return math.Inf(1), true
		case PlainNegInf:
			return math.Inf(-1), true
		}
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint:
		return float64(v), true
	}

	return 0, false
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func orRoot(path string) string {
	if path == "" {
		return "$"
	}

	return path
}
