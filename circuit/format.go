// SPDX-License-Identifier: MIT
// Package: eiscircuit/circuit
//
// format.go - minimal canonical CDC rendering.

package circuit

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/eiscircuit/param"
)

// FormatOption configures Format and FormatNode.
type FormatOption func(*formatConfig)

type formatConfig struct {
	precision int
	template  func(string) string
}

// WithPrecision renders values with n significant digits instead of the
// shortest exact representation. n < 1 restores the default.
func WithPrecision(n int) FormatOption {
	return func(c *formatConfig) {
		if n < 1 {
			n = -1
		}
		c.precision = n
	}
}

// WithTemplateCanonicalizer sets the function mapping a container's default
// template to its canonical CDC. The sub-circuit of a container is omitted when
// it renders identically. The default compares against the template verbatim.
func WithTemplateCanonicalizer(fn func(template string) string) FormatOption {
	return func(c *formatConfig) {
		if fn != nil {
			c.template = fn
		}
	}
}

func newFormatConfig(opts []FormatOption) *formatConfig {
	cfg := &formatConfig{precision: -1, template: func(s string) string { return s }}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Format renders c as minimal CDC: series children adjacent, nested series in
// "[...]", parallel in "(...)", and only the parameters that differ from
// their definition.
func Format(c *Circuit, opts ...FormatOption) string {
	var sb strings.Builder
	cfg := newFormatConfig(opts)
	cfg.series(&sb, c.root)

	return sb.String()
}

// FormatNode renders a single subtree. A series node renders without brackets.
func FormatNode(n Node, opts ...FormatOption) string {
	var sb strings.Builder
	cfg := newFormatConfig(opts)
	switch v := n.(type) {
	case *Connection:
		if v == nil {
			return ""
		}
		if v.kind == KindSeries {
			cfg.series(&sb, v)
		} else {
			cfg.node(&sb, v)
		}
	case *Element:
		if v == nil {
			return ""
		}
		cfg.element(&sb, v)
	}

	return sb.String()
}

// series writes the children of a series connection without brackets.
func (cfg *formatConfig) series(sb *strings.Builder, c *Connection) {
	for _, ch := range c.children {
		cfg.node(sb, ch)
	}
}

func (cfg *formatConfig) node(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Element:
		cfg.element(sb, v)
	case *Connection:
		open, closing := byte('['), byte(']')
		if v.kind == KindParallel {
			open, closing = '(', ')'
		}
		sb.WriteByte(open)
		cfg.series(sb, v)
		sb.WriteByte(closing)
	}
}

func (cfg *formatConfig) element(sb *strings.Builder, e *Element) {
	sb.WriteString(e.Symbol())
	if e.explicit {
		sb.WriteString(strconv.Itoa(e.index))
	}

	var entries []string
	for i, p := range e.params {
		def := e.def.Parameter(i)
		if p.ValueIsDefault(def) && p.BoundsAreDefault(def) && p.FixedIsDefault(def) {
			continue
		}
		entries = append(entries, cfg.entry(p, def))
	}
	if e.sub != nil {
		if sub, ok := e.def.Subcircuit(); ok {
			inner := &strings.Builder{}
			cfg.series(inner, e.sub)
			if inner.String() != cfg.template(sub.Default) {
				entries = append(entries, sub.Key+"="+inner.String())
			}
		}
	}
	if len(entries) > 0 {
		sb.WriteByte('{')
		sb.WriteString(strings.Join(entries, ","))
		sb.WriteByte('}')
	}
}

// entry renders "id=value[F][/lower/upper]". A present entry fully defines
// the parameter, so F is written whenever the parameter is fixed, and bounds
// whenever either differs from the definition.
func (cfg *formatConfig) entry(p *param.Parameter, def param.Definition) string {
	var sb strings.Builder
	sb.WriteString(p.ID())
	sb.WriteByte('=')
	sb.WriteString(FormatValue(p.Value(), cfg.precision))
	if p.Fixed() {
		sb.WriteByte('F')
	}
	if !p.BoundsAreDefault(def) {
		sb.WriteByte('/')
		sb.WriteString(FormatValue(p.Lower(), cfg.precision))
		sb.WriteByte('/')
		sb.WriteString(FormatValue(p.Upper(), cfg.precision))
	}

	return sb.String()
}

// FormatValue renders v in CDC notation: shortest 'g' form (or prec
// significant digits), and "inf"/"-inf" for infinities.
func FormatValue(v float64, prec int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	return strconv.FormatFloat(v, 'g', prec, 64)
}
