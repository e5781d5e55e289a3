// SPDX-License-Identifier: MIT
// Package: eiscircuit/cdc
//
// parser.go - recursive-descent compiler from CDC text to circuit trees.

package cdc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/param"
	"github.com/katalvlaran/eiscircuit/registry"
)

// maxTemplateDepth bounds default-template expansion, so a container whose
// template names itself fails instead of recursing forever.
const maxTemplateDepth = 32

// Option configures Parse.
type Option func(*parseConfig)

type parseConfig struct {
	reg *registry.Registry
}

// WithRegistry resolves symbols in reg instead of registry.Default().
// Panics on nil.
func WithRegistry(reg *registry.Registry) Option {
	if reg == nil {
		panic("cdc: WithRegistry(nil)")
	}
	return func(c *parseConfig) { c.reg = reg }
}

func newParseConfig(opts []Option) *parseConfig {
	cfg := &parseConfig{reg: registry.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Parse compiles s into a labelled circuit.
//
// Errors: always a *ParseError (see the package documentation).
// Complexity: O(len(s)) plus default-template expansion.
func Parse(s string, opts ...Option) (*circuit.Circuit, error) {
	cfg := newParseConfig(opts)
	p := &parser{src: s, reg: cfg.reg, labels: make(map[string]struct{})}
	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	c, err := circuit.New(root)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return c, nil
}

// MustParse is like Parse but panics on error. Intended for literals in tests
// and package-level variables.
func MustParse(s string, opts ...Option) *circuit.Circuit {
	c, err := Parse(s, opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// ParseConnection compiles s into an unowned series connection, for use as a
// container sub-circuit or a builder fragment. Labels are not assigned.
func ParseConnection(s string, opts ...Option) (*circuit.Connection, error) {
	cfg := newParseConfig(opts)
	p := &parser{src: s, reg: cfg.reg, labels: make(map[string]struct{})}

	return p.parseRoot()
}

// DefaultSubcircuit instantiates the default template of a container definition.
func DefaultSubcircuit(def *registry.Definition, opts ...Option) (*circuit.Connection, error) {
	if def == nil || !def.IsContainer() {
		return nil, circuit.ErrUnexpectedSubcircuit
	}
	cfg := newParseConfig(opts)
	p := &parser{reg: cfg.reg, labels: make(map[string]struct{})}

	return p.template(def, 0)
}

type parser struct {
	src   string
	pos   int
	reg   *registry.Registry
	depth int // template nesting
	// labels holds the explicit labels seen so far ("R3").
	labels map[string]struct{}
	// self resolves a definition not yet registered; checkOnly resolves
	// through Peek so that validation marks nothing as used.
	self      *registry.Definition
	checkOnly bool
}

// lookup resolves symbol for element.
func (p *parser) lookup(symbol string) (*registry.Definition, error) {
	if p.self != nil && symbol == p.self.Symbol() {
		return p.self, nil
	}
	if !p.checkOnly {
		return p.reg.Lookup(symbol)
	}
	def, ok := p.reg.Peek(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownSymbol, symbol)
	}

	return def, nil
}

func (p *parser) fail(err error, offset int, fragment string) *ParseError {
	return &ParseError{Err: err, Offset: offset, Fragment: fragment}
}

func (p *parser) syntax(offset int, format string, args ...any) *ParseError {
	frag := ""
	if offset < len(p.src) {
		frag = p.src[offset : offset+1]
	}
	return p.fail(fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)), offset, frag)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-space byte, or 0 at EOF.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) parseRoot() (*circuit.Connection, error) {
	children, err := p.series()
	if err != nil {
		return nil, err
	}
	if c := p.peek(); c != 0 {
		return nil, p.closerError(c)
	}
	if len(children) == 0 {
		return nil, p.fail(circuit.ErrEmptyCircuit, 0, "")
	}
	conn, err := circuit.NewSeries(children...)
	if err != nil {
		return nil, p.fail(err, 0, "")
	}

	return conn, nil
}

// closerError reports a byte that cannot continue or close the current series.
func (p *parser) closerError(c byte) error {
	switch c {
	case ')', ']', '}':
		return p.fail(ErrUnbalancedBrackets, p.pos, string(c))
	default:
		return p.syntax(p.pos, "unexpected %q", c)
	}
}

// series reads terms until EOF or a byte that cannot start a term. The caller
// checks the terminator.
func (p *parser) series() ([]circuit.Node, error) {
	var out []circuit.Node
	for {
		c := p.peek()
		if c == 0 || c == ')' || c == ']' || c == '}' || c == ',' {
			return out, nil
		}
		n, err := p.term()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func (p *parser) term() (circuit.Node, error) {
	switch c := p.peek(); {
	case c == '[':
		return p.nestedSeries()
	case c == '(':
		return p.parallel()
	case c >= 'A' && c <= 'Z':
		return p.element()
	default:
		return nil, p.syntax(p.pos, "unexpected %q", c)
	}
}

func (p *parser) nestedSeries() (circuit.Node, error) {
	open := p.pos
	p.pos++
	children, err := p.series()
	if err != nil {
		return nil, err
	}
	switch c := p.peek(); c {
	case ']':
		p.pos++
	case 0:
		return nil, p.fail(ErrUnbalancedBrackets, open, "[")
	default:
		return nil, p.closerError(c)
	}
	if len(children) == 0 {
		return nil, p.fail(circuit.ErrEmptyCircuit, open, "[]")
	}
	conn, err := circuit.NewSeries(children...)
	if err != nil {
		return nil, p.fail(err, open, "[")
	}

	return conn, nil
}

func (p *parser) parallel() (circuit.Node, error) {
	open := p.pos
	p.pos++
	var children []circuit.Node
	for {
		switch c := p.peek(); c {
		case ')':
			p.pos++
			if len(children) == 0 {
				return nil, p.fail(circuit.ErrEmptyCircuit, open, "()")
			}
			conn, err := circuit.NewParallel(children...)
			if err != nil {
				return nil, p.fail(err, open, "(")
			}
			return conn, nil
		case 0:
			return nil, p.fail(ErrUnbalancedBrackets, open, "(")
		case ']', '}':
			return nil, p.fail(ErrUnbalancedBrackets, p.pos, string(c))
		case ',':
			if len(children) == 0 {
				return nil, p.syntax(p.pos, "leading comma in parallel block")
			}
			p.pos++
			switch next := p.peek(); next {
			case 0:
				return nil, p.fail(ErrUnbalancedBrackets, open, "(")
			case ',', ')':
				return nil, p.syntax(p.pos, "empty parallel branch")
			}
		}
		n, err := p.term()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
}

// element parses SYMBOL [INDEX] {block} and instantiates it.
func (p *parser) element() (circuit.Node, error) {
	start := p.pos
	end := start + 1
	for end < len(p.src) && p.src[end] >= 'a' && p.src[end] <= 'z' {
		end++
	}
	symbol := p.src[start:end]
	def, err := p.lookup(symbol)
	if err != nil {
		return nil, p.fail(err, start, symbol)
	}
	p.pos = end

	var opts []circuit.ElementOption
	if p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		digits := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[digits:p.pos])
		if err != nil || n < 1 {
			return nil, p.fail(circuit.ErrInvalidIndex, digits, p.src[digits:p.pos])
		}
		label := symbol + strconv.Itoa(n)
		if _, dup := p.labels[label]; dup {
			return nil, p.fail(circuit.ErrDuplicateLabel, start, p.src[start:p.pos])
		}
		p.labels[label] = struct{}{}
		opts = append(opts, circuit.WithIndex(n))
	}

	var sub *circuit.Connection
	for p.peek() == '{' {
		blockOpts, blockSub, err := p.block(def)
		if err != nil {
			return nil, err
		}
		opts = append(opts, blockOpts...)
		if blockSub != nil {
			sub = blockSub
		}
	}
	if def.IsContainer() && sub == nil {
		if sub, err = p.template(def, p.depth); err != nil {
			return nil, p.fail(err, start, symbol)
		}
	}
	if sub != nil {
		opts = append(opts, circuit.WithSubcircuit(sub))
	}

	e, err := circuit.NewElement(def, opts...)
	if err != nil {
		return nil, p.fail(err, start, symbol)
	}

	return e, nil
}

// block parses one {...} block of def's entries.
func (p *parser) block(def *registry.Definition) ([]circuit.ElementOption, *circuit.Connection, error) {
	open := p.pos
	p.pos++
	subKey := ""
	if sd, ok := def.Subcircuit(); ok {
		subKey = sd.Key
	}

	var (
		opts []circuit.ElementOption
		sub  *circuit.Connection
	)
	for {
		p.skipSpace()
		keyAt := p.pos
		key := p.identifier()
		if key == "" {
			if p.pos >= len(p.src) {
				return nil, nil, p.fail(ErrUnbalancedBrackets, open, "{")
			}
			return nil, nil, p.syntax(p.pos, "expected parameter key")
		}
		if p.peek() != '=' {
			return nil, nil, p.syntax(p.pos, "expected '=' after %q", key)
		}
		p.pos++
		p.skipSpace()

		switch {
		case key == param.ReservedFixedKey:
			fixed, err := p.boolean()
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, circuit.WithAllFixed(fixed))
		case key == subKey:
			conn, err := p.subcircuit(keyAt)
			if err != nil {
				return nil, nil, err
			}
			sub = conn
		default:
			slot, ok := def.ParameterIndex(key)
			if !ok {
				return nil, nil, p.fail(fmt.Errorf("%w: %s has no parameter %q", registry.ErrUnknownParameter, def.Symbol(), key), keyAt, key)
			}
			opt, err := p.entry(def.Parameter(slot))
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, opt)
		}

		switch c := p.peek(); c {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return opts, sub, nil
		case 0:
			return nil, nil, p.fail(ErrUnbalancedBrackets, open, "{")
		case ')', ']':
			return nil, nil, p.fail(ErrUnbalancedBrackets, p.pos, string(c))
		default:
			return nil, nil, p.syntax(p.pos, "expected ',' or '}'")
		}
	}
}

// entry parses valuespec for pd and checks it against a scratch parameter, so
// range errors point at the entry rather than the element.
func (p *parser) entry(pd param.Definition) (circuit.ElementOption, error) {
	at := p.pos
	value, err := p.number()
	if err != nil {
		return nil, err
	}
	fixed := false
	if p.pos < len(p.src) && p.src[p.pos] == 'F' {
		fixed = true
		p.pos++
	}
	lower, upper := pd.Lower, pd.Upper
	if p.pos < len(p.src) && p.src[p.pos] == '/' {
		p.pos++
		if lower, err = p.bound(lower); err != nil {
			return nil, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != '/' {
			return nil, p.syntax(p.pos, "expected '/' between bounds")
		}
		p.pos++
		if upper, err = p.bound(upper); err != nil {
			return nil, err
		}
	}

	if err := param.New(pd).Set(value, lower, upper, fixed); err != nil {
		return nil, p.fail(err, at, p.src[at:p.pos])
	}

	return circuit.WithParameter(pd.ID, value, lower, upper, fixed), nil
}

// bound parses an optional bound; an empty one yields fallback.
func (p *parser) bound(fallback float64) (float64, error) {
	if p.pos >= len(p.src) {
		return fallback, nil
	}
	switch p.src[p.pos] {
	case '/', ',', '}', ' ', '\t', '\n', '\r':
		return fallback, nil
	}

	return p.number()
}

func (p *parser) number() (float64, error) {
	v, n, ok := scanNumber(p.src[p.pos:])
	if !ok {
		return 0, p.syntax(p.pos, "expected a number")
	}
	p.pos += n

	return v, nil
}

func (p *parser) boolean() (bool, error) {
	at := p.pos
	word := p.identifier()
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, p.syntax(at, "fixed expects true or false, got %q", word)
}

// subcircuit parses nested CDC up to the ',' or '}' closing the entry.
func (p *parser) subcircuit(keyAt int) (*circuit.Connection, error) {
	at := p.pos
	children, err := p.series()
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, p.fail(circuit.ErrEmptyCircuit, at, p.src[keyAt:p.pos])
	}
	conn, err := circuit.NewSeries(children...)
	if err != nil {
		return nil, p.fail(err, at, "")
	}

	return conn, nil
}

// template instantiates the default sub-circuit of a container definition.
func (p *parser) template(def *registry.Definition, depth int) (*circuit.Connection, error) {
	sd, _ := def.Subcircuit()
	if depth >= maxTemplateDepth {
		return nil, fmt.Errorf("%w: default template of %s nests deeper than %d", ErrSyntax, def.Symbol(), maxTemplateDepth)
	}
	sp := &parser{
		src: sd.Default, reg: p.reg, depth: depth + 1, labels: make(map[string]struct{}),
		self: p.self, checkOnly: p.checkOnly,
	}
	conn, err := sp.parseRoot()
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("default template %q of %s: %w", sd.Default, def.Symbol(), pe.Err)
		}
		return nil, err
	}

	return conn, nil
}

// identifier consumes [A-Za-z][A-Za-z0-9_]* and returns it, or "".
func (p *parser) identifier() string {
	start := p.pos
	if p.pos >= len(p.src) || !isLetter(p.src[p.pos]) {
		return ""
	}
	p.pos++
	for p.pos < len(p.src) && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}

	return p.src[start:p.pos]
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
