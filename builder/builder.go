// SPDX-License-Identifier: MIT
// Package: eiscircuit/builder
//
// builder.go - the stack-based circuit Builder.
//
// Invariants:
//   - stack[0] is the root series frame and is never popped.
//   - err is sticky: once set, every method returns immediately.
//   - built is set only by a successful Build.

package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/registry"
)

type frameKind int

const (
	frameSeries frameKind = iota
	frameParallel
	frameContainer
)

// frame collects the children of one open connection.
type frame struct {
	kind     frameKind
	children []circuit.Node
	// def and opts are set for container frames only.
	def  *registry.Definition
	opts []circuit.ElementOption
}

func (f *frame) describe() string {
	switch f.kind {
	case frameParallel:
		return "parallel"
	case frameContainer:
		return "container " + f.def.Symbol()
	default:
		return "series"
	}
}

// finish turns the frame into the node attached to its parent.
func (f *frame) finish() (circuit.Node, error) {
	switch f.kind {
	case frameParallel:
		return circuit.NewParallel(f.children...)
	case frameContainer:
		sub, err := circuit.NewSeries(f.children...)
		if err != nil {
			return nil, err
		}
		opts := append(append([]circuit.ElementOption(nil), f.opts...), circuit.WithSubcircuit(sub))
		return circuit.NewElement(f.def, opts...)
	default:
		return circuit.NewSeries(f.children...)
	}
}

// Builder assembles a circuit one token at a time. The zero value is not
// usable; call New.
type Builder struct {
	cfg   builderConfig
	stack []*frame
	err   error
	built bool
}

// New returns a Builder with an open root series frame.
func New(opts ...BuilderOption) *Builder {
	return &Builder{
		cfg:   newBuilderConfig(opts...),
		stack: []*frame{{kind: frameSeries}},
	}
}

// Err returns the first error recorded, or nil.
func (b *Builder) Err() error { return b.err }

// Depth reports the number of frames open above the root.
func (b *Builder) Depth() int { return len(b.stack) - 1 }

func (b *Builder) top() *frame { return b.stack[len(b.stack)-1] }

// ready reports whether a call may proceed, recording ErrAlreadyBuilt when the
// Builder is spent.
func (b *Builder) ready(method string) bool {
	if b.err != nil {
		return false
	}
	if b.built {
		b.err = builderErrorf(method, "%w", ErrAlreadyBuilt)
		return false
	}

	return true
}

func (b *Builder) lookup(method, symbol string) (*registry.Definition, bool) {
	def, err := b.cfg.reg.Lookup(symbol)
	if err != nil {
		b.err = builderErrorf(method, "%w", err)
		return nil, false
	}

	return def, true
}

// AddElement appends an element to the current frame. For a container symbol
// its default template becomes the sub-circuit unless opts supply one.
func (b *Builder) AddElement(symbol string, opts ...circuit.ElementOption) *Builder {
	method := fmt.Sprintf("%s(%s)", MethodAddElement, symbol)
	if !b.ready(method) {
		return b
	}
	def, ok := b.lookup(method, symbol)
	if !ok {
		return b
	}
	if def.IsContainer() {
		sub, err := cdc.DefaultSubcircuit(def, b.cfg.parseOptions()...)
		if err != nil {
			b.err = builderErrorf(method, "default template: %w", err)
			return b
		}
		opts = append([]circuit.ElementOption{circuit.WithSubcircuit(sub)}, opts...)
	}
	el, err := circuit.NewElement(def, opts...)
	if err != nil {
		b.err = builderErrorf(method, "%w", err)
		return b
	}
	b.top().children = append(b.top().children, el)

	return b
}

// OpenSeries pushes a nested series frame, the builder form of "[".
func (b *Builder) OpenSeries() *Builder {
	return b.open(MethodOpenSeries, &frame{kind: frameSeries})
}

// OpenParallel pushes a parallel frame, the builder form of "(".
func (b *Builder) OpenParallel() *Builder {
	return b.open(MethodOpenParallel, &frame{kind: frameParallel})
}

// OpenContainer pushes a frame whose contents become the sub-circuit of a
// container element. opts configure the container's own parameters.
func (b *Builder) OpenContainer(symbol string, opts ...circuit.ElementOption) *Builder {
	method := fmt.Sprintf("%s(%s)", MethodOpenContainer, symbol)
	if !b.ready(method) {
		return b
	}
	def, ok := b.lookup(method, symbol)
	if !ok {
		return b
	}
	if !def.IsContainer() {
		b.err = builderErrorf(method, "%w: %q", ErrNotContainer, symbol)
		return b
	}

	return b.open(method, &frame{kind: frameContainer, def: def, opts: opts})
}

func (b *Builder) open(method string, f *frame) *Builder {
	if !b.ready(method) {
		return b
	}
	if err := validateOpen(method, b.Depth(), b.cfg.maxDepth); err != nil {
		b.err = err
		return b
	}
	b.stack = append(b.stack, f)

	return b
}

// Close pops the current frame and attaches the finished node to its parent.
func (b *Builder) Close() *Builder {
	if !b.ready(MethodClose) {
		return b
	}
	if err := validateClosable(MethodClose, b.Depth()); err != nil {
		b.err = err
		return b
	}
	f := b.top()
	if err := validateNonEmpty(MethodClose, f); err != nil {
		b.err = err
		return b
	}
	node, err := f.finish()
	if err != nil {
		b.err = builderErrorf(MethodClose, "%s frame: %w", f.describe(), err)
		return b
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.top().children = append(b.top().children, node)

	return b
}

// Build finishes the root frame and returns the labelled circuit.
//
// Errors:
//   - the sticky error of an earlier call, if any.
//   - ErrUnbalancedConstruction if frames are still open.
//   - ErrUnbalancedConstruction joined with circuit.ErrEmptyCircuit if nothing was added.
//   - ErrAlreadyBuilt on a second Build.
func (b *Builder) Build() (*circuit.Circuit, error) {
	if !b.ready(MethodBuild) {
		return nil, b.err
	}
	if d := b.Depth(); d > 0 {
		b.err = builderErrorf(MethodBuild, "%w: %d frame(s) still open", ErrUnbalancedConstruction, d)
		return nil, b.err
	}
	root := b.stack[0]
	if len(root.children) == 0 {
		b.err = builderErrorf(MethodBuild, "%w", errors.Join(ErrUnbalancedConstruction, circuit.ErrEmptyCircuit))
		return nil, b.err
	}
	conn, err := circuit.NewSeries(root.children...)
	if err != nil {
		b.err = builderErrorf(MethodBuild, "%w", err)
		return nil, b.err
	}
	c, err := circuit.New(conn)
	if err != nil {
		b.err = builderErrorf(MethodBuild, "%w", err)
		return nil, b.err
	}
	b.built = true

	return c, nil
}
