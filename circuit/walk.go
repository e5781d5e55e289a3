// Package: eiscircuit/circuit
//
// walk.go - depth-first traversal with pre-/post-order hooks.

package circuit

import (
	"context"
	"errors"
)

// SkipChildren may be returned by an OnVisit hook to skip the children of the
// visited node. It is never returned by Walk.
var SkipChildren = errors.New("circuit: skip children")

// WalkOption configures Walk.
type WalkOption func(*WalkOptions)

// WalkOptions holds the hooks and limits of a traversal.
type WalkOptions struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, runs when a node is entered (pre-order).
	// Returning SkipChildren prunes its subtree; any other error aborts.
	OnVisit func(n Node, depth int) error

	// OnExit, if non-nil, runs after all children of a node (post-order).
	OnExit func(n Node, depth int) error

	// MaxDepth, if non-negative, stops descent below that depth. The start
	// node is depth 0. Default is -1 (no limit).
	MaxDepth int
}

// DefaultWalkOptions returns a background context, no hooks and no depth limit.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{Ctx: context.Background(), MaxDepth: -1}
}

// WithContext sets the traversal context. A nil context is ignored.
func WithContext(ctx context.Context) WalkOption {
	return func(o *WalkOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(n Node, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(n Node, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnExit = fn }
}

// WithMaxDepth limits the traversal depth.
func WithMaxDepth(limit int) WalkOption {
	return func(o *WalkOptions) { o.MaxDepth = limit }
}

// Walk visits n and its descendants depth-first. A container's sub-circuit is
// its only child.
//
// Errors: the first hook error other than SkipChildren, or ctx.Err().
// Complexity: O(N).
func Walk(n Node, opts ...WalkOption) error {
	o := DefaultWalkOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if n == nil || isNilNode(n) {
		return ErrNilNode
	}

	return walk(n, 0, &o)
}

// Walk visits the circuit tree starting at its root series connection.
func (c *Circuit) Walk(opts ...WalkOption) error {
	return Walk(c.root, opts...)
}

func walk(n Node, depth int, o *WalkOptions) error {
	if err := o.Ctx.Err(); err != nil {
		return err
	}
	descend := o.MaxDepth < 0 || depth < o.MaxDepth
	if o.OnVisit != nil {
		switch err := o.OnVisit(n, depth); {
		case errors.Is(err, SkipChildren):
			descend = false
		case err != nil:
			return err
		}
	}
	if descend {
		for _, ch := range n.Children() {
			if err := walk(ch, depth+1, o); err != nil {
				return err
			}
		}
	}
	if o.OnExit != nil {
		return o.OnExit(n, depth)
	}

	return nil
}
