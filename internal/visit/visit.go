// Package visit is a generic tree-traversal engine over the cst contract.
// It folds each node's rendering together with its already-rendered
// children into one output value, accumulated up to the root. All walks are
// iterative: nesting depth is content controlled, so the engine keeps an
// explicit depth-indexed stack of partial outputs instead of recursing.
package visit

import (
	"strings"
)

// Joiner combines a sequence of outputs into one.
type Joiner[T any] interface {
	Join(outputs []T) T
}

// StringJoiner joins strings with a fixed separator.
type StringJoiner struct {
	Sep string
}

func (j StringJoiner) Join(outputs []string) string {
	return strings.Join(outputs, j.Sep)
}

var (
	// NewlineJoiner joins string outputs with "\n".
	NewlineJoiner = StringJoiner{Sep: "\n"}

	// SpaceJoiner joins string outputs with " ".
	SpaceJoiner = StringJoiner{Sep: " "}
)

// Visitor produces one output per visited node.
type Visitor[T any] interface {
	Visit(ctx *Context) T
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc[T any] func(ctx *Context) T

func (f VisitorFunc[T]) Visit(ctx *Context) T { return f(ctx) }

// FoldVisitor produces one output per visited node, given the joined-ready
// outputs of the node's already-visited children. Renderers that apply a
// parent rule to rendered child text use this form.
type FoldVisitor[T any] interface {
	Fold(ctx *Context, children []T) T
}

// AllNamed visits every named node of the tree under the context's cursor
// in pre-order, joining each depth level's outputs into its parent level.
func AllNamed[T any](v Visitor[T], ctx *Context, j Joiner[T]) T {
	return All(v, ctx, j, false)
}

// All is AllNamed extended to anonymous nodes when unnamed is true.
func All[T any](v Visitor[T], ctx *Context, j Joiner[T], unnamed bool) T {
	// outputs[d] accumulates the results produced at tree depth d.
	outputs := [][]T{nil}

	for {
		if ctx.Node().IsNamed() || unnamed {
			outputs[len(outputs)-1] = append(outputs[len(outputs)-1], v.Visit(ctx))
		}

		if ctx.cursor.GotoFirstChild() {
			outputs = append(outputs, nil)
			continue
		}
		if ctx.cursor.GotoNextSibling() {
			continue
		}

		// Retrace upward until a parent has a next sibling. Each level we
		// leave gets joined and appended to the level above it.
		for {
			if !ctx.cursor.GotoParent() {
				return j.Join(outputs[0])
			}

			joined := j.Join(outputs[len(outputs)-1])
			outputs = outputs[:len(outputs)-1]
			if len(outputs) == 0 {
				return joined
			}
			outputs[len(outputs)-1] = append(outputs[len(outputs)-1], joined)

			if ctx.cursor.GotoNextSibling() {
				break
			}
		}
	}
}

// ChildrenNamed visits the named immediate children of the current node,
// one level only; the node itself is not visited. The cursor is restored
// before returning.
func ChildrenNamed[T any](v Visitor[T], ctx *Context, j Joiner[T]) T {
	return Children(v, ctx, j, false)
}

// Children is ChildrenNamed extended to anonymous nodes when unnamed is
// true.
func Children[T any](v Visitor[T], ctx *Context, j Joiner[T], unnamed bool) T {
	var outputs []T
	if !ctx.cursor.GotoFirstChild() {
		return j.Join(outputs)
	}
	for {
		if ctx.Node().IsNamed() || unnamed {
			outputs = append(outputs, v.Visit(ctx))
		}
		if !ctx.cursor.GotoNextSibling() {
			ctx.cursor.GotoParent()
			return j.Join(outputs)
		}
	}
}

// FoldNamed walks the tree bottom-up: every named node's Fold callback
// receives the outputs of its named children, already computed
// left-to-right, and contributes its own output to its parent.
func FoldNamed[T any](v FoldVisitor[T], ctx *Context, j Joiner[T]) T {
	return FoldAll(v, ctx, j, false)
}

// FoldAll is FoldNamed extended to anonymous nodes when unnamed is true.
// Skipped nodes are transparent: their children's outputs flow through to
// the nearest visited ancestor.
func FoldAll[T any](v FoldVisitor[T], ctx *Context, j Joiner[T], unnamed bool) T {
	type frame struct {
		visited bool // whether the owning node gets a Fold call on exit
		outputs []T
	}
	// stack[0] accumulates the root's own output.
	stack := []frame{{}}

	push := func(out T) {
		top := &stack[len(stack)-1]
		top.outputs = append(top.outputs, out)
	}

	for {
		visited := ctx.Node().IsNamed() || unnamed

		if ctx.cursor.GotoFirstChild() {
			stack = append(stack, frame{visited: visited})
			continue
		}

		// Leaf.
		if visited {
			push(v.Fold(ctx, nil))
		}
		if ctx.cursor.GotoNextSibling() {
			continue
		}

		for {
			if !ctx.cursor.GotoParent() {
				return j.Join(stack[0].outputs)
			}

			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.visited {
				push(v.Fold(ctx, f.outputs))
			} else {
				top := &stack[len(stack)-1]
				top.outputs = append(top.outputs, f.outputs...)
			}

			if ctx.cursor.GotoNextSibling() {
				break
			}
		}
	}
}
