// Package cst defines the narrow contract this module requires from the
// external vimdoc grammar: a concrete syntax tree whose nodes expose a kind
// tag, named/error/missing flags, a position range, raw text extraction over
// the source buffer, and cursor-style navigation. Everything downstream
// (typed tree building, rendering) depends only on this contract, so the
// grammar itself stays replaceable.
package cst

// Position is a zero-based row/column location in the source buffer.
type Position struct {
	Row    uint32
	Column uint32
}

// Node is a single CST node. Implementations must treat the tree as
// read-only; Text returns a slice of the source buffer, never a copy.
type Node interface {
	// Kind returns the grammar rule name, or "ERROR" for error nodes.
	Kind() string

	// IsNamed reports whether the node corresponds to a meaningful grammar
	// rule, as opposed to anonymous punctuation.
	IsNamed() bool

	// IsError reports whether the node itself marks a syntax error.
	IsError() bool

	// IsMissing reports whether the node marks an expected-but-absent token.
	IsMissing() bool

	// HasError reports whether the node or any descendant is an error or
	// missing node.
	HasError() bool

	StartPosition() Position
	EndPosition() Position

	// Text returns the span of src covered by this node.
	Text(src string) string

	// Parent returns the parent node, or nil at the root.
	Parent() Node

	NamedChildCount() int
	NamedChild(i int) Node

	// PrevNamedSibling and NextNamedSibling return nil when no such
	// sibling exists.
	PrevNamedSibling() Node
	NextNamedSibling() Node

	// Walk returns a fresh cursor positioned at this node.
	Walk() Cursor
}

// Cursor navigates a CST without allocating per step. The Goto methods
// return false, leaving the cursor unmoved, when there is nowhere to go.
type Cursor interface {
	Node() Node
	GotoFirstChild() bool
	GotoNextSibling() bool
	GotoParent() bool
}

// Depth returns the number of ancestors of n; the root has depth 0.
func Depth(n Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}
