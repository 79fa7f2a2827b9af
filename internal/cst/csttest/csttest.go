// Package csttest provides a hand-buildable in-memory implementation of the
// cst contract. The real grammar is an external collaborator, so builder and
// renderer tests construct exactly the tree shapes they need from these
// nodes instead of depending on a compiled grammar.
package csttest

import (
	"strings"

	"vimdoc2html/internal/cst"
)

// Node is a mutable tree node under construction. Call Link (or Tree) once
// the shape is final; afterwards the node satisfies cst.Node and must not
// be modified.
type Node struct {
	kind    string
	named   bool
	err     bool
	missing bool
	text    string // leaf text; computed for interior nodes by Link
	start   cst.Position
	end     cst.Position
	startAt *cst.Position // explicit override, see At

	children []*Node
	parent   *Node
	index    int
	root     *Node

	hasError bool
}

// N returns a named interior node of the given kind.
func N(kind string, children ...*Node) *Node {
	return &Node{kind: kind, named: true, children: children}
}

// Leaf returns a named terminal node carrying raw source text.
func Leaf(kind, text string) *Node {
	return &Node{kind: kind, named: true, text: text}
}

// Anon returns an anonymous token node (punctuation, whitespace markers).
func Anon(text string) *Node {
	return &Node{kind: text, text: text}
}

// AnonN returns an anonymous interior node of the given kind.
func AnonN(kind string, children ...*Node) *Node {
	return &Node{kind: kind, children: children}
}

// Error returns an ERROR node covering the given raw text.
func Error(text string, children ...*Node) *Node {
	return &Node{kind: "ERROR", named: true, err: true, text: text, children: children}
}

// Missing returns a missing-token node of the given kind.
func Missing(kind string) *Node {
	return &Node{kind: kind, named: true, missing: true}
}

// At pins the node's start position, overriding the running layout. Used by
// tests that care about columns (list indentation) without modelling every
// whitespace token.
func (n *Node) At(row, col uint32) *Node {
	n.startAt = &cst.Position{Row: row, Column: col}
	return n
}

// Tree links the tree rooted at n and returns it as a cst.Node.
func Tree(n *Node) cst.Node {
	n.Link()
	return n
}

// Link computes parent pointers, positions, interior text, and subtree
// error flags. Positions advance over leaf text, incrementing the row at
// every newline, the way a real parse of the concatenated source would.
func (n *Node) Link() {
	n.link(n, nil, 0, cst.Position{})
}

func (n *Node) link(root, parent *Node, index int, pos cst.Position) cst.Position {
	n.root = root
	n.parent = parent
	n.index = index
	if n.startAt != nil {
		pos = *n.startAt
	}
	n.start = pos
	n.hasError = n.err || n.missing

	if len(n.children) == 0 {
		for _, r := range n.text {
			if r == '\n' {
				pos.Row++
				pos.Column = 0
			} else {
				pos.Column++
			}
		}
		n.end = pos
		return pos
	}

	var sb strings.Builder
	for i, c := range n.children {
		pos = c.link(root, n, i, pos)
		sb.WriteString(c.text)
		if c.hasError {
			n.hasError = true
		}
	}
	n.text = sb.String()
	n.end = pos
	return pos
}

func (n *Node) Kind() string                { return n.kind }
func (n *Node) IsNamed() bool               { return n.named }
func (n *Node) IsError() bool               { return n.err }
func (n *Node) IsMissing() bool             { return n.missing }
func (n *Node) HasError() bool              { return n.hasError }
func (n *Node) StartPosition() cst.Position { return n.start }
func (n *Node) EndPosition() cst.Position   { return n.end }

// Text returns the node's stored text; the src argument is ignored because
// synthetic nodes carry their own spans.
func (n *Node) Text(string) string { return n.text }

func (n *Node) Parent() cst.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) NamedChildCount() int {
	cnt := 0
	for _, c := range n.children {
		if c.named {
			cnt++
		}
	}
	return cnt
}

func (n *Node) NamedChild(i int) cst.Node {
	for _, c := range n.children {
		if c.named {
			if i == 0 {
				return c
			}
			i--
		}
	}
	return nil
}

func (n *Node) PrevNamedSibling() cst.Node {
	if n.parent == nil {
		return nil
	}
	for i := n.index - 1; i >= 0; i-- {
		if c := n.parent.children[i]; c.named {
			return c
		}
	}
	return nil
}

func (n *Node) NextNamedSibling() cst.Node {
	if n.parent == nil {
		return nil
	}
	for i := n.index + 1; i < len(n.parent.children); i++ {
		if c := n.parent.children[i]; c.named {
			return c
		}
	}
	return nil
}

func (n *Node) Walk() cst.Cursor { return &cursor{root: n, cur: n} }

// Source returns the concatenated leaf text of the linked tree, i.e. the
// source buffer the tree pretends to have been parsed from.
func (n *Node) Source() string { return n.text }

// cursor walks a linked tree. Sibling and parent moves stop at the node
// the cursor was created on, matching tree-sitter cursor semantics.
type cursor struct {
	root *Node
	cur  *Node
}

func (c *cursor) Node() cst.Node { return c.cur }

func (c *cursor) GotoFirstChild() bool {
	if len(c.cur.children) == 0 {
		return false
	}
	c.cur = c.cur.children[0]
	return true
}

func (c *cursor) GotoNextSibling() bool {
	if c.cur == c.root || c.cur.parent == nil {
		return false
	}
	if c.cur.index+1 >= len(c.cur.parent.children) {
		return false
	}
	c.cur = c.cur.parent.children[c.cur.index+1]
	return true
}

func (c *cursor) GotoParent() bool {
	if c.cur == c.root || c.cur.parent == nil {
		return false
	}
	c.cur = c.cur.parent
	return true
}
