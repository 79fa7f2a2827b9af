package cst

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// sitterNode adapts a tree-sitter node to the Node contract.
type sitterNode struct {
	n *sitter.Node
}

// FromSitter wraps a tree-sitter node. A nil input yields a nil Node.
func FromSitter(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return sitterNode{n: n}
}

// NewSitterCursor returns a Cursor walking the subtree rooted at n.
func NewSitterCursor(n *sitter.Node) Cursor {
	return &sitterCursor{c: sitter.NewTreeCursor(n)}
}

func (s sitterNode) Kind() string    { return s.n.Type() }
func (s sitterNode) IsNamed() bool   { return s.n.IsNamed() }
func (s sitterNode) IsError() bool   { return s.n.Type() == "ERROR" }
func (s sitterNode) IsMissing() bool { return s.n.IsMissing() }
func (s sitterNode) HasError() bool  { return s.n.HasError() }

func (s sitterNode) StartPosition() Position {
	p := s.n.StartPoint()
	return Position{Row: p.Row, Column: p.Column}
}

func (s sitterNode) EndPosition() Position {
	p := s.n.EndPoint()
	return Position{Row: p.Row, Column: p.Column}
}

func (s sitterNode) Text(src string) string {
	return src[s.n.StartByte():s.n.EndByte()]
}

func (s sitterNode) Parent() Node { return FromSitter(s.n.Parent()) }

func (s sitterNode) NamedChildCount() int { return int(s.n.NamedChildCount()) }

func (s sitterNode) NamedChild(i int) Node { return FromSitter(s.n.NamedChild(i)) }

func (s sitterNode) PrevNamedSibling() Node { return FromSitter(s.n.PrevNamedSibling()) }

func (s sitterNode) NextNamedSibling() Node { return FromSitter(s.n.NextNamedSibling()) }

func (s sitterNode) Walk() Cursor { return NewSitterCursor(s.n) }

type sitterCursor struct {
	c *sitter.TreeCursor
}

func (s *sitterCursor) Node() Node           { return FromSitter(s.c.CurrentNode()) }
func (s *sitterCursor) GotoFirstChild() bool { return s.c.GoToFirstChild() }
func (s *sitterCursor) GotoNextSibling() bool {
	return s.c.GoToNextSibling()
}
func (s *sitterCursor) GotoParent() bool { return s.c.GoToParent() }
