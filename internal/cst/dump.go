package cst

import "strings"

// Dump renders the structural shape of the subtree rooted at n as an
// s-expression, one token per node kind. Missing nodes are flagged so
// diagnostics can tell a syntax error from an absent token. The walk is
// cursor-driven and iterative; document nesting depth is content
// controlled and must not grow the call stack.
func Dump(n Node) string {
	var sb strings.Builder
	c := n.Walk()
	for {
		node := c.Node()
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		if node.IsMissing() {
			sb.WriteString("MISSING ")
		}
		sb.WriteString(node.Kind())

		if c.GotoFirstChild() {
			continue
		}
		sb.WriteByte(')')
		if c.GotoNextSibling() {
			continue
		}
		for {
			if !c.GotoParent() {
				return sb.String()
			}
			sb.WriteByte(')')
			if c.GotoNextSibling() {
				break
			}
		}
	}
}
