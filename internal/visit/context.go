package visit

import (
	"strings"

	"vimdoc2html/internal/cst"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the characters that matter inside HTML text nodes.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }

// Context carries the state a visitor needs at each node: the source
// buffer, the cursor, and derived queries over the current node.
type Context struct {
	src    string
	cursor cst.Cursor
}

// NewContext returns a Context walking from the cursor's current node.
func NewContext(src string, cursor cst.Cursor) *Context {
	return &Context{src: src, cursor: cursor}
}

// Src returns the source buffer backing the tree.
func (c *Context) Src() string { return c.src }

// Node returns the node being visited.
func (c *Context) Node() cst.Node { return c.cursor.Node() }

// NodeType returns the vimdoc node type of the current node; ok is false
// for anonymous, error, and unknown kinds.
func (c *Context) NodeType() (NodeType, bool) {
	return ParseNodeType(c.Node().Kind())
}

// RawText returns the source span of the current node.
func (c *Context) RawText() string { return c.Node().Text(c.src) }

// CleanText returns the HTML-escaped source span of the current node.
func (c *Context) CleanText() string { return EscapeHTML(c.RawText()) }

// HasError reports whether the current node or any descendant is an error
// or missing node.
func (c *Context) HasError() bool { return c.Node().HasError() }

// HasNamedChildren reports whether the current node has named children.
func (c *Context) HasNamedChildren() bool { return c.Node().NamedChildCount() > 0 }
