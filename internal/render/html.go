// Package render provides the two rendering strategies plugged into the
// traversal engine: an HTML converter and a structural debug dump. A
// converter instance owns mutable cross-node state for the duration of one
// walk and must not be shared across concurrent walks.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"vimdoc2html/internal/cst"
	"vimdoc2html/internal/text"
	"vimdoc2html/internal/visit"
)

// HTMLOptions configures an HTML conversion.
type HTMLOptions struct {
	// Old selects the legacy rendering mode used for unconverted
	// pre-0.10 style help pages; it changes the Block, Line, and
	// Codespan rules.
	Old bool

	// Joiner combines rendered child outputs; defaults to SpaceJoiner.
	Joiner visit.Joiner[string]
}

// HTMLConverter renders a vimdoc tree to an HTML fragment. State crosses
// node visits: the language of a code fence is captured from the language
// node and consumed by the following code node, and list items track a
// per-walk indentation level.
type HTMLConverter struct {
	opts HTMLOptions

	language    string
	hasLanguage bool
	indent      int
}

// NewHTML returns a converter for a single walk.
func NewHTML(opts HTMLOptions) *HTMLConverter {
	if opts.Joiner == nil {
		opts.Joiner = visit.SpaceJoiner
	}
	return &HTMLConverter{opts: opts}
}

// HTML renders the tree under the cursor as an HTML fragment.
func HTML(src string, c cst.Cursor, opts HTMLOptions) string {
	conv := NewHTML(opts)
	return visit.FoldNamed[string](conv, visit.NewContext(src, c), conv.opts.Joiner)
}

// Fold renders one node from its already-rendered children.
func (h *HTMLConverter) Fold(ctx *visit.Context, children []string) string {
	hasError := ctx.HasError()

	var body string
	if !ctx.HasNamedChildren() || hasError {
		body = ctx.CleanText()
	} else {
		body = h.opts.Joiner.Join(children)
	}
	trimmed := strings.TrimLeftFunc(body, unicode.IsSpace)

	nt, ok := ctx.NodeType()
	if !ok {
		// Anonymous, ERROR, or MISSING node.
		if hasError {
			if text.IgnoreParseError(trimmed) || text.IgnoreInvalid(trimmed) {
				return body
			}
			return "{ERROR: " + text.Truncate(body, 10) + "}"
		}
		return ""
	}

	switch {
	case (nt == visit.Block || nt == visit.Code) && text.IsBlank(body):
		return ""
	case hasError && (nt == visit.ColumnHeading || nt == visit.Codespan ||
		nt == visit.Keycode || nt == visit.Tag):
		return body
	case (nt == visit.H1 || nt == visit.H2 || nt == visit.H3) && text.IsNoise(body):
		return ""
	}

	switch nt {
	case visit.Argument:
		return "<code>" + body + "</code>"

	case visit.Block:
		if h.opts.Old {
			return `<div class="old-help-para">` +
				strings.TrimRightFunc(body, unicode.IsSpace) + "</div>\n"
		}
		return "<div class=\"help-para\">\n" + body + "\n</div>\n"

	case visit.Code:
		code := strings.TrimRightFunc(text.TrimIndent(body, 8), unicode.IsSpace)
		if h.hasLanguage {
			h.hasLanguage = false
			return `<pre><code class="language-` + h.language + `">` + code + "</code></pre>"
		}
		return "<pre>" + code + "</pre>"

	case visit.Codeblock:
		return body

	case visit.Codespan, visit.Keycode:
		return "<code>" + trimmed + "</code>"

	case visit.ColumnHeading:
		return `<div class="help-column_heading">` + body + "</div>"

	case visit.H1, visit.H2, visit.H3:
		return h.heading(ctx, nt, body, trimmed)

	case visit.HelpFile:
		return body

	case visit.Language:
		h.language = ctx.RawText()
		h.hasLanguage = true
		return ""

	case visit.Line:
		return h.line(ctx, body, trimmed)

	case visit.LineLi:
		return h.lineLi(ctx, body)

	case visit.Optionlink, visit.Taglink:
		return `<a href="#` + trimmed + `"><code>` + trimmed + "</code></a>"

	case visit.Tag:
		return h.tag(ctx, trimmed)

	case visit.Url:
		href, rest := text.FixURL(trimmed)
		return `<a href="` + href + `">` + href + "</a>" + rest

	case visit.UppercaseName, visit.Word:
		return body
	}
	return body
}

// heading renders h1/h2/h3 as an anchor followed by the heading element.
// The anchor is named after the heading's first tag descendant when one
// exists, else after the heading text itself. h1 maps to <h2>, h2 and h3
// map to <h3>.
func (h *HTMLConverter) heading(ctx *visit.Context, nt visit.NodeType, body, trimmed string) string {
	name := firstTagText(ctx.Node(), ctx.Src())
	if name == "" {
		name = trimmed
	}
	elem := "h3"
	if nt == visit.H1 {
		elem = "h2"
	}
	return `<a name="` + name + `"></a><` + elem + ` class="help-heading">` +
		body + "</" + elem + ">"
}

// line suppresses blank and noise lines outside code context; in old mode
// a line led by a heading renders trimmed, without the usual line break.
func (h *HTMLConverter) line(ctx *visit.Context, body, trimmed string) string {
	inCode := false
	if p := ctx.Node().Parent(); p != nil {
		inCode = p.Kind() == "code" || p.Kind() == "codeblock"
	}
	if !inCode && (text.IsBlank(body) || text.IsNoise(body)) {
		return ""
	}
	if h.opts.Old {
		if first := firstNamedChild(ctx.Node()); first != nil {
			switch first.Kind() {
			case "column_heading", "h1", "h2", "h3":
				return trimmed
			}
		}
	}
	return body + "\n"
}

// lineLi tracks the list indentation level across sibling visits: the first
// line_li resets the level, a deeper-indented one increments it, a
// shallower one decrements it, never below 1.
func (h *HTMLConverter) lineLi(ctx *visit.Context, body string) string {
	node := ctx.Node()
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Kind() != "line_li" {
		h.indent = 1
	} else {
		prevCol := prev.StartPosition().Column
		col := node.StartPosition().Column
		switch {
		case prevCol < col:
			h.indent++
		case prevCol > col && h.indent > 1:
			h.indent--
		}
	}

	style := ""
	if h.indent > 1 {
		style = fmt.Sprintf("margin-left: %.1frem;", 1.5*float64(h.indent))
	}
	return `<div class="help-li" style="` + style + `">` + body + "</div>"
}

// tag renders a help tag. Inside a heading the heading owns the anchor, so
// only the code-styled text is emitted; elsewhere the tag defines its own
// anchor target.
func (h *HTMLConverter) tag(ctx *visit.Context, trimmed string) string {
	if p := ctx.Node().Parent(); p != nil {
		switch p.Kind() {
		case "h1", "h2", "h3", "column_heading":
			return "<code>" + trimmed + "</code>"
		}
	}
	return `<a name="` + trimmed + `"></a><code>` + trimmed + "</code>"
}

// firstTagText returns the escaped text of the first tag node in the
// subtree under n, in document order, or "".
func firstTagText(n cst.Node, src string) string {
	stack := []cst.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Kind() == "tag" {
			// The tag's word child is the bare name, without the star
			// delimiters that the tag span itself carries.
			if cur.NamedChildCount() > 0 {
				cur = cur.NamedChild(0)
			}
			return visit.EscapeHTML(strings.TrimSpace(cur.Text(src)))
		}
		for i := cur.NamedChildCount() - 1; i >= 0; i-- {
			stack = append(stack, cur.NamedChild(i))
		}
	}
	return ""
}

func firstNamedChild(n cst.Node) cst.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}
