package ast

import (
	"unicode/utf8"

	"vimdoc2html/internal/cst"
)

// Expected-kind sets per grammar position, reused in TypeError reports.
var (
	blockChildKinds  = []string{"line", "line_li"}
	lineLiChildKinds = []string{"codeblock", "line"}
	lineChildKinds   = []string{
		"argument", "codeblock", "codespan", "column_heading",
		"h1", "h2", "h3", "keycode", "optionlink", "tag", "taglink",
		"url", "word",
	}
	hChildKinds = []string{
		"argument", "codespan", "keycode", "optionlink", "tag",
		"taglink", "url", "word",
	}
)

// Builder transforms a CST subtree into the typed tree. One Builder handles
// one source buffer; malformed sequence children are reported to the
// diagnostics sink and skipped, while structural violations (missing or
// duplicated single-child fields, kind mismatches) fail the enclosing call.
type Builder struct {
	src   string
	diags DiagnosticSink
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDiagnostics replaces the default stderr diagnostics sink.
func WithDiagnostics(sink DiagnosticSink) BuilderOption {
	return func(b *Builder) { b.diags = sink }
}

// NewBuilder returns a Builder over src.
func NewBuilder(src string, opts ...BuilderOption) *Builder {
	b := &Builder{src: src, diags: StderrSink}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs a HelpFile from the cursor's current node.
func Build(src string, c cst.Cursor, opts ...BuilderOption) (HelpFile, error) {
	return NewBuilder(src, opts...).HelpFile(c)
}

// HelpFile builds the document root. The cursor must be positioned on a
// help_file node.
func (b *Builder) HelpFile(c cst.Cursor) (HelpFile, error) {
	if err := expectKind(c.Node(), "help_file"); err != nil {
		return HelpFile{}, err
	}
	children, err := many(b, c, b.block)
	if err != nil {
		return HelpFile{}, err
	}
	return HelpFile{Children: children}, nil
}

func (b *Builder) block(c cst.Cursor) (Block, error) {
	if err := expectKind(c.Node(), "block"); err != nil {
		return Block{}, err
	}
	children, err := many(b, c, b.blockChild)
	if err != nil {
		return Block{}, err
	}
	return Block{Children: children}, nil
}

func (b *Builder) blockChild(c cst.Cursor) (BlockChild, error) {
	switch n := c.Node(); n.Kind() {
	case "line":
		line, err := b.line(c)
		if err != nil {
			return nil, err
		}
		return line, nil
	case "line_li":
		li, err := b.lineLi(c)
		if err != nil {
			return nil, err
		}
		return li, nil
	default:
		return nil, typeError(n, blockChildKinds)
	}
}

func (b *Builder) line(c cst.Cursor) (Line, error) {
	if err := expectKind(c.Node(), "line"); err != nil {
		return Line{}, err
	}
	children, err := many(b, c, b.lineChild)
	if err != nil {
		return Line{}, err
	}
	return Line{Children: children}, nil
}

func (b *Builder) lineChild(c cst.Cursor) (LineChild, error) {
	var (
		child LineChild
		err   error
	)
	switch n := c.Node(); n.Kind() {
	case "argument":
		child, err = b.argument(c)
	case "codeblock":
		child, err = b.codeblock(c)
	case "codespan":
		child, err = b.codespan(c)
	case "column_heading":
		child, err = b.columnHeading(c)
	case "h1":
		child, err = b.h1(c)
	case "h2":
		child, err = b.h2(c)
	case "h3":
		child, err = b.h3(c)
	case "keycode":
		child, err = b.keycode(c)
	case "optionlink":
		child, err = b.optionlink(c)
	case "tag":
		child, err = b.tag(c)
	case "taglink":
		child, err = b.taglink(c)
	case "url":
		child, err = b.url(c)
	case "word":
		child, err = b.word(c)
	default:
		return nil, typeError(n, lineChildKinds)
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (b *Builder) lineLi(c cst.Cursor) (LineLi, error) {
	if err := expectKind(c.Node(), "line_li"); err != nil {
		return LineLi{}, err
	}
	children, err := many(b, c, b.lineLiChild)
	if err != nil {
		return LineLi{}, err
	}
	return LineLi{Children: children}, nil
}

func (b *Builder) lineLiChild(c cst.Cursor) (LineLiChild, error) {
	var (
		child LineLiChild
		err   error
	)
	switch n := c.Node(); n.Kind() {
	case "codeblock":
		child, err = b.codeblock(c)
	case "line":
		child, err = b.line(c)
	default:
		return nil, typeError(n, lineLiChildKinds)
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (b *Builder) argument(c cst.Cursor) (Argument, error) {
	w, err := b.wordField(c, "argument", "text")
	if err != nil {
		return Argument{}, err
	}
	return Argument{Text: w}, nil
}

// codeblock has an optional leading language child followed by lines.
func (b *Builder) codeblock(c cst.Cursor) (Codeblock, error) {
	if err := expectKind(c.Node(), "codeblock"); err != nil {
		return Codeblock{}, err
	}

	var cb Codeblock
	if !c.GotoFirstChild() {
		return cb, nil
	}
	first := true
	for {
		n := c.Node()
		if inv, ok := invalidNodeOf(n); ok {
			b.diags.Report(inv)
		} else if n.IsNamed() {
			if first && n.Kind() == "language" {
				lang, err := b.language(c)
				if err != nil {
					return Codeblock{}, err
				}
				cb.Language = &lang
			} else {
				line, err := b.line(c)
				if err != nil {
					return Codeblock{}, err
				}
				cb.Children = append(cb.Children, line)
			}
			first = false
		}
		if !c.GotoNextSibling() {
			break
		}
	}
	c.GotoParent()
	return cb, nil
}

func (b *Builder) codespan(c cst.Cursor) (Codespan, error) {
	w, err := b.wordField(c, "codespan", "text")
	if err != nil {
		return Codespan{}, err
	}
	return Codespan{Text: w}, nil
}

func (b *Builder) columnHeading(c cst.Cursor) (ColumnHeading, error) {
	if err := expectKind(c.Node(), "column_heading"); err != nil {
		return ColumnHeading{}, err
	}
	name, err := many(b, c, b.hChild)
	if err != nil {
		return ColumnHeading{}, err
	}
	return ColumnHeading{Name: name}, nil
}

func (b *Builder) h1(c cst.Cursor) (H1, error) {
	if err := expectKind(c.Node(), "h1"); err != nil {
		return H1{}, err
	}
	children, err := many(b, c, b.hChild)
	if err != nil {
		return H1{}, err
	}
	return H1{Children: children}, nil
}

func (b *Builder) h2(c cst.Cursor) (H2, error) {
	if err := expectKind(c.Node(), "h2"); err != nil {
		return H2{}, err
	}
	children, err := many(b, c, b.hChild)
	if err != nil {
		return H2{}, err
	}
	return H2{Children: children}, nil
}

// h3 requires a leading uppercase_name child; the remaining children form
// the heading body.
func (b *Builder) h3(c cst.Cursor) (H3, error) {
	node := c.Node()
	if err := expectKind(node, "h3"); err != nil {
		return H3{}, err
	}

	var h H3
	named := false
	if c.GotoFirstChild() {
		for {
			n := c.Node()
			if inv, ok := invalidNodeOf(n); ok {
				b.diags.Report(inv)
			} else if n.IsNamed() {
				if !named {
					name, err := b.uppercaseName(c)
					if err != nil {
						return H3{}, err
					}
					h.Name = name
					named = true
				} else {
					child, err := b.hChild(c)
					if err != nil {
						return H3{}, err
					}
					h.Children = append(h.Children, child)
				}
			}
			if !c.GotoNextSibling() {
				break
			}
		}
		c.GotoParent()
	}

	if !named {
		return H3{}, &MissingFieldError{
			Start:    node.StartPosition(),
			Name:     "name",
			NodeKind: node.Kind(),
		}
	}
	return h, nil
}

func (b *Builder) hChild(c cst.Cursor) (HChild, error) {
	var (
		child HChild
		err   error
	)
	switch n := c.Node(); n.Kind() {
	case "argument":
		child, err = b.argument(c)
	case "codespan":
		child, err = b.codespan(c)
	case "keycode":
		child, err = b.keycode(c)
	case "optionlink":
		child, err = b.optionlink(c)
	case "tag":
		child, err = b.tag(c)
	case "taglink":
		child, err = b.taglink(c)
	case "url":
		child, err = b.url(c)
	case "word":
		child, err = b.word(c)
	default:
		return nil, typeError(n, hChildKinds)
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (b *Builder) optionlink(c cst.Cursor) (Optionlink, error) {
	w, err := b.wordField(c, "optionlink", "text")
	if err != nil {
		return Optionlink{}, err
	}
	return Optionlink{Text: w}, nil
}

func (b *Builder) tag(c cst.Cursor) (Tag, error) {
	w, err := b.wordField(c, "tag", "text")
	if err != nil {
		return Tag{}, err
	}
	return Tag{Text: w}, nil
}

func (b *Builder) taglink(c cst.Cursor) (Taglink, error) {
	w, err := b.wordField(c, "taglink", "text")
	if err != nil {
		return Taglink{}, err
	}
	return Taglink{Text: w}, nil
}

func (b *Builder) url(c cst.Cursor) (Url, error) {
	w, err := b.wordField(c, "url", "text")
	if err != nil {
		return Url{}, err
	}
	return Url{Text: w}, nil
}

func (b *Builder) keycode(c cst.Cursor) (Keycode, error) {
	t, err := b.span(c, "keycode")
	if err != nil {
		return Keycode{}, err
	}
	return Keycode{Text: t}, nil
}

func (b *Builder) language(c cst.Cursor) (Language, error) {
	t, err := b.span(c, "language")
	if err != nil {
		return Language{}, err
	}
	return Language{Text: t}, nil
}

func (b *Builder) uppercaseName(c cst.Cursor) (UppercaseName, error) {
	t, err := b.span(c, "uppercase_name")
	if err != nil {
		return UppercaseName{}, err
	}
	return UppercaseName{Text: t}, nil
}

func (b *Builder) word(c cst.Cursor) (Word, error) {
	t, err := b.span(c, "word")
	if err != nil {
		return Word{}, err
	}
	return Word{Text: t}, nil
}

// many iterates the named children of the current node left-to-right,
// building each with build. Error and missing children are reported to the
// diagnostics sink and omitted; any build failure aborts the sequence.
func many[T any](b *Builder, c cst.Cursor, build func(cst.Cursor) (T, error)) ([]T, error) {
	var children []T
	if !c.GotoFirstChild() {
		return children, nil
	}
	for {
		n := c.Node()
		if inv, ok := invalidNodeOf(n); ok {
			b.diags.Report(inv)
		} else if n.IsNamed() {
			child, err := build(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if !c.GotoNextSibling() {
			break
		}
	}
	c.GotoParent()
	return children, nil
}

// wordField enforces the single-word-child shape shared by argument,
// codespan, optionlink, tag, taglink, and url nodes.
func (b *Builder) wordField(c cst.Cursor, kind, field string) (Word, error) {
	node := c.Node()
	if err := expectKind(node, kind); err != nil {
		return Word{}, err
	}

	var w Word
	cnt := 0
	if c.GotoFirstChild() {
		for {
			n := c.Node()
			if inv, ok := invalidNodeOf(n); ok {
				b.diags.Report(inv)
			} else if n.IsNamed() {
				cnt++
				if cnt == 1 {
					word, err := b.word(c)
					if err != nil {
						return Word{}, err
					}
					w = word
				}
			}
			if !c.GotoNextSibling() {
				break
			}
		}
		c.GotoParent()

		if cnt > 1 {
			return Word{}, &TooManyChildrenError{
				Start:    node.StartPosition(),
				Expected: 1,
				Actual:   cnt,
				NodeKind: node.Kind(),
			}
		}
	}

	if cnt == 0 {
		return Word{}, &MissingFieldError{
			Start:    node.StartPosition(),
			Name:     field,
			NodeKind: node.Kind(),
		}
	}
	return w, nil
}

// span extracts the raw source text of a terminal node, validating that the
// span is well-formed UTF-8.
func (b *Builder) span(c cst.Cursor, kind string) (string, error) {
	n := c.Node()
	if err := expectKind(n, kind); err != nil {
		return "", err
	}
	t := n.Text(b.src)
	if !utf8.ValidString(t) {
		return "", &EncodingError{Start: n.StartPosition(), NodeKind: kind}
	}
	return t, nil
}

func expectKind(n cst.Node, kind string) error {
	if n.Kind() != kind {
		return typeError(n, []string{kind})
	}
	return nil
}

func typeError(n cst.Node, expected []string) error {
	return &TypeError{
		Start:    n.StartPosition(),
		Expected: expected,
		Actual:   n.Kind(),
	}
}
