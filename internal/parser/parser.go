// Package parser couples a source buffer with its parsed tree and exposes
// the downstream conversions: typed AST construction, HTML rendering, and
// the structural debug dump.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"vimdoc2html/internal/ast"
	"vimdoc2html/internal/cst"
	"vimdoc2html/internal/render"
)

// ErrParseFailed is returned when the grammar produces no tree at all,
// e.g. after cancellation.
var ErrParseFailed = errors.New("failed to parse vimdoc")

// Parser holds one parsed document. It is not safe for concurrent use;
// convert independent documents with independent Parser instances.
type Parser struct {
	src  string
	tree *sitter.Tree
}

// Load reads all of src and parses it with the given grammar.
func Load(ctx context.Context, src io.Reader, lang *sitter.Language) (*Parser, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return LoadBytes(ctx, buf, lang)
}

// LoadBytes parses an in-memory document with the given grammar.
func LoadBytes(ctx context.Context, buf []byte, lang *sitter.Language) (*Parser, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(lang)

	tree, err := p.ParseCtx(ctx, nil, buf)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if tree == nil {
		return nil, ErrParseFailed
	}
	return &Parser{src: string(buf), tree: tree}, nil
}

// Src returns the source being parsed.
func (p *Parser) Src() string { return p.src }

// Close releases the underlying tree.
func (p *Parser) Close() {
	if p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}
}

// Walk returns a fresh cursor over the parsed tree.
func (p *Parser) Walk() cst.Cursor {
	return cst.NewSitterCursor(p.tree.RootNode())
}

// Parse builds the strict typed tree for the loaded document.
func (p *Parser) Parse(opts ...ast.BuilderOption) (ast.HelpFile, error) {
	return ast.Build(p.src, p.Walk(), opts...)
}

// HTMLString renders the document as an HTML fragment. Rendering never
// fails: malformed subtrees become visible error markers or plain text.
func (p *Parser) HTMLString(opts render.HTMLOptions) string {
	return render.HTML(p.src, p.Walk(), opts)
}

// DebugString renders the document as a structural line-per-node dump.
func (p *Parser) DebugString() string {
	return render.Debug(p.src, p.Walk())
}

// TreeDump pretty-prints the raw tree, one node per line with field names,
// for grammar debugging. Anonymous nodes are included when showAnonymous
// is set.
func (p *Parser) TreeDump(showAnonymous bool) string {
	var sb strings.Builder
	c := sitter.NewTreeCursor(p.tree.RootNode())
	defer c.Close()

	indent := 0
	for {
		n := c.CurrentNode()
		if n.IsNamed() || showAnonymous {
			field := ""
			if name := c.CurrentFieldName(); name != "" {
				field = name + ": "
			}
			fmt.Fprintf(&sb, "%sName: %q, Kind: %q [Row:%d, Col:%d] - [Row:%d, Col:%d]\n",
				strings.Repeat("  ", indent), field, n.Type(),
				n.StartPoint().Row, n.StartPoint().Column,
				n.EndPoint().Row, n.EndPoint().Column)
		}

		if c.GoToFirstChild() {
			indent++
			continue
		}
		if c.GoToNextSibling() {
			continue
		}
		for {
			if !c.GoToParent() {
				return sb.String()
			}
			indent--
			if c.GoToNextSibling() {
				break
			}
		}
	}
}
