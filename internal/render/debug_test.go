package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vimdoc2html/internal/cst/csttest"
	"vimdoc2html/internal/render"
)

func renderDebug(n *csttest.Node) string {
	root := csttest.Tree(n)
	return render.Debug(n.Source(), root.Walk())
}

func TestDebugFormat(t *testing.T) {
	tree := csttest.N("line", csttest.Leaf("word", "hi"))
	want := strings.Join([]string{
		`Kind: "line" [Row:0, Col:0] - [Row:0, Col:2] = "hi"`,
		`    Kind: "word" [Row:0, Col:0] - [Row:0, Col:2] = "hi"`,
	}, "\n")
	assert.Equal(t, want, renderDebug(tree))
}

func TestDebugTruncatesLongText(t *testing.T) {
	tree := csttest.N("line", csttest.Leaf("word", "hello world!"))
	want := strings.Join([]string{
		`Kind: "line" [Row:0, Col:0] - [Row:0, Col:12] = "hello worl" [trimmed]`,
		`    Kind: "word" [Row:0, Col:0] - [Row:0, Col:12] = "hello worl" [trimmed]`,
	}, "\n")
	assert.Equal(t, want, renderDebug(tree))
}

func TestDebugSkipsAnonymous(t *testing.T) {
	tree := csttest.N("tag",
		csttest.Anon("*"),
		csttest.Leaf("word", "name"),
		csttest.Anon("*"),
	)
	got := renderDebug(tree)
	assert.Contains(t, got, `Kind: "tag"`)
	assert.Contains(t, got, `Kind: "word"`)
	assert.NotContains(t, got, `Kind: "*"`)
}

func TestDebugRowsAdvanceOverNewlines(t *testing.T) {
	tree := csttest.N("block",
		csttest.N("line", csttest.Leaf("word", "a"), csttest.Anon("\n")),
		csttest.N("line", csttest.Leaf("word", "b")),
	)
	got := renderDebug(tree)
	assert.Contains(t, got, `Kind: "word" [Row:1, Col:0] - [Row:1, Col:1] = "b"`)
}
