package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vimdoc2html/internal/cst"
	"vimdoc2html/internal/cst/csttest"
)

func TestDump(t *testing.T) {
	tree := csttest.Tree(csttest.N("help_file",
		csttest.N("block",
			csttest.N("line",
				csttest.Leaf("word", "a"),
				csttest.Leaf("word", "b"),
			),
		),
		csttest.N("block"),
	))

	assert.Equal(t,
		"(help_file (block (line (word) (word))) (block))",
		cst.Dump(tree))
}

func TestDumpMarksMissing(t *testing.T) {
	tree := csttest.Tree(csttest.N("line",
		csttest.Leaf("word", "x"),
		csttest.Missing("word"),
	))

	assert.Equal(t, "(line (word) (MISSING word))", cst.Dump(tree))
}

func TestDepth(t *testing.T) {
	leaf := csttest.Leaf("word", "x")
	line := csttest.N("line", leaf)
	root := csttest.Tree(csttest.N("block", line))

	assert.Equal(t, 0, cst.Depth(root))
	assert.Equal(t, 1, cst.Depth(root.NamedChild(0)))
	assert.Equal(t, 2, cst.Depth(root.NamedChild(0).NamedChild(0)))
}
