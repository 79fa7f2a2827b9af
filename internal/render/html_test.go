package render_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vimdoc2html/internal/cst/csttest"
	"vimdoc2html/internal/render"
)

func renderHTML(n *csttest.Node, opts render.HTMLOptions) string {
	root := csttest.Tree(n)
	return render.HTML(n.Source(), root.Walk(), opts)
}

func word(s string) *csttest.Node { return csttest.Leaf("word", s) }

func TestHTMLBlock(t *testing.T) {
	t.Run("paragraph", func(t *testing.T) {
		tree := csttest.N("block",
			csttest.N("line", word("hello")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t, "<div class=\"help-para\">\nhello\n\n</div>\n", got)
	})

	t.Run("blank suppressed", func(t *testing.T) {
		tree := csttest.N("block",
			csttest.N("line", word("  ")),
		)
		assert.Equal(t, "", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("old mode", func(t *testing.T) {
		tree := csttest.N("block",
			csttest.N("line", word("hello")),
		)
		got := renderHTML(tree, render.HTMLOptions{Old: true})
		assert.Equal(t, `<div class="old-help-para">hello</div>`+"\n", got)
	})
}

func TestHTMLLine(t *testing.T) {
	t.Run("noise suppressed", func(t *testing.T) {
		tree := csttest.N("line",
			word("Type |gO| to see the table of contents."),
		)
		assert.Equal(t, "", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("prose kept", func(t *testing.T) {
		tree := csttest.N("line", word("plain prose"))
		assert.Equal(t, "plain prose\n", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("blank kept inside code", func(t *testing.T) {
		tree := csttest.N("code",
			csttest.N("line", word("x")),
			csttest.N("line", word("")),
			csttest.N("line", word("y")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t, "<pre>x\n \n y</pre>", got)
	})
}

func TestHTMLInline(t *testing.T) {
	tests := []struct {
		name string
		tree *csttest.Node
		want string
	}{
		{
			"argument",
			csttest.N("argument", word("arg")),
			"<code>arg</code>",
		},
		{
			"codespan",
			csttest.N("codespan", word("expr")),
			"<code>expr</code>",
		},
		{
			"keycode escaped",
			csttest.Leaf("keycode", "<CR>"),
			"<code>&lt;CR&gt;</code>",
		},
		{
			"taglink",
			csttest.N("taglink", word("api-intro")),
			`<a href="#api-intro"><code>api-intro</code></a>`,
		},
		{
			"optionlink",
			csttest.N("optionlink", word("textwidth")),
			`<a href="#textwidth"><code>textwidth</code></a>`,
		},
		{
			"word escaped",
			word("a<b&c"),
			"a&lt;b&amp;c",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderHTML(tt.tree, render.HTMLOptions{}))
		})
	}
}

func TestHTMLUrl(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		tree := csttest.N("url", word("https://example.com"))
		assert.Equal(t,
			`<a href="https://example.com">https://example.com</a>`,
			renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("trailing punctuation split off", func(t *testing.T) {
		tree := csttest.N("url", word("https://example.com)."))
		assert.Equal(t,
			`<a href="https://example.com">https://example.com</a>).`,
			renderHTML(tree, render.HTMLOptions{}))
	})
}

func TestHTMLTag(t *testing.T) {
	t.Run("outside heading defines anchor", func(t *testing.T) {
		tree := csttest.N("line",
			csttest.N("tag", csttest.Anon("*"), word("api-intro"), csttest.Anon("*")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t, `<a name="api-intro"></a><code>api-intro</code>`+"\n", got)
	})

	t.Run("inside heading renders code only", func(t *testing.T) {
		tree := csttest.N("h1",
			word("Intro"),
			csttest.N("tag", word("intro-tag")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.NotContains(t, got, `<a name="intro-tag"></a><code>`)
		assert.Contains(t, got, "<code>intro-tag</code>")
	})
}

func TestHTMLHeadings(t *testing.T) {
	t.Run("h1 anchored on first tag", func(t *testing.T) {
		tree := csttest.N("h1",
			word("Intro"),
			csttest.N("tag", word("intro-tag")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t,
			`<a name="intro-tag"></a><h2 class="help-heading">Intro <code>intro-tag</code></h2>`,
			got)
	})

	t.Run("h2 renders as h3", func(t *testing.T) {
		tree := csttest.N("h2", word("Details"))
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t,
			`<a name="Details"></a><h3 class="help-heading">Details</h3>`,
			got)
	})

	t.Run("h3 keeps uppercase name", func(t *testing.T) {
		tree := csttest.N("h3",
			csttest.Leaf("uppercase_name", "COMMANDS"),
			csttest.N("tag", word("cmds")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t,
			`<a name="cmds"></a><h3 class="help-heading">COMMANDS <code>cmds</code></h3>`,
			got)
	})

	t.Run("noise heading suppressed", func(t *testing.T) {
		tree := csttest.N("h1", word("NVIM REFERENCE MANUAL"))
		assert.Equal(t, "", renderHTML(tree, render.HTMLOptions{}))
	})
}

func TestHTMLCodeblock(t *testing.T) {
	t.Run("language class consumed", func(t *testing.T) {
		tree := csttest.N("codeblock",
			csttest.Leaf("language", "lua"),
			csttest.N("code",
				csttest.N("line", word("print(1)")),
			),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Contains(t, got, `<code class="language-lua">`)
		assert.Contains(t, got, "print(1)")
		assert.Contains(t, got, "</code></pre>")
	})

	t.Run("no language", func(t *testing.T) {
		tree := csttest.N("codeblock",
			csttest.N("code",
				csttest.N("line", word("ls -l")),
			),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Contains(t, got, "<pre>ls -l</pre>")
		assert.NotContains(t, got, "language-")
	})

	t.Run("indent trimmed", func(t *testing.T) {
		tree := csttest.N("code",
			csttest.N("line", word("    if x then")),
			csttest.N("line", word("      y()")),
			csttest.N("line", word("    end")),
		)
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Contains(t, got, "if x then")
		assert.NotContains(t, got, "    if x then")
	})
}

func TestHTMLLineLiIndent(t *testing.T) {
	li := func(col uint32, text string) *csttest.Node {
		return csttest.N("line_li",
			csttest.N("line", word(text)),
		).At(0, col)
	}
	tree := csttest.N("block",
		li(0, "first"),
		li(2, "nested"),
		li(4, "deeper"),
		li(2, "back"),
		li(0, "top"),
	)

	got := renderHTML(tree, render.HTMLOptions{})

	// Levels 1,2,3,2,1; only levels above 1 get a margin.
	assert.Contains(t, got, `<div class="help-li" style="">first`)
	assert.Contains(t, got, fmt.Sprintf(`style="margin-left: %.1frem;">nested`, 3.0))
	assert.Contains(t, got, fmt.Sprintf(`style="margin-left: %.1frem;">deeper`, 4.5))
	assert.Contains(t, got, fmt.Sprintf(`style="margin-left: %.1frem;">back`, 3.0))
	assert.Contains(t, got, `<div class="help-li" style="">top`)
}

func TestHTMLLineLiNeverBelowOne(t *testing.T) {
	li := func(col uint32, text string) *csttest.Node {
		return csttest.N("line_li",
			csttest.N("line", word(text)),
		).At(0, col)
	}
	// Repeated dedents cannot push the level below 1.
	tree := csttest.N("block",
		li(8, "a"),
		li(4, "b"),
		li(2, "c"),
		li(0, "d"),
	)
	got := renderHTML(tree, render.HTMLOptions{})
	assert.NotContains(t, got, "margin-left")
}

func TestHTMLErrorRecovery(t *testing.T) {
	t.Run("error marker", func(t *testing.T) {
		tree := csttest.Error("%%%bad%%%junk")
		got := renderHTML(tree, render.HTMLOptions{})
		assert.Equal(t, "{ERROR: %%%bad%%%j}", got)
	})

	t.Run("ignorable error passes through", func(t *testing.T) {
		tree := csttest.Error("`unclosed")
		assert.Equal(t, "`unclosed", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("known false-positive tag passes through", func(t *testing.T) {
		tree := csttest.Error("v:_null_blob")
		assert.Equal(t, "v:_null_blob", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("separator rule passes through", func(t *testing.T) {
		tree := csttest.Error("============")
		assert.Equal(t, "============", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("line with error renders raw text", func(t *testing.T) {
		tree := csttest.N("line",
			word("keep"),
			csttest.Error("%%%"),
		)
		assert.Equal(t, "keep%%%\n", renderHTML(tree, render.HTMLOptions{}))
	})

	t.Run("codespan with error keeps body", func(t *testing.T) {
		tree := csttest.N("codespan",
			word("x"),
			csttest.Error("`"),
		)
		assert.Equal(t, "x`", renderHTML(tree, render.HTMLOptions{}))
	})
}

func TestHTMLOldModeHeadingLine(t *testing.T) {
	tree := csttest.N("line",
		csttest.N("h1", word("Intro"), csttest.N("tag", word("x"))),
	)
	got := renderHTML(tree, render.HTMLOptions{Old: true})
	// The line contributes no trailing newline when a heading leads it.
	assert.False(t, strings.HasSuffix(got, "\n"))
	assert.Contains(t, got, `<h2 class="help-heading">`)
}

func TestHTMLDeterministic(t *testing.T) {
	tree := csttest.N("block",
		csttest.N("line",
			word("See"),
			csttest.N("taglink", word("api")),
			word("for"),
			csttest.N("codespan", word("details")),
		),
	)
	root := csttest.Tree(tree)

	first := render.HTML(tree.Source(), root.Walk(), render.HTMLOptions{})
	require.NotEmpty(t, first)
	for i := 0; i < 3; i++ {
		again := render.HTML(tree.Source(), root.Walk(), render.HTMLOptions{})
		assert.Equal(t, first, again)
	}
}
