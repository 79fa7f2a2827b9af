package render

import (
	"fmt"
	"strings"

	"vimdoc2html/internal/cst"
	"vimdoc2html/internal/text"
	"vimdoc2html/internal/visit"
)

// maxDebugText bounds the quoted text in a debug line.
const maxDebugText = 10

// DebugConverter emits one structural line per named node.
type DebugConverter struct{}

// Debug renders the tree under the cursor as a line-per-node dump:
// indentation proportional to depth, the node kind, its position range,
// and its (possibly truncated) raw text.
func Debug(src string, c cst.Cursor) string {
	return visit.AllNamed[string](DebugConverter{}, visit.NewContext(src, c), visit.NewlineJoiner)
}

func (DebugConverter) Visit(ctx *visit.Context) string {
	n := ctx.Node()
	start, end := n.StartPosition(), n.EndPosition()

	raw := ctx.RawText()
	quoted := fmt.Sprintf("%q", raw)
	if len(raw) > maxDebugText {
		quoted = fmt.Sprintf("%q [trimmed]", text.Truncate(raw, maxDebugText))
	}

	return fmt.Sprintf("%sKind: %q [Row:%d, Col:%d] - [Row:%d, Col:%d] = %s",
		strings.Repeat(" ", 4*cst.Depth(n)), n.Kind(),
		start.Row, start.Column, end.Row, end.Column, quoted)
}
