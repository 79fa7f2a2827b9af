package ast

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"vimdoc2html/internal/cst"
)

// InvalidNode describes an error or missing CST node encountered while
// iterating a sequence field. Such nodes are reported and skipped; they do
// not abort the build of their parent.
type InvalidNode struct {
	Missing bool
	Start   cst.Position
	Details string // structural dump of the offending subtree
}

// DiagnosticSink receives malformed-node reports during a build.
type DiagnosticSink interface {
	Report(n InvalidNode)
}

// SinkFunc adapts a function to the DiagnosticSink interface.
type SinkFunc func(n InvalidNode)

func (f SinkFunc) Report(n InvalidNode) { f(n) }

// StderrSink writes one line per invalid node to standard error. It is the
// default sink.
var StderrSink DiagnosticSink = SinkFunc(func(n InvalidNode) {
	kind := "error"
	if n.Missing {
		kind = "missing"
	}
	fmt.Fprintf(os.Stderr, "encountered %s node @ (%d, %d): %s\n",
		kind, n.Start.Row, n.Start.Column, n.Details)
})

// NewLogSink reports invalid nodes through a zap logger.
func NewLogSink(logger *zap.Logger) DiagnosticSink {
	return SinkFunc(func(n InvalidNode) {
		logger.Warn("invalid node",
			zap.Bool("missing", n.Missing),
			zap.Uint32("row", n.Start.Row),
			zap.Uint32("col", n.Start.Column),
			zap.String("details", n.Details))
	})
}

// CollectSink accumulates reports in memory, for tests.
type CollectSink struct {
	Nodes []InvalidNode
}

func (s *CollectSink) Report(n InvalidNode) { s.Nodes = append(s.Nodes, n) }

// invalidNodeOf classifies n as an invalid node, capturing its position and
// a structural dump for the report.
func invalidNodeOf(n cst.Node) (InvalidNode, bool) {
	switch {
	case n.IsError():
		return InvalidNode{Start: n.StartPosition(), Details: cst.Dump(n)}, true
	case n.IsMissing():
		return InvalidNode{Missing: true, Start: n.StartPosition(), Details: cst.Dump(n)}, true
	}
	return InvalidNode{}, false
}
