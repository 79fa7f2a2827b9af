package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"vimdoc2html/internal/ast"
	"vimdoc2html/internal/cst"
)

func TestNewLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := ast.NewLogSink(zap.New(core))

	sink.Report(ast.InvalidNode{
		Missing: true,
		Start:   cst.Position{Row: 3, Column: 7},
		Details: "(MISSING word)",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "invalid node", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, true, fields["missing"])
	assert.EqualValues(t, 3, fields["row"])
	assert.EqualValues(t, 7, fields["col"])
	assert.Equal(t, "(MISSING word)", fields["details"])
}

func TestCollectSinkAccumulates(t *testing.T) {
	sink := &ast.CollectSink{}
	sink.Report(ast.InvalidNode{Details: "(ERROR)"})
	sink.Report(ast.InvalidNode{Missing: true, Details: "(MISSING line)"})

	require.Len(t, sink.Nodes, 2)
	assert.False(t, sink.Nodes[0].Missing)
	assert.True(t, sink.Nodes[1].Missing)
}
