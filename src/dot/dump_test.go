package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paracl/src/frontend"
)

func TestDumpProducesWellFormedDigraph(t *testing.T) {
	arena, err := frontend.Parse("a = 2; b = 3; print a * b + 1;")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, arena))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph \"AST\""))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
}

func TestDumpEveryEdgeEndpointIsDeclared(t *testing.T) {
	arena, err := frontend.Parse("n = 5; s = 0; while (n > 0) { s = s + n; n = n - 1; } print s;")
	require.NoError(t, err)

	d := NewDumper(arena)
	d.visit(arena.Root())

	declared := make(map[int]bool, len(d.index))
	for _, gid := range d.index {
		declared[gid] = true
	}
	for _, e := range d.edges {
		assert.Truef(t, declared[e.from], "edge references undeclared node %d", e.from)
		assert.Truef(t, declared[e.to], "edge references undeclared node %d", e.to)
	}
}
