package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectedInsertAndTraverse(t *testing.T) {
	g := New[string, int](true)
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	c := g.InsertNode("c")
	g.InsertArc(a, b, 1)
	g.InsertArc(a, c, 2)
	g.InsertArc(b, c, 3)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.ArcCount())

	var targets []string
	g.ForEachOutArc(a, func(arc *Arc[string, int]) bool {
		targets = append(targets, arc.Tgt.Info)
		return true
	})
	assert.ElementsMatch(t, []string{"b", "c"}, targets)

	var seen int
	g.ForEachArc(func(*Arc[string, int]) bool { seen++; return true })
	assert.Equal(t, 3, seen)
}

func TestUndirectedArcVisibleFromBothEndpointsButCountedOnce(t *testing.T) {
	g := New[string, int](false)
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	g.InsertArc(a, b, 7)

	assert.Equal(t, 1, g.ArcCount())

	aArcs := 0
	g.ForEachOutArc(a, func(*Arc[string, int]) bool { aArcs++; return true })
	bArcs := 0
	g.ForEachOutArc(b, func(*Arc[string, int]) bool { bArcs++; return true })
	assert.Equal(t, 1, aArcs)
	assert.Equal(t, 1, bArcs)

	total := 0
	g.ForEachArc(func(*Arc[string, int]) bool { total++; return true })
	assert.Equal(t, 1, total)
}

func TestRemoveNodeCascadesArcs(t *testing.T) {
	g := New[string, int](true)
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	c := g.InsertNode("c")
	g.InsertArc(a, b, 1)
	g.InsertArc(c, b, 2)
	g.InsertArc(b, c, 3)

	g.RemoveNode(b)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.ArcCount())

	_, ok := g.SearchNode(b.ID())
	assert.False(t, ok)
}

func TestRemoveArc(t *testing.T) {
	g := New[string, int](false)
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	arc := g.InsertArc(a, b, 1)
	g.RemoveArc(arc)
	assert.Equal(t, 0, g.ArcCount())

	n := 0
	g.ForEachOutArc(a, func(*Arc[string, int]) bool { n++; return true })
	assert.Equal(t, 0, n)
}

func TestCopyProducesIndependentGraphWithSameShape(t *testing.T) {
	g := New[string, int](true)
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	g.InsertArc(a, b, 42)

	cp, mapping := g.Copy()
	require.Equal(t, 2, cp.NodeCount())
	require.Equal(t, 1, cp.ArcCount())

	cpA := mapping[a.ID()]
	var infos []int
	cp.ForEachOutArc(cpA, func(arc *Arc[string, int]) bool {
		infos = append(infos, arc.Info)
		return true
	})
	assert.Equal(t, []int{42}, infos)

	g.RemoveNode(b)
	assert.Equal(t, 2, cp.NodeCount(), "copy must not alias the original's storage")
}

func TestDumpContainsNodeLabels(t *testing.T) {
	g := New[string, int](true)
	g.InsertNode("alpha")
	g.InsertNode("beta")

	var buf bytes.Buffer
	Dump(&buf, g)

	out := buf.String()
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
}

func TestWriteDOTIncludesNodesAndArcs(t *testing.T) {
	g := New[string, int](true)
	a := g.InsertNode("a")
	b := g.InsertNode("b")
	g.InsertArc(a, b, 1)

	var sb strings.Builder
	require.NoError(t, g.WriteDOT(&sb, func(n *Node[string, int]) string { return n.Info }))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, `label="a"`)
	assert.Contains(t, out, `label="b"`)
	assert.Contains(t, out, "->")
}
