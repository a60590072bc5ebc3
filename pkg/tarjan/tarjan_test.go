package tarjan

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alephw/pkg/graph"
)

func buildFiveNodeGraph() (*graph.Graph[int, struct{}], map[int]*graph.Node[int, struct{}]) {
	g := graph.New[int, struct{}](true)
	nodes := map[int]*graph.Node[int, struct{}]{}
	for i := 1; i <= 5; i++ {
		nodes[i] = g.InsertNode(i)
	}
	edges := [][2]int{{1, 2}, {2, 3}, {3, 1}, {4, 2}, {4, 3}, {4, 5}, {5, 4}}
	for _, e := range edges {
		g.InsertArc(nodes[e[0]], nodes[e[1]], struct{}{})
	}
	return g, nodes
}

func componentInfoSets(res Result[int, struct{}]) [][]int {
	var out [][]int
	for _, c := range res.Components {
		var infos []int
		for _, n := range c.Nodes {
			infos = append(infos, n.Info)
		}
		sort.Ints(infos)
		out = append(out, infos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func TestRunFindsTheTwoExpectedComponents(t *testing.T) {
	g, _ := buildFiveNodeGraph()
	res := Run[int, struct{}](g, nil)

	got := componentInfoSets(res)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5}}, got)
}

func TestHasCycleTrueForTheFiveNodeGraph(t *testing.T) {
	g, _ := buildFiveNodeGraph()
	assert.True(t, HasCycle[int, struct{}](g))
}

func TestHasCycleFalseForADAG(t *testing.T) {
	g := graph.New[int, struct{}](true)
	a := g.InsertNode(1)
	b := g.InsertNode(2)
	c := g.InsertNode(3)
	g.InsertArc(a, b, struct{}{})
	g.InsertArc(b, c, struct{}{})
	assert.False(t, HasCycle[int, struct{}](g))

	res := Run[int, struct{}](g, nil)
	assert.Len(t, res.Components, 3)
}

func TestSelfLoopIsACycleOfSizeOneComponent(t *testing.T) {
	g := graph.New[int, struct{}](true)
	a := g.InsertNode(1)
	g.InsertArc(a, a, struct{}{})
	assert.True(t, HasCycle[int, struct{}](g))
}

func TestCycleWitnessForMultiNodeComponent(t *testing.T) {
	g, _ := buildFiveNodeGraph()
	res := Run[int, struct{}](g, nil)

	var triComp Component[int, struct{}]
	for _, c := range res.Components {
		if len(c.Nodes) == 3 {
			triComp = c
		}
	}
	require.Len(t, triComp.Nodes, 3)

	cycle, err := Cycle(triComp)
	require.NoError(t, err)
	require.NotEmpty(t, cycle)

	// The arcs must chain head-to-tail and return to the start.
	for i := 1; i < len(cycle); i++ {
		assert.Equal(t, cycle[i-1].Tgt, cycle[i].Src)
	}
	assert.Equal(t, cycle[0].Src, cycle[len(cycle)-1].Tgt)
}

func TestCycleWitnessForSelfLoop(t *testing.T) {
	g := graph.New[int, struct{}](true)
	a := g.InsertNode(1)
	g.InsertArc(a, a, struct{}{})

	res := Run[int, struct{}](g, nil)
	require.Len(t, res.Components, 1)

	cycle, err := Cycle(res.Components[0])
	require.NoError(t, err)
	require.Len(t, cycle, 1)
	assert.Equal(t, cycle[0].Src, cycle[0].Tgt)
}

func TestInterComponentArcsExcludesIntraComponentArcs(t *testing.T) {
	g, nodes := buildFiveNodeGraph()
	res := Run[int, struct{}](g, nil)

	interPairs := map[[2]int]bool{}
	for _, a := range res.InterComponentArcs {
		interPairs[[2]int{a.Src.Info, a.Tgt.Info}] = true
	}
	assert.True(t, interPairs[[2]int{4, 2}])
	assert.True(t, interPairs[[2]int{4, 3}])
	assert.False(t, interPairs[[2]int{1, 2}])
	_ = nodes
}
