// Package tarjan computes strongly connected components and cycle
// witnesses over a pkg/graph.Graph using Tarjan's single-pass DFS
// low-link algorithm, reusing the graph's own node bookkeeping bits and
// Counter/Low scratch fields instead of a side table keyed by identity.
package tarjan

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"

	"alephw/pkg/graph"
	"alephw/pkg/llist"
)

// ArcFilter decides whether an arc should be traversed. A nil filter
// traverses every arc.
type ArcFilter[T any, A any] func(a *graph.Arc[T, A]) bool

// Component is one strongly connected component.
type Component[T any, A any] struct {
	Nodes []*graph.Node[T, A]
	// Subgraph is an isolated copy containing only this component's
	// nodes and the arcs that run between them.
	Subgraph *graph.Graph[T, A]
	// nodeMap maps an original-graph NodeID to its copy in Subgraph.
	nodeMap map[graph.NodeID]*graph.Node[T, A]
}

// Result holds every output mode the engine produces.
type Result[T any, A any] struct {
	Components []Component[T, A]
	// InterComponentArcs lists arcs whose endpoints fall in different
	// components.
	InterComponentArcs []*graph.Arc[T, A]
}

// Sizes returns the size of each component, in discovery order.
func (r Result[T, A]) Sizes() []int {
	out := make([]int, len(r.Components))
	for i, c := range r.Components {
		out[i] = len(c.Nodes)
	}
	return out
}

// Run computes every strongly connected component of g, following only
// arcs that pass filter (nil traverses all arcs). Root node selection
// order is unspecified (Go map iteration), which only affects
// Components' relative order, never SCC membership; algorithm bits and
// the Counter/Low scratch fields are reset on every node before the run
// starts.
func Run[T any, A any](g *graph.Graph[T, A], filter ArcFilter[T, A]) Result[T, A] {
	g.ForEachNode(func(n *graph.Node[T, A]) bool {
		n.ResetBits()
		n.Counter = 0
		n.Low = 0
		return true
	})

	dfCount := 0
	var stack llist.SStack[*graph.Node[T, A]]
	var result Result[T, A]
	var interArcs []*graph.Arc[T, A]
	nodeComponent := make(map[graph.NodeID]int)

	var visit func(v *graph.Node[T, A])
	visit = func(v *graph.Node[T, A]) {
		v.SetBit(graph.BitDepthFirst, true)
		v.SetBit(graph.BitOnStack, true)
		stack.Push(v)
		v.Counter = dfCount
		v.Low = dfCount
		dfCount++

		g.ForEachOutArc(v, func(a *graph.Arc[T, A]) bool {
			if filter != nil && !filter(a) {
				return true
			}
			w := a.Other(v)
			if !w.TestBit(graph.BitDepthFirst) {
				visit(w)
				if w.Low < v.Low {
					v.Low = w.Low
				}
			} else if w.TestBit(graph.BitOnStack) {
				if w.Counter < v.Low {
					v.Low = w.Counter
				}
			}
			return true
		})

		if v.Low == v.Counter {
			compIdx := len(result.Components)
			var nodes []*graph.Node[T, A]
			for {
				p, _ := stack.Pop()
				p.SetBit(graph.BitOnStack, false)
				nodes = append(nodes, p)
				nodeComponent[p.ID()] = compIdx
				if p == v {
					break
				}
			}
			sub, mapping := inducedSubgraph(g, nodes)
			result.Components = append(result.Components, Component[T, A]{
				Nodes:    nodes,
				Subgraph: sub,
				nodeMap:  mapping,
			})
		}
	}

	g.ForEachNode(func(n *graph.Node[T, A]) bool {
		if !n.TestBit(graph.BitDepthFirst) {
			visit(n)
		}
		return true
	})

	g.ForEachArc(func(a *graph.Arc[T, A]) bool {
		if nodeComponent[a.Src.ID()] != nodeComponent[a.Tgt.ID()] {
			interArcs = append(interArcs, a)
		}
		return true
	})
	result.InterComponentArcs = interArcs
	return result
}

// inducedSubgraph copies just nodes and the arcs running between them.
func inducedSubgraph[T any, A any](g *graph.Graph[T, A], nodes []*graph.Node[T, A]) (*graph.Graph[T, A], map[graph.NodeID]*graph.Node[T, A]) {
	sub := graph.New[T, A](g.Directed)
	mapping := make(map[graph.NodeID]*graph.Node[T, A], len(nodes))
	members := mapset.NewThreadUnsafeSet[graph.NodeID]()
	for _, n := range nodes {
		mapping[n.ID()] = sub.InsertNode(n.Info)
		members.Add(n.ID())
	}
	g.ForEachArc(func(a *graph.Arc[T, A]) bool {
		if members.Contains(a.Src.ID()) && members.Contains(a.Tgt.ID()) {
			sub.InsertArc(mapping[a.Src.ID()], mapping[a.Tgt.ID()], a.Info)
		}
		return true
	})
	return sub, mapping
}

// HasCycle reports whether g contains a directed cycle: true as soon as
// any component has more than one node, or a single node with a
// self-loop.
func HasCycle[T any, A any](g *graph.Graph[T, A]) bool {
	res := Run(g, nil)
	for _, c := range res.Components {
		if len(c.Nodes) > 1 {
			return true
		}
		if len(c.Nodes) == 1 {
			n := c.Nodes[0]
			hasSelfLoop := false
			g.ForEachOutArc(n, func(a *graph.Arc[T, A]) bool {
				if a.Src == n && a.Tgt == n {
					hasSelfLoop = true
					return false
				}
				return true
			})
			if hasSelfLoop {
				return true
			}
		}
	}
	return false
}

// ErrNoCycle is returned by Cycle when the component has no arc to build a
// witness from (unreachable for a genuine SCC, but guards against a
// caller passing an arbitrary node slice).
var ErrNoCycle = errors.New("tarjan: component contains no cycle")

// Cycle builds a witness cycle for a component: for a single self-looped
// node, that loop; for a component of size >= 2, an arc (s,t) from the
// component plus a path found back from t to s.
func Cycle[T any, A any](c Component[T, A]) ([]*graph.Arc[T, A], error) {
	if len(c.Nodes) == 1 {
		n := c.nodeMap[c.Nodes[0].ID()]
		var loop *graph.Arc[T, A]
		c.Subgraph.ForEachOutArc(n, func(a *graph.Arc[T, A]) bool {
			if a.Src == a.Tgt {
				loop = a
				return false
			}
			return true
		})
		if loop == nil {
			return nil, ErrNoCycle
		}
		return []*graph.Arc[T, A]{loop}, nil
	}

	var seed *graph.Arc[T, A]
	c.Subgraph.ForEachArc(func(a *graph.Arc[T, A]) bool {
		seed = a
		return false
	})
	if seed == nil {
		return nil, ErrNoCycle
	}

	path, ok := findPath(c.Subgraph, seed.Tgt, seed.Src)
	if !ok {
		return nil, ErrNoCycle
	}
	return append(path, seed), nil
}

// findPath runs a plain DFS from src to dst, returning the arc sequence
// if reachable.
func findPath[T any, A any](g *graph.Graph[T, A], src, dst *graph.Node[T, A]) ([]*graph.Arc[T, A], bool) {
	visited := mapset.NewThreadUnsafeSet[graph.NodeID]()
	var path []*graph.Arc[T, A]
	var dfs func(v *graph.Node[T, A]) bool
	dfs = func(v *graph.Node[T, A]) bool {
		if v == dst {
			return true
		}
		visited.Add(v.ID())
		found := false
		g.ForEachOutArc(v, func(a *graph.Arc[T, A]) bool {
			w := a.Tgt
			if a.Src != v {
				return true
			}
			if visited.Contains(w.ID()) {
				return true
			}
			path = append(path, a)
			if dfs(w) {
				found = true
				return false
			}
			path = path[:len(path)-1]
			return true
		})
		return found
	}
	ok := dfs(src)
	return path, ok
}
