// Package graph is an adjacency-list graph substrate: nodes and arcs
// each carry a small bookkeeping block (visited bits, a counter slot,
// and an opaque cookie) that traversal algorithms like pkg/tarjan use to
// track algorithm-local state without a side table keyed by identity.
// A Graph can be directed or undirected; an undirected arc is spliced
// into both endpoints' adjacency lists but remains one Arc value.
package graph

import (
	"fmt"
	"io"

	mapset "github.com/deckarep/golang-set/v2"
)

// NodeID and ArcID are stable handles, assigned in insertion order.
type NodeID uint64
type ArcID uint64

// Bit is a single algorithm-bookkeeping flag on a Node (visited, on
// depth-first stack, and so on). Algorithms reset the bits they use
// before a run and never assume another algorithm left them clear.
type Bit uint8

const (
	BitVisited Bit = 1 << iota
	BitDepthFirst
	BitOnStack
)

// Node is a graph vertex carrying caller payload Info.
type Node[T any, A any] struct {
	id      NodeID
	Info    T
	bits    Bit
	Counter int // general-purpose scratch slot (SCC index, distance, ...)
	Low     int // general-purpose scratch slot (Tarjan's low-link)
	Cookie  any // opaque pointer for cross-structure mapping
	out     []*Arc[T, A]
}

// ID returns the node's stable identifier.
func (n *Node[T, A]) ID() NodeID { return n.id }

// TestBit reports whether b is set on n.
func (n *Node[T, A]) TestBit(b Bit) bool { return n.bits&b != 0 }

// SetBit sets or clears b on n.
func (n *Node[T, A]) SetBit(b Bit, v bool) {
	if v {
		n.bits |= b
	} else {
		n.bits &^= b
	}
}

// ResetBits clears every bookkeeping bit, ready for a fresh traversal.
func (n *Node[T, A]) ResetBits() { n.bits = 0 }

// Arc is a graph edge from Src to Tgt carrying caller payload Info. In
// an undirected graph a single Arc is reachable from both endpoints.
type Arc[T any, A any] struct {
	id       ArcID
	Src, Tgt *Node[T, A]
	Info     A
	Cookie   any
}

// ID returns the arc's stable identifier.
func (a *Arc[T, A]) ID() ArcID { return a.id }

// Graph is a directed or undirected adjacency-list graph.
type Graph[T any, A any] struct {
	Directed   bool
	nodes      map[NodeID]*Node[T, A]
	arcs       map[ArcID]*Arc[T, A]
	nextNodeID NodeID
	nextArcID  ArcID
}

// New constructs an empty graph.
func New[T any, A any](directed bool) *Graph[T, A] {
	return &Graph[T, A]{
		Directed: directed,
		nodes:    make(map[NodeID]*Node[T, A]),
		arcs:     make(map[ArcID]*Arc[T, A]),
	}
}

// NodeCount reports the number of nodes.
func (g *Graph[T, A]) NodeCount() int { return len(g.nodes) }

// ArcCount reports the number of distinct arcs (an undirected arc
// counts once even though it is spliced into two adjacency lists).
func (g *Graph[T, A]) ArcCount() int { return len(g.arcs) }

// InsertNode adds a new node carrying info and returns it.
func (g *Graph[T, A]) InsertNode(info T) *Node[T, A] {
	n := &Node[T, A]{id: g.nextNodeID, Info: info}
	g.nodes[n.id] = n
	g.nextNodeID++
	return n
}

// SearchNode looks up a node by ID.
func (g *Graph[T, A]) SearchNode(id NodeID) (*Node[T, A], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// InsertArc adds an arc from src to tgt. In an undirected graph the arc
// is appended to both src's and tgt's adjacency lists; in a directed
// graph only to src's.
func (g *Graph[T, A]) InsertArc(src, tgt *Node[T, A], info A) *Arc[T, A] {
	a := &Arc[T, A]{id: g.nextArcID, Src: src, Tgt: tgt, Info: info}
	g.nextArcID++
	g.arcs[a.id] = a
	src.out = append(src.out, a)
	if !g.Directed && tgt != src {
		tgt.out = append(tgt.out, a)
	}
	return a
}

// RemoveArc deletes a from the graph and from whichever adjacency
// list(s) it was spliced into.
func (g *Graph[T, A]) RemoveArc(a *Arc[T, A]) {
	a.Src.out = removeArcPtr(a.Src.out, a)
	if !g.Directed && a.Tgt != a.Src {
		a.Tgt.out = removeArcPtr(a.Tgt.out, a)
	}
	delete(g.arcs, a.id)
}

func removeArcPtr[T any, A any](list []*Arc[T, A], target *Arc[T, A]) []*Arc[T, A] {
	for i, a := range list {
		if a == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// RemoveNode deletes n and cascades to remove every arc incident to it
// (as either endpoint), mirroring how the underlying adjacency lists
// only index arcs by their source node.
func (g *Graph[T, A]) RemoveNode(n *Node[T, A]) {
	var toRemove []*Arc[T, A]
	for _, a := range g.arcs {
		if a.Src == n || a.Tgt == n {
			toRemove = append(toRemove, a)
		}
	}
	for _, a := range toRemove {
		g.RemoveArc(a)
	}
	delete(g.nodes, n.id)
}

// ForEachNode visits every node, stopping early if visit returns false.
func (g *Graph[T, A]) ForEachNode(visit func(n *Node[T, A]) bool) {
	for _, n := range g.nodes {
		if !visit(n) {
			return
		}
	}
}

// ForEachArc visits every distinct arc exactly once, stopping early if
// visit returns false. A set of already-seen arc IDs (rather than
// walking the global arc map directly) is what lets this share the same
// traversal shape as ForEachOutArc for undirected graphs.
func (g *Graph[T, A]) ForEachArc(visit func(a *Arc[T, A]) bool) {
	seen := mapset.NewThreadUnsafeSet[ArcID]()
	for _, n := range g.nodes {
		for _, a := range n.out {
			if seen.Contains(a.id) {
				continue
			}
			seen.Add(a.id)
			if !visit(a) {
				return
			}
		}
	}
}

// ForEachOutArc visits the arcs adjacent to n (outgoing, for a directed
// graph; all incident arcs, for an undirected one).
func (g *Graph[T, A]) ForEachOutArc(n *Node[T, A], visit func(a *Arc[T, A]) bool) {
	for _, a := range n.out {
		if !visit(a) {
			return
		}
	}
}

// Other returns the endpoint of a that is not n, for walking an
// undirected arc from either side.
func (a *Arc[T, A]) Other(n *Node[T, A]) *Node[T, A] {
	if a.Src == n {
		return a.Tgt
	}
	return a.Src
}

// Copy returns a deep structural copy of g. Each new node's Cookie is
// set to point at the corresponding original node (and vice versa for
// the copy held by the caller, via the returned mapping), the way graph
// algorithms that split a graph into components track which original
// node a copied one came from.
func (g *Graph[T, A]) Copy() (*Graph[T, A], map[NodeID]*Node[T, A]) {
	out := New[T, A](g.Directed)
	mapping := make(map[NodeID]*Node[T, A], len(g.nodes))
	for id, n := range g.nodes {
		cp := out.InsertNode(n.Info)
		cp.Cookie = n
		mapping[id] = cp
	}
	g.ForEachArc(func(a *Arc[T, A]) bool {
		out.InsertArc(mapping[a.Src.id], mapping[a.Tgt.id], a.Info)
		return true
	})
	return out, mapping
}

// WriteDOT renders g as a Graphviz DOT graph, using label for each
// node's display text. A debugging aid, not a serialization format.
func (g *Graph[T, A]) WriteDOT(w io.Writer, label func(n *Node[T, A]) string) error {
	kind, conn := "graph", "--"
	if g.Directed {
		kind, conn = "digraph", "->"
	}
	if _, err := fmt.Fprintf(w, "%s G {\n", kind); err != nil {
		return err
	}
	var writeErr error
	g.ForEachNode(func(n *Node[T, A]) bool {
		_, writeErr = fmt.Fprintf(w, "  %d [label=%q];\n", n.id, label(n))
		return writeErr == nil
	})
	if writeErr != nil {
		return writeErr
	}
	g.ForEachArc(func(a *Arc[T, A]) bool {
		_, writeErr = fmt.Fprintf(w, "  %d %s %d;\n", a.Src.id, conn, a.Tgt.id)
		return writeErr == nil
	})
	if writeErr != nil {
		return writeErr
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}
