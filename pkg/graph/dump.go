package graph

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Dump writes a structural dump of every node and arc in g to w. Used by
// property-test failure messages — tarjan's bookkeeping bits/Counter/Low
// fields aren't visible on a node's zero-value %#v rendering since they
// live behind a struct with unexported fields.
func Dump[T any, A any](w io.Writer, g *Graph[T, A]) {
	spew.Fdump(w, g)
}
