package bst

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Dump writes a structural dump of t to w: every node's key, value and
// subtree size, nested by left/right child. Used by property-test
// failure messages in place of the %#v default, which renders Node's
// unexported left/right/count fields as opaque zero values.
func Dump[K any, V any](w io.Writer, t *Node[K, V]) {
	spew.Fdump(w, t)
}
