// Package rtree is a randomized self-balancing binary search tree:
// expected O(log n) operations regardless of insertion order, achieved
// by giving a freshly inserted node a 1/(subtreeSize+1) chance of
// becoming the root of the subtree it lands in, rather than by tracking
// an explicit balance factor the way pkg/avltree does.
package rtree

import (
	"math/rand"

	"alephw/internal/seed"
	"alephw/pkg/bst"
)

// Less is the strict weak ordering rtree's constructors and callers use,
// an alias of bst.Less so callers needn't import pkg/bst just to name
// the comparator type.
type Less[K any] = bst.Less[K]

// Tree is a randomized BST over keys K with values V, ordered by Less.
type Tree[K any, V any] struct {
	root *bst.Node[K, V]
	less bst.Less[K]
	rng  *rand.Rand
}

// Config configures a Tree's PRNG. A nil Seed draws fresh OS entropy
// (internal/seed) so that two Trees constructed without an explicit seed
// don't end up with correlated shapes; pass a Seed for reproducible runs
// and deterministic test fixtures.
type Config struct {
	Seed *uint64
}

// New constructs an empty randomized tree.
func New[K any, V any](less bst.Less[K], cfg Config) *Tree[K, V] {
	s := cfg.Seed
	var sv uint64
	if s != nil {
		sv = *s
	} else {
		sv = seed.Uint64()
	}
	return &Tree[K, V]{less: less, rng: rand.New(rand.NewSource(int64(sv)))}
}

// Count returns the number of keys in the tree.
func (t *Tree[K, V]) Count() int { return bst.Count(t.root) }

// Search returns the value stored under k and whether it was present.
func (t *Tree[K, V]) Search(k K) (V, bool) {
	n := bst.Search(t.root, k, t.less)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Val, true
}

// Insert adds k/v, returning false if k is already present.
func (t *Tree[K, V]) Insert(k K, v V) bool {
	n := bst.NewNode(k, v)
	root, ok := t.insert(t.root, n)
	if !ok {
		return false
	}
	t.root = root
	return true
}

// insert descends to the target subtree, at each level of size s rolling a
// 1/(s+1) chance of promoting n to that subtree's root instead of
// continuing the descent.
func (t *Tree[K, V]) insert(sub *bst.Node[K, V], n *bst.Node[K, V]) (*bst.Node[K, V], bool) {
	if sub == nil {
		return n, true
	}
	size := bst.Count(sub)
	if t.rng.Intn(size+1) == 0 {
		return bst.InsertAtRoot(sub, n, t.less)
	}
	switch {
	case t.less(n.Key, sub.Key):
		child, ok := t.insert(sub.Left(), n)
		if !ok {
			return sub, false
		}
		return bst.SetLeft(sub, child), true
	case t.less(sub.Key, n.Key):
		child, ok := t.insert(sub.Right(), n)
		if !ok {
			return sub, false
		}
		return bst.SetRight(sub, child), true
	default:
		return sub, false
	}
}

// InsertDup always inserts, even if k is already present.
func (t *Tree[K, V]) InsertDup(k K, v V) {
	n := bst.NewNode(k, v)
	t.root = t.insertDup(t.root, n)
}

func (t *Tree[K, V]) insertDup(sub *bst.Node[K, V], n *bst.Node[K, V]) *bst.Node[K, V] {
	if sub == nil {
		return n
	}
	size := bst.Count(sub)
	if t.rng.Intn(size+1) == 0 {
		return bst.InsertDupAtRoot(sub, n, t.less)
	}
	if t.less(n.Key, sub.Key) {
		return bst.SetLeft(sub, t.insertDup(sub.Left(), n))
	}
	return bst.SetRight(sub, t.insertDup(sub.Right(), n))
}

// Remove deletes k, returning the removed value and whether it was
// present. Deletion replaces the removed node with the randomized
// exclusive join of its two subtrees.
func (t *Tree[K, V]) Remove(k K) (V, bool) {
	root, removed := t.remove(t.root, k)
	t.root = root
	if removed == nil {
		var zero V
		return zero, false
	}
	return removed.Val, true
}

func (t *Tree[K, V]) remove(sub *bst.Node[K, V], k K) (*bst.Node[K, V], *bst.Node[K, V]) {
	if sub == nil {
		return nil, nil
	}
	switch {
	case t.less(k, sub.Key):
		newLeft, removed := t.remove(sub.Left(), k)
		return bst.SetLeft(sub, newLeft), removed
	case t.less(sub.Key, k):
		newRight, removed := t.remove(sub.Right(), k)
		return bst.SetRight(sub, newRight), removed
	default:
		joined := t.joinExclusive(sub.Left(), sub.Right())
		bst.SetLeft(sub, nil)
		bst.SetRight(sub, nil)
		return joined, sub
	}
}

// joinExclusive merges two disjoint-range subtrees, the left root winning
// with probability proportional to its size.
func (t *Tree[K, V]) joinExclusive(a, b *bst.Node[K, V]) *bst.Node[K, V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	m, n := bst.Count(a), bst.Count(b)
	if t.rng.Intn(m+n) < m {
		return bst.SetRight(a, t.joinExclusive(a.Right(), b))
	}
	return bst.SetLeft(b, t.joinExclusive(a, b.Left()))
}

// Join merges b's elements into a, redirecting any key already present
// in a into a freshly constructed tree dup instead of overwriting a's
// value — the cross-tree collision case of the original's
// join(A, B, Dup). Each non-colliding element is randomly re-rooted via
// the same Insert path a single Insert call would take, so merging
// preserves the expected-height guarantee rather than just splicing b's
// shape onto a.
func Join[K any, V any](a, b *Tree[K, V], dupCfg Config) (merged *Tree[K, V], dup *Tree[K, V]) {
	dup = New[K, V](a.less, dupCfg)
	for _, pair := range bst.InOrderPairs(b.root) {
		if _, ok := a.Search(pair.Key); ok {
			dup.InsertDup(pair.Key, pair.Val)
		} else {
			a.Insert(pair.Key, pair.Val)
		}
	}
	return a, dup
}

// JoinDup merges b's elements into a with no duplicate detection at
// all: every element of b goes through InsertDup, so a key present in
// both ends up duplicated in a rather than redirected or rejected — the
// original's join_dup.
func JoinDup[K any, V any](a, b *Tree[K, V]) *Tree[K, V] {
	for _, pair := range bst.InOrderPairs(b.root) {
		a.InsertDup(pair.Key, pair.Val)
	}
	return a
}

// InOrder returns every key in ascending order.
func (t *Tree[K, V]) InOrder() []K { return bst.InOrder(t.root) }

// Select returns the key/value at in-order rank i (0-indexed).
func (t *Tree[K, V]) Select(i int) (K, V, error) {
	n, err := bst.Select(t.root, i)
	if err != nil {
		var zk K
		var zv V
		return zk, zv, err
	}
	return n.Key, n.Val, nil
}

// Position returns the in-order rank of k, if present.
func (t *Tree[K, V]) Position(k K) (int, bool) {
	pos, node := bst.Position(t.root, k, t.less)
	return pos, node != nil
}
