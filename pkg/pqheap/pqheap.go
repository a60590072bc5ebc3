// Package pqheap is a binary heap built over a pointer tree rather than
// the usual array: every inserted item gets a stable *Handle* that stays
// valid (and lets the caller call Remove/Update on it) no matter how
// many sift operations later move that item's key around the tree,
// which a plain slice-backed heap can't offer without an auxiliary
// index table.
//
// Node positions in the tree are fixed once created (the structural
// parent/left/right/isLeft links only change when a leaf is attached or
// detached at the completion boundary); a sift instead swaps the *payload*
// of two positions and repoints each position's Handle, so a Handle always
// tracks its item's current slot in O(1) per swap.
package pqheap

import "errors"

// Less is a strict weak ordering over keys, smaller sorting toward the root.
type Less[K any] func(a, b K) bool

// ErrEmpty is returned by ExtractMin/Peek on an empty heap.
var ErrEmpty = errors.New("pqheap: heap is empty")

type slot[K any, V any] struct {
	key                 K
	val                 V
	parent, left, right *slot[K, V]
	isLeft              bool
	handle              *Handle[K, V]
}

// Handle is the caller-held reference to an inserted item. It remains
// valid for Update/Remove regardless of how many sifts have since moved
// the item between tree positions.
type Handle[K any, V any] struct {
	pos *slot[K, V]
}

// Heap is a pointer-tree binary min-heap over keys K with values V.
type Heap[K any, V any] struct {
	root *slot[K, V]
	last *slot[K, V]
	n    int
	less Less[K]
}

// New constructs an empty heap.
func New[K any, V any](less Less[K]) *Heap[K, V] {
	return &Heap[K, V]{less: less}
}

// Len reports the number of items in the heap.
func (h *Heap[K, V]) Len() int { return h.n }

// Key and Val read a handle's current key/value.
func (hd *Handle[K, V]) Key() K { return hd.pos.key }
func (hd *Handle[K, V]) Val() V { return hd.pos.val }

// SetKey overwrites a handle's key in place, without restoring heap
// order; callers must follow with Heap.Update to re-sift the item.
func (hd *Handle[K, V]) SetKey(k K) { hd.pos.key = k }

// Insert adds k/v, returning a Handle for later Update/Remove.
func (h *Heap[K, V]) Insert(k K, v V) *Handle[K, V] {
	idx := h.n + 1
	s := &slot[K, V]{key: k, val: v}
	handle := &Handle[K, V]{pos: s}
	s.handle = handle

	if idx == 1 {
		h.root = s
	} else {
		parent := nodeAtIndex(h.root, idx/2)
		s.parent = parent
		s.isLeft = idx%2 == 0
		if s.isLeft {
			parent.left = s
		} else {
			parent.right = s
		}
	}
	h.last = s
	h.n++
	h.siftUp(s)
	return handle
}

// Peek returns the minimum key/value without removing it.
func (h *Heap[K, V]) Peek() (K, V, error) {
	if h.root == nil {
		var zk K
		var zv V
		return zk, zv, ErrEmpty
	}
	return h.root.key, h.root.val, nil
}

// ExtractMin removes and returns the minimum item.
func (h *Heap[K, V]) ExtractMin() (K, V, error) {
	if h.root == nil {
		var zk K
		var zv V
		return zk, zv, ErrEmpty
	}
	k, v := h.root.key, h.root.val
	h.remove(&Handle[K, V]{pos: h.root})
	return k, v, nil
}

// Update restores heap order after the caller has mutated the key stored
// at handle externally: one sift-down followed by one sift-up.
func (h *Heap[K, V]) Update(handle *Handle[K, V]) {
	h.siftDown(handle.pos)
	h.siftUp(handle.pos)
}

// Remove deletes the item referenced by handle.
func (h *Heap[K, V]) Remove(handle *Handle[K, V]) (K, V) {
	k, v := handle.pos.key, handle.pos.val
	h.remove(handle)
	return k, v
}

func (h *Heap[K, V]) remove(handle *Handle[K, V]) {
	target := handle.pos

	if target == h.last {
		h.detachLast()
		return
	}

	// Move last's payload into target's slot, then drop the (now-stale)
	// last slot from the tree.
	swapContents(target, h.last)
	h.detachLast()

	// target now holds whatever was at the old last position; it may
	// violate heap order in either direction relative to its neighbors.
	h.siftDown(target)
	h.siftUp(target)
}

// detachLast unlinks the current last slot from the tree and recomputes
// the new last pointer (the node at position n-1 in level order).
func (h *Heap[K, V]) detachLast() {
	old := h.last
	if old.parent != nil {
		if old.isLeft {
			old.parent.left = nil
		} else {
			old.parent.right = nil
		}
	} else {
		h.root = nil
	}
	h.n--
	if h.n == 0 {
		h.last = nil
		return
	}
	h.last = nodeAtIndex(h.root, h.n)
}

// swapContents exchanges the logical items at a and b, repointing each
// item's Handle so Key()/Val()/Update()/Remove() keep working from the
// caller's perspective.
func swapContents[K any, V any](a, b *slot[K, V]) {
	a.key, b.key = b.key, a.key
	a.val, b.val = b.val, a.val
	a.handle, b.handle = b.handle, a.handle
	a.handle.pos = a
	b.handle.pos = b
}

func (h *Heap[K, V]) siftUp(s *slot[K, V]) {
	for s.parent != nil && h.less(s.key, s.parent.key) {
		swapContents(s, s.parent)
		s = s.parent
	}
}

func (h *Heap[K, V]) siftDown(s *slot[K, V]) {
	for {
		smallest := s
		if s.left != nil && h.less(s.left.key, smallest.key) {
			smallest = s.left
		}
		if s.right != nil && h.less(s.right.key, smallest.key) {
			smallest = s.right
		}
		if smallest == s {
			return
		}
		swapContents(s, smallest)
		s = smallest
	}
}

// nodeAtIndex descends from root to the node at 1-indexed level-order
// position idx, following idx's binary representation below its leading
// bit (bit i, from most to least significant after the leading one,
// selects right-child if 1, left-child if 0).
func nodeAtIndex[K any, V any](root *slot[K, V], idx int) *slot[K, V] {
	if idx == 1 {
		return root
	}
	// Find the highest set bit below idx's own leading bit.
	bit := 1
	for bit<<1 <= idx {
		bit <<= 1
	}
	bit >>= 1
	n := root
	for bit > 0 {
		if idx&bit != 0 {
			n = n.right
		} else {
			n = n.left
		}
		bit >>= 1
	}
	return n
}
