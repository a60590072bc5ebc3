// Package linhash is a linear hash table: instead of rehashing every
// entry on overflow like pkg/chainhash, it grows and shrinks one bucket
// at a time, splitting bucket p into p and p+M whenever the load factor
// crosses the high threshold, and merging the mirror image back on the
// way down. Each entry also carries a global insertion-order link
// (pkg/llist) so iteration can walk entries in the order they were
// added, something hashing by bucket alone cannot offer.
package linhash

import (
	"errors"

	"alephw/internal/xhash"
	"alephw/pkg/llist"
)

// DefaultAlphaLo and DefaultAlphaHi bound the load factor n/(M+p)
// outside which the table splits or merges buckets. linhash runs
// hotter than pkg/chainhash by default since each split only touches
// one bucket rather than rehashing the whole table.
const (
	DefaultAlphaLo = 0.2
	DefaultAlphaHi = 0.75
)

// ErrNotFound is the package's sentinel for an absent key. Search and
// Remove do not return it; they report absence through their bool result.
var ErrNotFound = errors.New("linhash: key not found")

// KeyBytes converts a key to the byte slice hashed for bucket placement.
type KeyBytes[K any] func(k K) []byte

// Eq reports whether two keys are equal.
type Eq[K any] func(a, b K) bool

// Config tunes a Table's split/merge behavior.
type Config struct {
	AlphaLo         float64
	AlphaHi         float64
	InitialCapacity uint64
	Hasher          xhash.Hasher
}

func (c Config) normalize() Config {
	if c.AlphaLo == 0 {
		c.AlphaLo = DefaultAlphaLo
	}
	if c.AlphaHi == 0 {
		c.AlphaHi = DefaultAlphaHi
	}
	if c.InitialCapacity == 0 {
		c.InitialCapacity = 8
	}
	if c.Hasher == nil {
		c.Hasher = xhash.Default
	}
	return c
}

type entry[K any, V any] struct {
	key       K
	val       V
	chainNext *entry[K, V]
	order     *llist.Node[*entry[K, V]]
}

// Table is a linear hash table over keys K with values V.
type Table[K any, V any] struct {
	cfg     Config
	buckets []*entry[K, V]
	m, mm   uint64 // current base size, and its double
	p       uint64 // next bucket to split (grow) or merge (shrink)
	mp      uint64 // logical bucket count, m+p
	l       uint64 // number of full-table doublings so far
	baseLen uint64 // mp never shrinks below this
	n       uint64
	seed    xhash.Seed
	keyOf   KeyBytes[K]
	eq      Eq[K]
	order   *llist.Head[*entry[K, V]]
}

// New constructs an empty table.
func New[K any, V any](keyOf KeyBytes[K], eq Eq[K], cfg Config) *Table[K, V] {
	cfg = cfg.normalize()
	m := cfg.InitialCapacity
	return &Table[K, V]{
		cfg:     cfg,
		buckets: make([]*entry[K, V], m),
		m:       m,
		mm:      2 * m,
		mp:      m,
		baseLen: m,
		seed:    xhash.NewSeed(),
		keyOf:   keyOf,
		eq:      eq,
		order:   llist.NewHead[*entry[K, V]](),
	}
}

// Len reports the number of entries stored.
func (t *Table[K, V]) Len() int { return int(t.n) }

// BucketCount reports the current logical bucket count M+p.
func (t *Table[K, V]) BucketCount() int { return int(t.mp) }

// Doublings reports how many times the table's base size has doubled.
func (t *Table[K, V]) Doublings() int { return int(t.l) }

// Alpha reports the current load factor n/(M+p).
func (t *Table[K, V]) Alpha() float64 {
	return float64(t.n) / float64(t.mp)
}

func (t *Table[K, V]) index(k K) uint64 {
	h := t.cfg.Hasher(t.seed, t.keyOf(k))
	i := h % t.m
	if i < t.p {
		return h % t.mm
	}
	return i
}

func (t *Table[K, V]) ensureCap(idx uint64) {
	if idx < uint64(len(t.buckets)) {
		return
	}
	grown := make([]*entry[K, V], idx+1)
	copy(grown, t.buckets)
	t.buckets = grown
}

// Search returns the value stored under k, if any.
func (t *Table[K, V]) Search(k K) (V, bool) {
	idx := t.index(k)
	if idx >= uint64(len(t.buckets)) {
		var zero V
		return zero, false
	}
	for e := t.buckets[idx]; e != nil; e = e.chainNext {
		if t.eq(e.key, k) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Insert adds k/v, reporting whether k was newly added.
func (t *Table[K, V]) Insert(k K, v V) bool {
	idx := t.index(k)
	t.ensureCap(idx)
	for e := t.buckets[idx]; e != nil; e = e.chainNext {
		if t.eq(e.key, k) {
			return false
		}
	}
	e := &entry[K, V]{key: k, val: v, chainNext: t.buckets[idx]}
	t.buckets[idx] = e
	e.order = t.order.PushBack(e)
	t.n++
	if t.cfg.AlphaHi > 0 && t.Alpha() >= t.cfg.AlphaHi {
		t.expand()
	}
	return true
}

// Replace inserts k/v unconditionally, overwriting any existing value.
func (t *Table[K, V]) Replace(k K, v V) {
	idx := t.index(k)
	if idx < uint64(len(t.buckets)) {
		for e := t.buckets[idx]; e != nil; e = e.chainNext {
			if t.eq(e.key, k) {
				e.val = v
				return
			}
		}
	}
	t.Insert(k, v)
}

// Remove deletes k, returning its value and whether it was present.
func (t *Table[K, V]) Remove(k K) (V, bool) {
	idx := t.index(k)
	if idx >= uint64(len(t.buckets)) {
		var zero V
		return zero, false
	}
	var prev *entry[K, V]
	for e := t.buckets[idx]; e != nil; e = e.chainNext {
		if t.eq(e.key, k) {
			if prev == nil {
				t.buckets[idx] = e.chainNext
			} else {
				prev.chainNext = e.chainNext
			}
			llist.Cut(e.order)
			t.n--
			if t.cfg.AlphaLo > 0 && t.mp > t.baseLen && t.Alpha() <= t.cfg.AlphaLo {
				t.contract()
			}
			return e.val, true
		}
		prev = e
	}
	var zero V
	return zero, false
}

// expand splits bucket p into p and p+M, repeating while the table is
// still over the high load threshold (an insert can push the load far
// enough above threshold to require several splits).
func (t *Table[K, V]) expand() {
	for t.Alpha() >= t.cfg.AlphaHi {
		t.ensureCap(t.mp)
		src := t.buckets[t.p]
		if src != nil {
			var keep, moved *entry[K, V]
			for e := src; e != nil; {
				next := e.chainNext
				h := t.cfg.Hasher(t.seed, t.keyOf(e.key)) % t.mm
				if h == t.p {
					e.chainNext = keep
					keep = e
				} else {
					e.chainNext = moved
					moved = e
				}
				e = next
			}
			t.buckets[t.p] = keep
			t.buckets[t.mp] = moved
		}
		t.p++
		t.mp++
		if t.p == t.m {
			t.l++
			t.p = 0
			t.m = t.mm
			t.mp = t.mm
			t.mm *= 2
		}
	}
}

// contract merges bucket p+M back into p, the inverse of expand,
// repeating while still under the low load threshold and above the
// table's initial size.
func (t *Table[K, V]) contract() {
	for t.mp > t.baseLen && t.Alpha() <= t.cfg.AlphaLo {
		if t.p == 0 {
			t.l--
			t.mm = t.m
			t.m /= 2
			t.p = t.m - 1
		} else {
			t.p--
		}
		t.mp--
		if t.mp < uint64(len(t.buckets)) {
			src := t.buckets[t.mp]
			if src != nil {
				tail := src
				for tail.chainNext != nil {
					tail = tail.chainNext
				}
				tail.chainNext = t.buckets[t.p]
				t.buckets[t.p] = src
				t.buckets[t.mp] = nil
			}
		}
	}
}

// ForEach visits every key/value pair in insertion order.
func (t *Table[K, V]) ForEach(visit func(k K, v V) bool) {
	for n := t.order.Front(); n != nil; n = t.order.Next(n) {
		e := n.Value
		if !visit(e.key, e.val) {
			return
		}
	}
}

// Keys returns every key in insertion order.
func (t *Table[K, V]) Keys() []K {
	out := make([]K, 0, t.n)
	t.ForEach(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}
