// Package chainhash is a separate-chaining hash table: each bucket holds
// an intrusive singly-linked chain of entries, and the table resizes
// itself to the next prime capacity as the load factor alpha = n/len
// crosses configured bounds.
package chainhash

import (
	"errors"

	"alephw/internal/primes"
	"alephw/internal/xhash"
)

// DefaultAlphaLo and DefaultAlphaHi bound the load factor n/len outside
// which the table resizes (grow above hi, shrink below lo).
const (
	DefaultAlphaLo = 0.2
	DefaultAlphaHi = 2.0
)

// ErrNotFound is the package's sentinel for an absent key. Search and
// Remove do not return it; they report absence through their bool result.
var ErrNotFound = errors.New("chainhash: key not found")

// Config tunes a Table's resize behavior.
type Config struct {
	AlphaLo         float64 // shrink threshold, 0 selects DefaultAlphaLo
	AlphaHi         float64 // grow threshold, 0 selects DefaultAlphaHi
	InitialCapacity uint64
	AutoResize      bool
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
		c.InitialCapacity = 11
	}
	if c.Hasher == nil {
		c.Hasher = xhash.Default
	}
	return c
}

type entry[K any, V any] struct {
	key  K
	val  V
	next *entry[K, V]
}

// KeyBytes converts a key to the byte slice hashed for bucket placement.
type KeyBytes[K any] func(k K) []byte

// Eq reports whether two keys are equal (collision-resolution within a
// bucket; a Hasher alone cannot distinguish colliding keys).
type Eq[K any] func(a, b K) bool

// Table is a separate-chaining hash table over keys K with values V.
type Table[K any, V any] struct {
	cfg     Config
	buckets []*entry[K, V]
	n       uint64
	baseLen uint64 // len(buckets) never shrinks below this
	seed    xhash.Seed
	keyOf   KeyBytes[K]
	eq      Eq[K]
}

// New constructs an empty table. keyOf renders a key to bytes for
// hashing; eq resolves collisions within a bucket chain.
func New[K any, V any](keyOf KeyBytes[K], eq Eq[K], cfg Config) *Table[K, V] {
	cfg = cfg.normalize()
	cap := primes.NextPrime(cfg.InitialCapacity)
	return &Table[K, V]{
		cfg:     cfg,
		buckets: make([]*entry[K, V], cap),
		baseLen: cap,
		seed:    xhash.NewSeed(),
		keyOf:   keyOf,
		eq:      eq,
	}
}

// Len reports the number of entries stored.
func (t *Table[K, V]) Len() int { return int(t.n) }

// Cap reports the current bucket array length.
func (t *Table[K, V]) Cap() int { return len(t.buckets) }

// Alpha reports the current load factor n/len(buckets).
func (t *Table[K, V]) Alpha() float64 {
	return float64(t.n) / float64(len(t.buckets))
}

func (t *Table[K, V]) bucketIndex(k K) uint64 {
	h := t.cfg.Hasher(t.seed, t.keyOf(k))
	return h % uint64(len(t.buckets))
}

// Search returns the value stored under k, if any.
func (t *Table[K, V]) Search(k K) (V, bool) {
	idx := t.bucketIndex(k)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if t.eq(e.key, k) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Insert adds k/v, reporting whether k was newly added. An existing key
// is left untouched — use Replace to overwrite.
func (t *Table[K, V]) Insert(k K, v V) bool {
	idx := t.bucketIndex(k)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if t.eq(e.key, k) {
			return false
		}
	}
	t.buckets[idx] = &entry[K, V]{key: k, val: v, next: t.buckets[idx]}
	t.n++
	if t.cfg.AutoResize && t.cfg.AlphaHi > 0 && t.Alpha() >= t.cfg.AlphaHi {
		t.resize(primes.NextPrime(2 * uint64(len(t.buckets))))
	}
	return true
}

// Replace inserts k/v unconditionally, overwriting any existing value
// under k.
func (t *Table[K, V]) Replace(k K, v V) {
	idx := t.bucketIndex(k)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if t.eq(e.key, k) {
			e.val = v
			return
		}
	}
	t.Insert(k, v)
}

// SearchOrInsert returns the existing value under k, or inserts k with
// the given value v and returns v, reporting whether it was inserted.
func (t *Table[K, V]) SearchOrInsert(k K, v V) (V, bool) {
	if existing, ok := t.Search(k); ok {
		return existing, false
	}
	t.Insert(k, v)
	return v, true
}

// Remove deletes k, returning its value and whether it was present.
func (t *Table[K, V]) Remove(k K) (V, bool) {
	idx := t.bucketIndex(k)
	var prev *entry[K, V]
	for e := t.buckets[idx]; e != nil; e = e.next {
		if t.eq(e.key, k) {
			if prev == nil {
				t.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			t.n--
			if t.cfg.AutoResize && t.cfg.AlphaLo > 0 && uint64(len(t.buckets)) > t.baseLen && t.Alpha() < t.cfg.AlphaLo {
				newCap := primes.PrevPrime(uint64(len(t.buckets)) / 2)
				if newCap < t.baseLen {
					newCap = t.baseLen
				}
				t.resize(newCap)
			}
			return e.val, true
		}
		prev = e
	}
	var zero V
	return zero, false
}

// Resize rehashes the table into a bucket array of the given capacity,
// rounded up to the next prime. Useful for pre-sizing before a known
// bulk insert.
func (t *Table[K, V]) Resize(capacity uint64) {
	t.resize(primes.NextPrime(capacity))
}

func (t *Table[K, V]) resize(newCap uint64) {
	if newCap < 1 {
		newCap = 1
	}
	newBuckets := make([]*entry[K, V], newCap)
	for _, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			idx := t.cfg.Hasher(t.seed, t.keyOf(e.key)) % newCap
			e.next = newBuckets[idx]
			newBuckets[idx] = e
			e = next
		}
	}
	t.buckets = newBuckets
}

// ForEach visits every key/value pair in unspecified order, stopping
// early if visit returns false.
func (t *Table[K, V]) ForEach(visit func(k K, v V) bool) {
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			if !visit(e.key, e.val) {
				return
			}
		}
	}
}

// Keys returns every key in unspecified order.
func (t *Table[K, V]) Keys() []K {
	out := make([]K, 0, t.n)
	t.ForEach(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}
