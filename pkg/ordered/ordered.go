// Package ordered provides STL-style ordered-set and ordered-map adapters
// layered on top of the randomized tree in pkg/rtree.
package ordered

import "alephw/pkg/rtree"

// Set is an ordered set of comparable keys.
type Set[K any] struct {
	t *rtree.Tree[K, struct{}]
}

// NewSet constructs an empty ordered set.
func NewSet[K any](less rtree.Less[K], cfg rtree.Config) *Set[K] {
	return &Set[K]{t: rtree.New[K, struct{}](less, cfg)}
}

// Insert adds k, reporting whether it was newly added.
func (s *Set[K]) Insert(k K) bool { return s.t.Insert(k, struct{}{}) }

// Contains reports whether k is present.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.t.Search(k)
	return ok
}

// Remove deletes k, reporting whether it was present.
func (s *Set[K]) Remove(k K) bool {
	_, ok := s.t.Remove(k)
	return ok
}

// Len reports the number of elements.
func (s *Set[K]) Len() int { return s.t.Count() }

// Keys returns every element in ascending order.
func (s *Set[K]) Keys() []K { return s.t.InOrder() }

// Select returns the key at in-order rank i (0-indexed).
func (s *Set[K]) Select(i int) (K, error) {
	k, _, err := s.t.Select(i)
	return k, err
}

// Map is an ordered map from keys K to values V.
type Map[K any, V any] struct {
	t *rtree.Tree[K, V]
}

// NewMap constructs an empty ordered map.
func NewMap[K any, V any](less rtree.Less[K], cfg rtree.Config) *Map[K, V] {
	return &Map[K, V]{t: rtree.New[K, V](less, cfg)}
}

// Put inserts k/v, reporting whether k was newly added (false if k was
// already present — use Replace to overwrite).
func (m *Map[K, V]) Put(k K, v V) bool { return m.t.Insert(k, v) }

// Replace inserts k/v unconditionally, overwriting any existing value.
func (m *Map[K, V]) Replace(k K, v V) {
	m.t.Remove(k)
	m.t.Insert(k, v)
}

// Get returns the value under k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) { return m.t.Search(k) }

// Remove deletes k, returning its value and whether it was present.
func (m *Map[K, V]) Remove(k K) (V, bool) { return m.t.Remove(k) }

// Len reports the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Count() }

// Keys returns every key in ascending order.
func (m *Map[K, V]) Keys() []K { return m.t.InOrder() }
