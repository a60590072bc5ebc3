package ordered

import "errors"

// ErrIterOverflow is raised by Next when the iterator is already past the
// last element — iterators never silently advance past end.
var ErrIterOverflow = errors.New("ordered: iterator advanced past end")

// MapIter walks a Map in ascending key order by rank. Any mutation of the
// underlying Map invalidates every other iterator over it except the one
// explicitly returned by RemoveAt.
type MapIter[K any, V any] struct {
	m   *Map[K, V]
	pos int
}

// Iterator returns a fresh iterator positioned before the first element.
func (m *Map[K, V]) Iterator() *MapIter[K, V] { return &MapIter[K, V]{m: m, pos: -1} }

// Valid reports whether the iterator is positioned on an element.
func (it *MapIter[K, V]) Valid() bool { return it.pos >= 0 && it.pos < it.m.Len() }

// Next advances the iterator, erroring if it was already past the end or
// if the advance moves it past the last element.
func (it *MapIter[K, V]) Next() error {
	if it.pos >= it.m.Len() {
		return ErrIterOverflow
	}
	it.pos++
	if it.pos >= it.m.Len() {
		return ErrIterOverflow
	}
	return nil
}

// Key and Value read the current element; both panic-free zero-value on
// an invalid position, mirroring how bst.Select reports range errors via
// a returned error rather than a panic.
func (it *MapIter[K, V]) Key() K {
	k, _, _ := it.m.t.Select(it.pos)
	return k
}

func (it *MapIter[K, V]) Value() V {
	_, v, _ := it.m.t.Select(it.pos)
	return v
}

// RemoveAt deletes the element the iterator currently points to and
// returns an iterator repositioned at the next element in sequence — the
// one mutation exempted from blanket iterator invalidation, mirroring
// the remove-and-continue pattern of an STL erase(iterator) call.
func (it *MapIter[K, V]) RemoveAt() *MapIter[K, V] {
	k := it.Key()
	it.m.Remove(k)
	return &MapIter[K, V]{m: it.m, pos: it.pos}
}
