package llist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushBackOrder(t *testing.T) {
	h := NewHead[int]()
	assert.True(t, h.Empty())
	h.PushBack(1)
	h.PushBack(2)
	h.PushBack(3)

	var got []int
	for n := h.Front(); n != nil; n = h.Next(n) {
		got = append(got, n.Value)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestPushFrontOrder(t *testing.T) {
	h := NewHead[string]()
	h.PushFront("c")
	h.PushFront("b")
	h.PushFront("a")

	var got []string
	for n := h.Front(); n != nil; n = h.Next(n) {
		got = append(got, n.Value)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestCutRemovesMiddleElement(t *testing.T) {
	h := NewHead[int]()
	h.PushBack(1)
	mid := h.PushBack(2)
	h.PushBack(3)

	assert.True(t, Linked(mid))
	Cut(mid)
	assert.False(t, Linked(mid))

	var got []int
	for n := h.Front(); n != nil; n = h.Next(n) {
		got = append(got, n.Value)
	}
	assert.Equal(t, []int{1, 3}, got)
}

func TestCutIsIdempotent(t *testing.T) {
	h := NewHead[int]()
	n := h.PushBack(1)
	Cut(n)
	assert.NotPanics(t, func() { Cut(n) })
	assert.True(t, h.Empty())
}

func TestStackPushPopOrder(t *testing.T) {
	var s SStack[int]
	assert.True(t, s.Empty())
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())

	v, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	var got []int
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 2, 1}, got)
	assert.True(t, s.Empty())

	_, ok = s.Pop()
	assert.False(t, ok)
}
