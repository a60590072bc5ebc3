package pqheap

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestExtractMinOrder(t *testing.T) {
	h := New[int, string](intLess)
	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0}
	for _, k := range keys {
		h.Insert(k, "v")
	}
	sorted := append([]int(nil), keys...)
	sort.Ints(sorted)

	var got []int
	for h.Len() > 0 {
		k, _, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, k)
	}
	assert.Equal(t, sorted, got)
}

func TestSingletonExtract(t *testing.T) {
	h := New[int, int](intLess)
	h.Insert(42, 1)
	k, v, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, 42, k)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, h.Len())

	_, _, err = h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestHandleRemoveArbitrary(t *testing.T) {
	h := New[int, int](intLess)
	handles := map[int]*Handle[int, int]{}
	for _, k := range []int{10, 20, 30, 40, 50, 60, 70} {
		handles[k] = h.Insert(k, k)
	}
	hd := handles[40]
	k, v := h.Remove(hd)
	assert.Equal(t, 40, k)
	assert.Equal(t, 40, v)

	var got []int
	for h.Len() > 0 {
		k, _, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, k)
	}
	assert.Equal(t, []int{10, 20, 30, 50, 60, 70}, got)
}

func TestUpdateAfterExternalMutation(t *testing.T) {
	h := New[int, int](intLess)
	handles := map[int]*Handle[int, int]{}
	for _, k := range []int{10, 20, 30, 40} {
		handles[k] = h.Insert(k, k)
	}
	hd := handles[40]
	// Externally mutate the key stored behind hd to a smaller value, then
	// let Update restore heap order from the handle's current position.
	hd.SetKey(5)
	h.Update(hd)

	k, _, err := h.Peek()
	require.NoError(t, err)
	assert.Equal(t, 5, k)
}

func TestRandomizedAgainstSort(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	h := New[int, int](intLess)
	var input []int
	for i := 0; i < 200; i++ {
		k := rng.Intn(1000)
		input = append(input, k)
		h.Insert(k, k)
	}
	sort.Ints(input)
	var got []int
	for h.Len() > 0 {
		k, _, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, k)
	}
	assert.Equal(t, input, got)
}
