package rtree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestInsertSearchRemove(t *testing.T) {
	seed := uint64(42)
	tr := New[int, string](intLess, Config{Seed: &seed})

	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0}
	for _, k := range keys {
		require.True(t, tr.Insert(k, "v"))
	}
	assert.False(t, tr.Insert(3, "dup"))
	assert.Equal(t, len(keys), tr.Count())

	sorted := append([]int(nil), keys...)
	sort.Ints(sorted)
	assert.Equal(t, sorted, tr.InOrder())

	_, ok := tr.Remove(5)
	assert.True(t, ok)
	_, ok = tr.Remove(5)
	assert.False(t, ok)
	assert.Equal(t, len(keys)-1, tr.Count())
}

// TestSelectRankSeededSequence builds a fixed-seed randomized tree from
// 1..1000 in order, where Select(499) (0-indexed) must return key 500
// regardless of how the randomized rotations reshaped the tree.
func TestSelectRankSeededSequence(t *testing.T) {
	seed := uint64(1)
	tr := New[int, struct{}](intLess, Config{Seed: &seed})
	for i := 1; i <= 1000; i++ {
		require.True(t, tr.Insert(i, struct{}{}))
	}
	k, _, err := tr.Select(499)
	require.NoError(t, err)
	assert.Equal(t, 500, k)
}

func TestPosition(t *testing.T) {
	tr := New[int, int](intLess, Config{})
	for i, k := range []int{30, 10, 20, 40} {
		require.True(t, tr.Insert(k, i))
	}
	pos, ok := tr.Position(20)
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = tr.Position(99)
	assert.False(t, ok)
}

func TestJoinRedirectsCollisionsToDup(t *testing.T) {
	a := New[int, string](intLess, Config{})
	for _, k := range []int{1, 2, 3} {
		require.True(t, a.Insert(k, "a"))
	}
	b := New[int, string](intLess, Config{})
	for _, k := range []int{2, 3, 4} {
		require.True(t, b.Insert(k, "b"))
	}

	merged, dup := Join(a, b, Config{})

	assert.Equal(t, []int{1, 2, 3, 4}, merged.InOrder())
	assert.Equal(t, []int{2, 3}, dup.InOrder())
	v, ok := merged.Search(2)
	require.True(t, ok)
	assert.Equal(t, "a", v, "collision must leave a's value in place")
}

func TestJoinDupKeepsBothCopiesOfACollision(t *testing.T) {
	a := New[int, string](intLess, Config{})
	require.True(t, a.Insert(1, "a"))
	b := New[int, string](intLess, Config{})
	require.True(t, b.Insert(1, "b"))

	merged := JoinDup(a, b)
	assert.Equal(t, 2, merged.Count())
	assert.Equal(t, []int{1, 1}, merged.InOrder())
}
