package linhash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alephw/internal/xhash"
)

func intKeyBytes(k int) []byte { return xhash.Uint64Bytes(uint64(k)) }
func intEq(a, b int) bool      { return a == b }

func newIntTable(cfg Config) *Table[int, string] {
	return New[int, string](intKeyBytes, intEq, cfg)
}

func TestInsertSearchRemove(t *testing.T) {
	tb := newIntTable(Config{})
	require.True(t, tb.Insert(1, "one"))
	require.True(t, tb.Insert(2, "two"))
	require.False(t, tb.Insert(1, "uno"))

	v, ok := tb.Search(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	v, ok = tb.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = tb.Search(1)
	assert.False(t, ok)

	_, ok = tb.Remove(99)
	assert.False(t, ok)
}

func TestInsertionOrderPreservedThroughSplitsAndMerges(t *testing.T) {
	tb := newIntTable(Config{InitialCapacity: 2, AlphaHi: 0.5, AlphaLo: 0.1})
	var want []int
	for i := 0; i < 300; i++ {
		want = append(want, i)
		require.True(t, tb.Insert(i, "v"))
	}
	assert.Equal(t, want, tb.Keys())
	assert.Greater(t, tb.Doublings(), 0)

	for _, k := range want[:250] {
		_, ok := tb.Remove(k)
		require.True(t, ok)
	}
	assert.Equal(t, want[250:], tb.Keys())

	for _, k := range want[250:] {
		_, ok := tb.Search(k)
		require.True(t, ok)
	}
}

func TestRandomizedInsertRemoveAgainstReferenceSet(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tb := newIntTable(Config{InitialCapacity: 4})
	present := map[int]bool{}
	for i := 0; i < 2000; i++ {
		k := rng.Intn(400)
		if rng.Intn(3) == 0 && present[k] {
			_, ok := tb.Remove(k)
			assert.True(t, ok)
			delete(present, k)
		} else if !present[k] {
			ok := tb.Insert(k, "v")
			assert.True(t, ok)
			present[k] = true
		}
	}
	assert.Equal(t, len(present), tb.Len())
	for k := range present {
		_, ok := tb.Search(k)
		assert.True(t, ok, "key %d missing", k)
	}
}

func TestReplaceOverwrites(t *testing.T) {
	tb := newIntTable(Config{})
	tb.Insert(5, "a")
	tb.Replace(5, "b")
	v, ok := tb.Search(5)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, tb.Len())
}
