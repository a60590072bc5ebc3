package chainhash

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
	assert.Equal(t, 1, tb.Len())

	_, ok = tb.Remove(99)
	assert.False(t, ok)
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

func TestSearchOrInsert(t *testing.T) {
	tb := newIntTable(Config{})
	v, inserted := tb.SearchOrInsert(7, "first")
	assert.True(t, inserted)
	assert.Equal(t, "first", v)

	v, inserted = tb.SearchOrInsert(7, "second")
	assert.False(t, inserted)
	assert.Equal(t, "first", v)
}

func TestAutoGrowKeepsAllEntriesReachable(t *testing.T) {
	tb := newIntTable(Config{AutoResize: true, InitialCapacity: 3, AlphaHi: 1.0})
	const n = 500
	for i := 0; i < n; i++ {
		require.True(t, tb.Insert(i, "v"))
	}
	assert.Equal(t, n, tb.Len())
	for i := 0; i < n; i++ {
		_, ok := tb.Search(i)
		require.True(t, ok, "key %d missing after growth", i)
	}
	assert.Less(t, tb.Alpha(), DefaultAlphaHi+0.5)
}

func TestAutoShrinkKeepsAllEntriesReachable(t *testing.T) {
	tb := newIntTable(Config{AutoResize: true, InitialCapacity: 101, AlphaLo: 0.3, AlphaHi: 10})
	keys := make([]int, 0, 80)
	for i := 0; i < 80; i++ {
		keys = append(keys, i)
		tb.Insert(i, "v")
	}
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys[:70] {
		_, ok := tb.Remove(k)
		require.True(t, ok)
	}
	for _, k := range keys[70:] {
		_, ok := tb.Search(k)
		require.True(t, ok)
	}
	assert.Equal(t, 10, tb.Len())
}

func TestAutoShrinkNeverGoesBelowInitialCapacity(t *testing.T) {
	tb := newIntTable(Config{AutoResize: true, InitialCapacity: 101, AlphaLo: 0.3, AlphaHi: 10})
	initialCap := tb.Cap()
	for i := 0; i < 80; i++ {
		tb.Insert(i, "v")
	}
	for i := 0; i < 79; i++ {
		tb.Remove(i)
	}
	assert.GreaterOrEqual(t, tb.Cap(), initialCap)
}

func TestForEachVisitsAllEntries(t *testing.T) {
	tb := newIntTable(Config{})
	want := map[int]string{1: "a", 2: "b", 3: "c"}
	for k, v := range want {
		tb.Insert(k, v)
	}
	got := map[int]string{}
	tb.ForEach(func(k int, v string) bool {
		got[k] = v
		return true
	})
	assert.Equal(t, want, got)
}
