// Package xhash is the hash-function family shared by the chaining and
// linear hash tables: a small set of byte/key hashers plus a default
// selection, each parameterized by a per-table seed so that two tables
// never degrade together under the same adversarial key set.
package xhash

import (
	"encoding/binary"
	"hash/fnv"
	"hash/maphash"
)

// Seed is an opaque per-table seed. Zero-value Seed is not valid; use
// NewSeed to obtain one.
type Seed struct {
	mh maphash.Seed
	fn uint64
}

// NewSeed returns a fresh random seed, suitable for one hash table's
// lifetime. Two tables sharing a Seed would hash identically, which is
// harmless for correctness but defeats the point of seeding against
// adversarial inputs, so callers normally call NewSeed once per table.
func NewSeed() Seed {
	return Seed{mh: maphash.MakeSeed(), fn: fnvSeed()}
}

// fnvSeed derives a secondary seed from a maphash draw so the FNV-based
// hasher below isn't keyed identically to the maphash-based one.
func fnvSeed() uint64 {
	var h maphash.Hash
	h.SetSeed(maphash.MakeSeed())
	return h.Sum64()
}

// Hasher hashes an arbitrary byte-string key to a uint64. Callers that hash
// non-byte keys (ints, structs) first serialize them; see Uint64Bytes
// and the KeyBytes function types in the chainhash/linhash packages.
type Hasher func(seed Seed, key []byte) uint64

// Default is the hash table family's default hasher: Go's built-in
// maphash algorithm (AES-based on hardware that supports it, a fast
// fallback otherwise), seeded per table. This is the "default selection"
// member of the family.
func Default(seed Seed, key []byte) uint64 {
	var h maphash.Hash
	h.SetSeed(seed.mh)
	h.Write(key)
	return h.Sum64()
}

// FNV1a is an alternate family member: the 64-bit FNV-1a hash, folded
// together with the seed so that FNV1a and Default disagree on collision
// patterns for the same key set (useful when a caller wants two
// independent hashes of the same key, e.g. double hashing or a Bloom
// filter built atop this table).
func FNV1a(seed Seed, key []byte) uint64 {
	h := fnv.New64a()
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed.fn)
	h.Write(seedBytes[:])
	h.Write(key)
	return h.Sum64()
}

// Uint64Bytes renders an unsigned integer key as the byte string the
// Hasher functions expect.
func Uint64Bytes(n uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	return b[:]
}
