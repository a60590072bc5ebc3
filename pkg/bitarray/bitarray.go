// Package bitarray implements a dynamically growing, bit-packed sequence.
// Storage is delegated to github.com/bits-and-blooms/bitset, which
// already does the word-packed allocation and auto-growth this
// package's Write/Push need; BitArray layers its own semantics (logical
// length separate from backing capacity, byte-oriented serialization,
// saturating dynamic shifts) on top of it.
package bitarray

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrOutOfRange is returned by Read for an index at or beyond the
// current logical length.
var ErrOutOfRange = errors.New("bitarray: index out of range")

// BitArray is a logical sequence of bits of length n, backed by a
// bits-and-blooms/bitset.BitSet sized in bytes (ceil(n/8) conceptually,
// though the backing set itself packs in machine words).
type BitArray struct {
	bs *bitset.BitSet
	n  uint // logical length in bits
}

// New returns an empty bit array.
func New() *BitArray {
	return &BitArray{bs: bitset.New(0)}
}

// NewSize returns a bit array of length n, all bits zero.
func NewSize(n uint) *BitArray {
	b := &BitArray{bs: bitset.New(n), n: n}
	return b
}

// Len reports the current logical length in bits.
func (b *BitArray) Len() uint { return b.n }

// ByteLen reports ceil(Len()/8), the byte count used by the text and
// C-array serializers.
func (b *BitArray) ByteLen() uint { return (b.n + 7) / 8 }

// Read returns the bit at position i (0 or 1).
func (b *BitArray) Read(i uint) (byte, error) {
	if i >= b.n {
		return 0, fmt.Errorf("%w: read at %d, length %d", ErrOutOfRange, i, b.n)
	}
	if b.bs.Test(i) {
		return 1, nil
	}
	return 0, nil
}

// Write sets the bit at position i to v (0 or 1), extending the logical
// length to at least i+1 if necessary.
func (b *BitArray) Write(i uint, v byte) error {
	if v != 0 && v != 1 {
		return fmt.Errorf("bitarray: value %d is not 0 or 1", v)
	}
	b.bs.SetTo(i, v != 0)
	if i+1 > b.n {
		b.n = i + 1
	}
	return nil
}

// Push appends v (0 or 1) as the new last bit.
func (b *BitArray) Push(v byte) error {
	return b.Write(b.n, v)
}

// Pop removes and returns the last bit.
func (b *BitArray) Pop() (byte, error) {
	if b.n == 0 {
		return 0, fmt.Errorf("%w: pop from empty bit array", ErrOutOfRange)
	}
	v, _ := b.Read(b.n - 1)
	b.n--
	return v, nil
}

// LeftShift shifts the array left by k positions within its current
// length: bits that fall off the high end are lost, zeros fill in at the
// low end, length is unchanged. Bit i is worth 2^i (see Uint64), so this
// is a multiply-by-2^k that truncates to Len() bits: bit i moves to i+k.
func (b *BitArray) LeftShift(k uint) {
	if k >= b.n {
		b.bs.ClearAll()
		return
	}
	nb := bitset.New(b.n)
	for i := uint(0); i+k < b.n; i++ {
		if b.bs.Test(i) {
			nb.Set(i + k)
		}
	}
	b.bs = nb
}

// RightShift shifts the array right by k positions within its current
// length: bits that fall off the low end are lost, zeros fill in at the
// high end, length is unchanged. This is a divide-by-2^k: bit i+k moves
// to i.
func (b *BitArray) RightShift(k uint) {
	if k >= b.n {
		b.bs.ClearAll()
		return
	}
	nb := bitset.New(b.n)
	for i := uint(0); i+k < b.n; i++ {
		if b.bs.Test(i + k) {
			nb.Set(i)
		}
	}
	b.bs = nb
}

// DynLeftShift grows the array by appending k zero bits at the high end.
func (b *BitArray) DynLeftShift(k uint) {
	for i := b.n; i < b.n+k; i++ {
		b.bs.Clear(i)
	}
	b.n += k
}

// DynRightShift drops the k most-significant bits, shrinking the array.
// If k >= Len(), the documented saturating edge case applies: the array
// becomes a single zero bit rather than fully empty.
func (b *BitArray) DynRightShift(k uint) {
	if k >= b.n {
		b.bs = bitset.New(1)
		b.n = 1
		return
	}
	b.n -= k
}

// RotateLeft performs a circular left rotation by k positions (mod Len()).
func (b *BitArray) RotateLeft(k uint) {
	if b.n == 0 {
		return
	}
	k %= b.n
	if k == 0 {
		return
	}
	nb := bitset.New(b.n)
	for i := uint(0); i < b.n; i++ {
		src := (i + b.n - k) % b.n
		if b.bs.Test(src) {
			nb.Set(i)
		}
	}
	b.bs = nb
}

// RotateRight performs a circular right rotation by k positions (mod Len()).
func (b *BitArray) RotateRight(k uint) {
	if b.n == 0 {
		return
	}
	k %= b.n
	b.RotateLeft(b.n - k)
}

// Uint64 interprets the array as a little-endian-within-the-array unsigned
// integer (bit 0 is the least significant bit), the way bits pushed one
// at a time from a byte's LSB accumulate into that byte's value. Len()
// must be <= 64.
func (b *BitArray) Uint64() (uint64, error) {
	if b.n > 64 {
		return 0, fmt.Errorf("bitarray: length %d exceeds 64 bits", b.n)
	}
	var v uint64
	for i := uint(0); i < b.n; i++ {
		if b.bs.Test(i) {
			v |= 1 << i
		}
	}
	return v, nil
}

// FromUint64 returns a bit array of length n holding the low n bits of v.
func FromUint64(v uint64, n uint) *BitArray {
	b := NewSize(n)
	for i := uint(0); i < n; i++ {
		if v&(1<<i) != 0 {
			b.bs.Set(i)
		}
	}
	return b
}

// Clone returns an independent copy.
func (b *BitArray) Clone() *BitArray {
	return &BitArray{bs: b.bs.Clone(), n: b.n}
}

// Equal reports whether two bit arrays have the same length and bits.
func (b *BitArray) Equal(o *BitArray) bool {
	if b.n != o.n {
		return false
	}
	for i := uint(0); i < b.n; i++ {
		if b.bs.Test(i) != o.bs.Test(i) {
			return false
		}
	}
	return true
}
