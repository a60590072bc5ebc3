//go:build unix

// Package seed supplies the default entropy used to seed pkg/rtree's
// per-instance PRNG when the caller doesn't pass an explicit seed,
// keeping that state per-instance rather than process-global. On unix
// this reads straight from the kernel via golang.org/x/sys/unix.
package seed

import "golang.org/x/sys/unix"

// Uint64 returns 8 bytes of OS entropy as a seed.
func Uint64() uint64 {
	var buf [8]byte
	for filled := 0; filled < len(buf); {
		n, err := unix.GetRandom(buf[filled:], 0)
		if err != nil || n == 0 {
			return fallback()
		}
		filled += n
	}
	var v uint64
	for i, b := range buf {
		v |= uint64(b) << (8 * i)
	}
	return v
}
