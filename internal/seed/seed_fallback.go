package seed

import (
	"crypto/rand"
	"encoding/binary"
)

// fallback is used on any platform where the GetRandom syscall path (or
// its build-tagged non-unix sibling) can't be taken.
func fallback() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand.Read on a supported Go platform does not fail in
		// practice; a zero seed still yields a valid, merely
		// non-random, PRNG stream.
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}
