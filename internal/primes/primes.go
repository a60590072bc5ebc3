// Package primes gives hash tables a sizing table: the next prime at or
// above a requested capacity, and the previous one at or below it.
package primes

import "math/bits"

// seedTable holds a handful of primes near the small end so NextPrime
// doesn't have to trial-divide its way up from 2 for the common case of a
// freshly constructed table.
var seedTable = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
}

// NextPrime returns the smallest prime p >= n. n < 2 yields 2.
func NextPrime(n uint64) uint64 {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for i, p := range seedTable {
		if p >= n {
			return p
		}
		if i == len(seedTable)-1 {
			break
		}
	}
	for ; !isPrime(n); n += 2 {
	}
	return n
}

// PrevPrime returns the largest prime p <= n, or 2 if no such prime exists.
func PrevPrime(n uint64) uint64 {
	if n <= 2 {
		return 2
	}
	for ; n > 2; n-- {
		if isPrime(n) {
			return n
		}
	}
	return 2
}

// isPrime is a plain trial-division test; the tables this package sizes
// never need more than a few thousand candidates, so Miller-Rabin would be
// premature.
func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// BitLen reports the number of bits needed to represent n.
func BitLen(n uint64) int {
	return bits.Len64(n)
}
