package format

import "math/bits"

// Align8 returns n aligned up to the next 8-byte (word) boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + WordAlignmentMask) &^ WordAlignmentMask
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 returns the smallest power of two >= n. NextPow2(0) and
// NextPow2(1) are both 1.
//
// Example:
//
//	NextPow2(168)  = 256
//	NextPow2(256)  = 256
//	NextPow2(4096) = 4096
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
