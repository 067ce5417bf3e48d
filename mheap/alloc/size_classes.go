package alloc

import "github.com/joshuapare/poolalloc/internal/format"

// classify returns the block size for a pool request of n bytes: the
// smallest power of two that holds n payload bytes plus the header, and
// never less than the minimum class. Caller guarantees 0 < n <= threshold,
// so the result never exceeds the increment.
func (a *Allocator) classify(n int) int {
	return max(format.NextPow2(n+format.HeaderSize), a.cfg.MinClass)
}

// SizeClass describes one pool block size.
type SizeClass struct {
	Size       int // Block size including header
	MinRequest int // Smallest request mapped to this class
	MaxRequest int // Largest request mapped to this class (usable payload)
}

// Classes returns the pool size classes for c, smallest first.
func (c Config) Classes() []SizeClass {
	var classes []SizeClass
	lo := 1
	for size := c.MinClass; size <= c.Increment; size <<= 1 {
		hi := size - format.HeaderSize
		classes = append(classes, SizeClass{Size: size, MinRequest: lo, MaxRequest: hi})
		lo = hi + 1
	}
	return classes
}
