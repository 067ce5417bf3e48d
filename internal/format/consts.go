// Package format holds the low-level layout of pool heap blocks: the header
// word that precedes every payload, the free-list links stored inside free
// payloads, and the alignment helpers the allocator builds on. Nothing here
// allocates or keeps state.
package format

const (
	// WordSize is the natural word of the heap. Every header and link is one
	// word and every payload starts on a word boundary.
	WordSize = 8

	// WordAlignmentMask is used by Align8.
	WordAlignmentMask = WordSize - 1

	// HeaderSize is the number of bytes used by the header word preceding
	// every block payload (pool or bulk).
	HeaderSize = WordSize

	// LinkSize is the number of payload bytes a free block needs for its
	// predecessor and successor links.
	LinkSize = 2 * WordSize

	// MinBlockSize is the smallest power of two that holds a header plus
	// both free-list links.
	MinBlockSize = 32

	// DefaultIncrement is the number of bytes the pool heap grows by.
	DefaultIncrement = 1 << 12

	// NoBlock marks an absent block offset (empty free list).
	NoBlock = -1
)

// Header flag bits. Block sizes are multiples of 8, so the low three bits of
// the header word are free for flags.
const (
	FlagAllocated uint64 = 1 << 0
	FlagBulk      uint64 = 1 << 1

	flagMask uint64 = WordAlignmentMask
)
