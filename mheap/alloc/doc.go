// Package alloc provides a pool allocator with power-of-two size classes.
//
// # Overview
//
// Allocator serves Malloc, Calloc, Realloc and Free over a single growing
// heap segment. Every pool block starts with an 8-byte header word holding
// its size and flags; free blocks additionally carry predecessor and
// successor offsets in their first payload bytes, threading them into one
// circular free list.
//
// Requests larger than the threshold (Increment minus the header) skip the
// pool and go to a bulk.Provider. The header of a bulk block records the
// exact region length, and Free dispatches on the header's bulk flag, so a
// block of the largest pool class is always returned to the pool.
//
// # Usage Example
//
//	a, err := alloc.New(nil, nil, nil) // Region heap, mmap bulk, DefaultConfig
//	if err != nil {
//	    return err
//	}
//
//	p, err := a.Malloc(160)
//	if err != nil {
//	    return err // errors.Is(err, alloc.ErrExhausted)
//	}
//	buf := alloc.Bytes(p, 160)
//	copy(buf, data)
//
//	p, err = a.Realloc(p, 300) // copies, old block goes back to the pool
//	...
//	err = a.Free(p)
//
// # Size Classes
//
// With the default 4 KiB increment:
//
//	Class 32:     1 -   24 bytes
//	Class 64:    25 -   56 bytes
//	Class 128:   57 -  120 bytes
//	Class 256:  121 -  248 bytes
//	Class 512:  249 -  504 bytes
//	Class 1K:   505 - 1016 bytes
//	Class 2K:  1017 - 2040 bytes
//	Class 4K:  2041 - 4088 bytes
//	Bulk:      4089+      bytes (Align8(n) + 8 byte region)
//
// # Placement
//
// Malloc scans the free list first-fit from the anchor, the most recently
// inserted free block. A block larger than the class is halved repeatedly;
// the upper half of each split (the buddy) is linked in and becomes the
// anchor, the lower half is carved down to the class and handed out. When
// nothing fits the heap grows by one increment and the new block is placed
// directly.
//
// Freed blocks are not merged with their buddies. Churn within one class
// never grows the heap beyond its peak live size, but a block split for a
// small class stays split.
//
// # Thread Safety
//
// Allocator is NOT thread-safe. Wrap it in Synchronized, or use the
// process-wide instance in pkg/malloc, for concurrent callers.
package alloc
