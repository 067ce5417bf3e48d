// Package mheap provides the backing store for the pool heap.
//
// # Overview
//
// A Segment is a contiguous data segment that only grows at its end, the way
// a process data segment grows under sbrk. Grow returns the previous end so
// the caller can format the new bytes; a failed Grow leaves the segment
// exactly as it was.
//
// Region is the production Segment. It reserves its maximum size of address
// space once, on the first Grow, and commits pages as the segment grows, so
// the base address and every byte handed out stay put for the life of the
// region:
//
//	r := mheap.NewRegion(1 << 30)
//	prev, err := r.Grow(4096)
//	if err != nil {
//	    return err
//	}
//	block := r.Bytes()[prev : prev+4096]
//
// # Related Packages
//
//   - github.com/joshuapare/poolalloc/mheap/alloc: the pool allocator built on a Segment
//   - github.com/joshuapare/poolalloc/mheap/bulk: large regions outside the segment
//   - github.com/joshuapare/poolalloc/mheap/verify: structural checks of a segment image
package mheap
