// Package verify provides validation functions for pool heap images.
//
// # Overview
//
// A pool heap is a dense run of blocks: every byte of the segment belongs
// to exactly one block, every block size is a power of two that divides its
// offset, and the free blocks form one circular doubly linked list. These
// checks walk a heap image and report the first violation. They are used by
// tests and by the mallocctl replay command after a trace has run.
//
// Validation categories:
//   - HeapLayout: segment length, block sizes, alignment, flags
//   - FreeList: link symmetry, membership, cycle length, anchor
//
// # Quick Start
//
//	if err := verify.AllInvariants(heap, anchor, 4096); err != nil {
//	    var verr *verify.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Printf("%s at 0x%X: %s\n", verr.Type, verr.Offset, verr.Message)
//	    }
//	}
package verify
