/*
Package malloc provides a process-wide allocator with the classic
malloc/calloc/realloc/free surface.

# Quick Start

	p, err := malloc.Malloc(160)
	if err != nil {
	    return err
	}
	defer malloc.Free(p)

	buf := malloc.Bytes(p, 160)

# Process Instance

The first call builds one allocator for the whole process: a pool heap
reserved with DefaultConfig's MaxHeap and a bulk provider backed by
anonymous mappings. Every call takes a single lock around it, so the
package functions are safe for concurrent use.

To change the geometry, call Init before anything else allocates:

	err := malloc.Init(&malloc.Options{Config: &alloc.ConfigLarge})

Tests that need a private heap can swap the instance with SetDefault and
restore the previous one when done.

# Error Handling

Allocation failures return a nil pointer and an error; nothing is partially
allocated. Match errors with errors.Is:

	p, err := malloc.Calloc(n, size)
	switch {
	case errors.Is(err, malloc.ErrOverflow):
	    // n*size does not fit
	case errors.Is(err, malloc.ErrExhausted):
	    // out of memory
	}

A failed Realloc leaves the original pointer valid.

# Debug Logging

Set POOLALLOC_LOG_ALLOC=1 to log heap growth, bulk traffic and exhaustion
to stderr.
*/
package malloc
