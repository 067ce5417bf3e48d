package malloc

import (
	"github.com/joshuapare/poolalloc/mheap"
	"github.com/joshuapare/poolalloc/mheap/alloc"
	"github.com/joshuapare/poolalloc/mheap/bulk"
)

// Options controls how the process allocator is built.
type Options struct {
	// Config is the heap geometry.
	// Default: alloc.DefaultConfig
	Config *alloc.Config

	// Segment backs the pool heap.
	// Default: a Region of Config.MaxHeap bytes, reserved on first growth.
	Segment mheap.Segment

	// Provider supplies bulk regions.
	// Default: anonymous memory mappings.
	Provider bulk.Provider
}

// Errors (re-exported for convenience).
var (
	ErrExhausted = alloc.ErrExhausted
	ErrOverflow  = alloc.ErrOverflow
	ErrBadSize   = alloc.ErrBadSize
	ErrBadConfig = alloc.ErrBadConfig
)
