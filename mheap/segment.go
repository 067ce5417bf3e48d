package mheap

import (
	"fmt"

	"github.com/joshuapare/poolalloc/internal/vmem"
)

// Segment is a contiguous, monotonically growing data segment.
//
// Implementations must keep the base address stable: a slice taken from
// Bytes before a Grow stays valid and aliases the same memory afterwards.
type Segment interface {
	// Grow extends the segment by delta bytes and returns the previous end.
	// The new bytes read as zero. On error nothing changes.
	Grow(delta int) (int, error)

	// Bytes returns the committed segment, [0, Len()).
	Bytes() []byte

	// Len returns the current end of the segment.
	Len() int
}

// Region is a Segment backed by one reserved range of virtual memory.
type Region struct {
	max       int    // reservation size in bytes
	reserved  []byte // whole reservation, nil until the first Grow
	end       int    // logical end handed out by Grow
	committed int    // page-rounded end of readable/writable memory
	page      int
}

// NewRegion returns a region that can grow up to max bytes. No memory is
// reserved until the first Grow.
func NewRegion(max int) *Region {
	return &Region{max: max, page: vmem.PageSize()}
}

// Grow extends the region by delta bytes.
func (r *Region) Grow(delta int) (int, error) {
	if delta <= 0 {
		return 0, ErrBadDelta
	}
	if r.max-r.end < delta {
		return 0, fmt.Errorf("%w: region limit %d bytes reached (end=%d, delta=%d)",
			ErrGrowFail, r.max, r.end, delta)
	}

	if r.reserved == nil {
		reserved, err := vmem.Reserve(r.max)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrGrowFail, err)
		}
		r.reserved = reserved
	}

	newEnd := r.end + delta
	if newEnd > r.committed {
		commitEnd := min(roundUp(newEnd, r.page), r.max)
		if err := vmem.Commit(r.reserved[r.committed:commitEnd]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrGrowFail, err)
		}
		r.committed = commitEnd
	}

	prev := r.end
	r.end = newEnd
	return prev, nil
}

// Bytes returns the committed part of the region.
func (r *Region) Bytes() []byte {
	if r.reserved == nil {
		return nil
	}
	return r.reserved[:r.end:r.end]
}

// Len returns the current end of the region.
func (r *Region) Len() int { return r.end }

// Cap returns the maximum size the region may grow to.
func (r *Region) Cap() int { return r.max }

// Close releases the reservation. Every pointer into the region becomes
// invalid; it exists for tearing down independent allocator instances.
func (r *Region) Close() error {
	if r.reserved == nil {
		return nil
	}
	err := vmem.Release(r.reserved)
	r.reserved = nil
	r.end = 0
	r.committed = 0
	return err
}

func roundUp(n, to int) int {
	return (n + to - 1) / to * to
}
