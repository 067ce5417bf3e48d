package alloc

import (
	"fmt"

	"github.com/joshuapare/poolalloc/internal/format"
)

// extend grows the heap by one increment and formats the new memory as one
// free block, inserted at the anchor. The block is returned so the caller
// can place into it without searching again. A failed grow leaves the heap
// and the free list untouched.
func (a *Allocator) extend() (int, error) {
	inc := a.cfg.Increment
	prev, err := a.seg.Grow(inc)
	if err != nil {
		a.stats.FailedGrows++
		a.log.Debug("heap extension failed", "heap_bytes", a.seg.Len(), "increment", inc, "err", err.Error())
		return format.NoBlock, fmt.Errorf("%w: extend heap: %w", ErrExhausted, err)
	}

	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(inc)

	mem := a.seg.Bytes()
	format.PutHeader(mem, prev, format.Header{Size: inc})
	a.insert(mem, prev)

	a.log.Debug("heap extended", "offset", prev, "increment", inc, "heap_bytes", len(mem))

	// Call test hook if set
	if a.onGrow != nil {
		a.onGrow(inc)
	}
	return prev, nil
}
