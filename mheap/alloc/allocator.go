package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/poolalloc/internal/buf"
	"github.com/joshuapare/poolalloc/internal/format"
	"github.com/joshuapare/poolalloc/internal/logging"
	"github.com/joshuapare/poolalloc/mheap"
	"github.com/joshuapare/poolalloc/mheap/bulk"
	"github.com/joshuapare/poolalloc/mheap/verify"
)

// Allocator is a pool allocator with power-of-two size classes, a single
// intrusive free list, binary splitting on placement and a bulk escape hatch
// for oversize requests.
//
// An Allocator is not safe for concurrent use; see Synchronized.
type Allocator struct {
	seg  mheap.Segment
	prov bulk.Provider
	cfg  Config
	log  *logging.Logger

	threshold int // largest pool request
	anchor    int // most recently inserted free block, format.NoBlock if none

	stats Stats

	// Test hook: called after each successful heap extension (nil in production)
	onGrow func(int)
}

// New creates an allocator.
//
// Parameters:
//   - seg: backing segment for the pool heap (nil reserves a Region of cfg.MaxHeap lazily)
//   - prov: bulk provider for oversize requests (nil uses anonymous mappings)
//   - cfg: heap geometry (nil for DefaultConfig)
//
// No memory is touched until the first allocation.
func New(seg mheap.Segment, prov bulk.Provider, cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if seg == nil {
		seg = mheap.NewRegion(cfg.MaxHeap)
	}
	if prov == nil {
		prov = bulk.OS{}
	}

	log := logging.Default()
	if cfg.Logger != nil {
		log = logging.Wrap(*cfg.Logger)
	}

	return &Allocator{
		seg:       seg,
		prov:      prov,
		cfg:       *cfg,
		log:       log.With("component", "alloc"),
		threshold: cfg.Threshold(),
		anchor:    format.NoBlock,
	}, nil
}

// Malloc returns a pointer to at least n bytes of word-aligned memory.
//
// Malloc(0) returns nil with no error. Requests up to the threshold come from
// the pool; larger ones go to the bulk provider. The only failure is
// ErrExhausted, after which the allocator is unchanged.
func (a *Allocator) Malloc(n int) (unsafe.Pointer, error) {
	a.stats.AllocCalls++
	switch {
	case n == 0:
		return nil, nil
	case n < 0:
		return nil, ErrBadSize
	case n > a.threshold:
		return a.allocBulk(n)
	}

	class := a.classify(n)
	mem := a.seg.Bytes()
	off := a.findFit(mem, class)
	if off == format.NoBlock {
		var err error
		if off, err = a.extend(); err != nil {
			return nil, err
		}
		mem = a.seg.Bytes()
		a.stats.AllocSlowPath++
	} else {
		a.stats.AllocFastPath++
	}

	a.place(mem, off, class)
	a.stats.BytesAllocated += int64(class)
	return unsafe.Pointer(&mem[format.PayloadOffset(off)]), nil
}

// Calloc returns zeroed memory for count elements of elemSize bytes. A
// product that overflows fails with ErrOverflow instead of allocating less.
func (a *Allocator) Calloc(count, elemSize int) (unsafe.Pointer, error) {
	if count < 0 || elemSize < 0 {
		return nil, ErrBadSize
	}
	total, ok := buf.MulOverflowSafe(count, elemSize)
	if !ok {
		return nil, fmt.Errorf("%w: %d * %d", ErrOverflow, count, elemSize)
	}

	p, err := a.Malloc(total)
	if err != nil || p == nil {
		return p, err
	}
	clear(Bytes(p, total))
	return p, nil
}

// Realloc resizes the block at p to hold n bytes.
//
// A nil p behaves like Malloc(n). When the block's usable capacity already
// covers n, p is returned unchanged and keeps its capacity. Otherwise a new
// block is allocated, min(old capacity, n) bytes are copied and p is
// released. If the new allocation fails, p is untouched and still owned by
// the caller.
func (a *Allocator) Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	if p == nil {
		return a.Malloc(n)
	}
	if n < 0 {
		return nil, ErrBadSize
	}

	h := header(p)
	old := h.Usable()
	if old >= n {
		a.stats.ReallocInPlace++
		return p, nil
	}

	np, err := a.Malloc(n)
	if err != nil {
		return nil, err
	}
	copy(Bytes(np, old), Bytes(p, old))

	if err := a.release(p, h); err != nil {
		// The data lives in np now; the old region is only leaked.
		a.log.Warn("realloc could not release old block", "size", h.Size, "err", err.Error())
	}
	a.stats.ReallocMoved++
	a.log.Debug("realloc moved", "old_usable", old, "request", n)
	return np, nil
}

// Free releases the block at p. Free(nil) is a no-op. Bulk blocks go back
// to the provider with their recorded size; pool blocks are marked free and
// inserted at the anchor.
//
// Passing a pointer that did not come from this allocator, or freeing twice,
// is undefined behaviour.
func (a *Allocator) Free(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}
	return a.release(p, header(p))
}

func (a *Allocator) release(p unsafe.Pointer, h format.Header) error {
	a.stats.FreeCalls++
	if h.Bulk {
		return a.freeBulk(p, h)
	}

	mem := a.seg.Bytes()
	off := format.BlockOffset(a.offsetOf(mem, p))
	format.PutHeader(mem, off, format.Header{Size: h.Size})
	a.insert(mem, off)
	a.stats.BytesFreed += int64(h.Size)
	return nil
}

// UsableSize returns how many bytes the block at p can hold, 0 for nil.
func (a *Allocator) UsableSize(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	return header(p).Usable()
}

// Threshold returns the largest request served from the pool.
func (a *Allocator) Threshold() int { return a.threshold }

// Config returns the allocator's configuration.
func (a *Allocator) Config() Config { return a.cfg }

// HeapBytes returns the current size of the pool heap.
func (a *Allocator) HeapBytes() int { return a.seg.Len() }

// Verify checks the heap layout and the free list for consistency.
func (a *Allocator) Verify() error {
	return verify.AllInvariants(a.seg.Bytes(), a.anchor, a.cfg.Increment)
}

// offsetOf returns the heap offset of a pool payload pointer.
func (a *Allocator) offsetOf(mem []byte, p unsafe.Pointer) int {
	return int(uintptr(p) - uintptr(unsafe.Pointer(unsafe.SliceData(mem))))
}

// header reads the header word preceding the payload at p.
func header(p unsafe.Pointer) format.Header {
	word := unsafe.Slice((*byte)(unsafe.Add(p, -format.HeaderSize)), format.HeaderSize)
	return format.ReadHeader(word, 0)
}

// Bytes returns the n bytes at p as a slice. p must come from an Allocator
// and n must not exceed its usable size.
func Bytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
