package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/poolalloc/internal/buf"
	"github.com/joshuapare/poolalloc/internal/format"
)

// bulkSize returns the region size for an oversize request: n rounded up to
// the word plus room for the header.
func bulkSize(n int) (int, bool) {
	if _, ok := buf.AddOverflowSafe(n, format.WordSize+format.HeaderSize); !ok {
		return 0, false
	}
	return format.Align8(n) + format.HeaderSize, true
}

// allocBulk serves n > threshold from the bulk provider. The header records
// the exact region length so Free can hand the same length back.
func (a *Allocator) allocBulk(n int) (unsafe.Pointer, error) {
	size, ok := bulkSize(n)
	if !ok {
		return nil, fmt.Errorf("%w: bulk request of %d bytes", ErrOverflow, n)
	}

	region, err := a.prov.Obtain(size)
	if err != nil {
		a.stats.FailedBulk++
		a.log.Debug("bulk obtain failed", "request", n, "size", size, "err", err.Error())
		return nil, fmt.Errorf("%w: bulk obtain %d bytes: %w", ErrExhausted, size, err)
	}

	format.PutHeader(region, 0, format.Header{Size: size, Allocated: true, Bulk: true})

	a.stats.BulkAllocs++
	a.stats.BulkBytes += int64(size)
	a.log.Debug("bulk obtained", "request", n, "size", size)

	return unsafe.Pointer(&region[format.HeaderSize]), nil
}

// freeBulk returns the region holding p to the provider with the size
// stored in its header.
func (a *Allocator) freeBulk(p unsafe.Pointer, h format.Header) error {
	region := unsafe.Slice((*byte)(unsafe.Add(p, -format.HeaderSize)), h.Size)
	if err := a.prov.Release(region); err != nil {
		return fmt.Errorf("alloc: bulk release %d bytes: %w", h.Size, err)
	}

	a.stats.BulkFrees++
	a.stats.BulkBytes -= int64(h.Size)
	a.log.Debug("bulk released", "size", h.Size)
	return nil
}
