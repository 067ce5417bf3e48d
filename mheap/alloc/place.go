package alloc

import "github.com/joshuapare/poolalloc/internal/format"

// place carves a block of exactly class bytes out of the free block at off
// and marks it allocated.
//
// A larger block is halved until it reaches class: the lower half keeps the
// list position, the upper half is linked in right after it and becomes the
// anchor. Every split keeps the byte total and adds one list entry. The
// chosen lower half is then unlinked.
func (a *Allocator) place(mem []byte, off, class int) {
	size := format.ReadHeader(mem, off).Size
	for size > class && size > a.cfg.MinClass {
		size >>= 1
		buddy := off + size
		format.PutHeader(mem, off, format.Header{Size: size})
		format.PutHeader(mem, buddy, format.Header{Size: size})
		a.linkAfter(mem, off, buddy)
		a.anchor = buddy
		a.stats.SplitCount++
	}

	a.unlink(mem, off)
	format.PutHeader(mem, off, format.Header{Size: size, Allocated: true})
}
