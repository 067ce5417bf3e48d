package alloc

import "github.com/joshuapare/poolalloc/internal/format"

// The free list is a circular, doubly linked list threaded through the
// payloads of free pool blocks. There is no sentinel: a.anchor names the
// most recently inserted block, or format.NoBlock when the list is empty,
// and a walk ends when it comes back to where it started.

// insert links the free block at off in after the anchor and makes it the
// new anchor. O(1).
func (a *Allocator) insert(mem []byte, off int) {
	if a.anchor == format.NoBlock {
		format.PutPred(mem, off, off)
		format.PutSucc(mem, off, off)
		a.anchor = off
		return
	}
	a.linkAfter(mem, a.anchor, off)
	a.anchor = off
}

// linkAfter splices the block at off in right after the listed block at
// prev. Works for a one-element list too: prev's successor is prev itself.
func (a *Allocator) linkAfter(mem []byte, prev, off int) {
	next := format.ReadSucc(mem, prev)
	format.PutPred(mem, off, prev)
	format.PutSucc(mem, off, next)
	format.PutPred(mem, next, off)
	format.PutSucc(mem, prev, off)
}

// unlink removes the block at off from the list. If it was the anchor the
// anchor moves to its former predecessor, or is cleared if the block was
// the only entry. O(1).
func (a *Allocator) unlink(mem []byte, off int) {
	succ := format.ReadSucc(mem, off)
	if succ == off {
		a.anchor = format.NoBlock
		return
	}
	pred := format.ReadPred(mem, off)
	format.PutSucc(mem, pred, succ)
	format.PutPred(mem, succ, pred)
	if a.anchor == off {
		a.anchor = pred
	}
}

// findFit scans from the anchor along successor links and returns the first
// free block of at least class bytes, or format.NoBlock. O(free blocks).
func (a *Allocator) findFit(mem []byte, class int) int {
	if a.anchor == format.NoBlock {
		return format.NoBlock
	}
	off := a.anchor
	for {
		if format.ReadHeader(mem, off).Size >= class {
			return off
		}
		off = format.ReadSucc(mem, off)
		if off == a.anchor {
			return format.NoBlock
		}
	}
}

// Block describes one free pool block.
type Block struct {
	Offset int // Offset of the block header within the heap
	Size   int // Block size including header
}

// FreeBlocks returns the free list in walk order, starting at the anchor.
func (a *Allocator) FreeBlocks() []Block {
	if a.anchor == format.NoBlock {
		return nil
	}
	mem := a.seg.Bytes()
	var blocks []Block
	off := a.anchor
	for {
		blocks = append(blocks, Block{Offset: off, Size: format.ReadHeader(mem, off).Size})
		off = format.ReadSucc(mem, off)
		if off == a.anchor {
			return blocks
		}
	}
}
