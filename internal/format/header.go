package format

import (
	"fmt"

	"github.com/joshuapare/poolalloc/internal/buf"
)

// Header is the decoded form of the word preceding every block payload.
//
// Block layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Header word: size | flags. Bit 0 = allocated, bit 1 = bulk.
//	              Size includes the header itself.
//	0x08    8     Predecessor block offset (free pool blocks only).
//	0x10    8     Successor block offset (free pool blocks only).
//	0x08    ...   Payload (allocated blocks; overwrites the links).
type Header struct {
	Size      int  // Total block size including the header
	Allocated bool // False iff the block is on the free list
	Bulk      bool // True for blocks obtained from the bulk provider
}

// Word packs the header into its on-heap representation.
func (h Header) Word() uint64 {
	w := uint64(h.Size) &^ flagMask
	if h.Allocated {
		w |= FlagAllocated
	}
	if h.Bulk {
		w |= FlagBulk
	}
	return w
}

// Usable returns the number of payload bytes the block can hold.
func (h Header) Usable() int {
	return h.Size - HeaderSize
}

// DecodeHeader unpacks a header word.
func DecodeHeader(w uint64) Header {
	return Header{
		Size:      int(w &^ flagMask),
		Allocated: w&FlagAllocated != 0,
		Bulk:      w&FlagBulk != 0,
	}
}

// ReadHeader decodes the header of the block starting at off.
func ReadHeader(b []byte, off int) Header {
	return DecodeHeader(ReadU64(b, off))
}

// PutHeader writes the header of the block starting at off.
func PutHeader(b []byte, off int, h Header) {
	PutU64(b, off, h.Word())
}

// PayloadOffset returns the payload offset of the block starting at off.
func PayloadOffset(off int) int {
	return off + HeaderSize
}

// BlockOffset returns the block offset owning the payload at payloadOff.
func BlockOffset(payloadOff int) int {
	return payloadOff - HeaderSize
}

// ReadPred returns the predecessor link of the free block at off.
func ReadPred(b []byte, off int) int {
	return ReadOffset(b, off+HeaderSize)
}

// ReadSucc returns the successor link of the free block at off.
func ReadSucc(b []byte, off int) int {
	return ReadOffset(b, off+HeaderSize+WordSize)
}

// PutPred sets the predecessor link of the free block at off.
func PutPred(b []byte, off int, pred int) {
	PutOffset(b, off+HeaderSize, pred)
}

// PutSucc sets the successor link of the free block at off.
func PutSucc(b []byte, off int, succ int) {
	PutOffset(b, off+HeaderSize+WordSize, succ)
}

// NextBlock decodes the pool block at off and returns it together with the
// offset of the following block. The heap is a dense run of blocks, so the
// next block starts right after this one.
func NextBlock(b []byte, off int) (Header, int, error) {
	if !buf.Has(b, off, HeaderSize) {
		return Header{}, 0, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	h := ReadHeader(b, off)
	if h.Size < MinBlockSize || !IsPow2(h.Size) {
		return Header{}, 0, fmt.Errorf("block at %d: size %d: %w", off, h.Size, ErrBadHeader)
	}
	if !buf.Has(b, off, h.Size) {
		return Header{}, 0, fmt.Errorf("block at %d: size %d: %w", off, h.Size, ErrTruncated)
	}
	return h, off + h.Size, nil
}
