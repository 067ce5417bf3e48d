package format

import "encoding/binary"

// Binary encoding utilities for the heap's little-endian words.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutOffset stores a block offset as one word. NoBlock is stored as all ones.
func PutOffset(b []byte, off int, v int) {
	PutU64(b, off, uint64(int64(v)))
}

// ReadOffset loads a block offset written by PutOffset.
func ReadOffset(b []byte, off int) int {
	return int(int64(ReadU64(b, off)))
}
