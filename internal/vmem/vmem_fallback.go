//go:build !linux && !darwin

// Package vmem wraps the operating system's virtual memory primitives used by
// the pool heap and the bulk provider.
package vmem

import (
	"fmt"
	"os"
)

// Reserve allocates size zeroed bytes from the Go heap when anonymous
// mappings are not available.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("vmem: reserve size %d: %w", size, ErrSize)
	}
	return make([]byte, size), nil
}

// Commit is a no-op: reserved memory is already accessible.
func Commit(region []byte) error {
	return nil
}

// Map allocates size zeroed bytes from the Go heap.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("vmem: map size %d: %w", size, ErrSize)
	}
	return make([]byte, size), nil
}

// Release drops the region; the garbage collector reclaims it once the
// caller holds no pointer into it.
func Release(region []byte) error {
	return nil
}

// PageSize returns the operating system page size.
func PageSize() int {
	return os.Getpagesize()
}
