//go:build linux || darwin

// Package vmem wraps the operating system's virtual memory primitives used by
// the pool heap and the bulk provider: reserving address space, committing
// pages inside a reservation, and mapping or unmapping anonymous regions.
package vmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserve maps size bytes of inaccessible, unbacked address space. The
// returned slice never moves; pages become usable after Commit.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("vmem: reserve size %d: %w", size, ErrSize)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %d bytes: %w", size, err)
	}
	return data, nil
}

// Commit makes region, a page-aligned sub-slice of a reservation, readable
// and writable. Fresh pages read as zero.
func Commit(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("vmem: commit %d bytes: %w", len(region), err)
	}
	return nil
}

// Map returns a fresh zeroed read-write anonymous mapping of size bytes.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("vmem: map size %d: %w", size, ErrSize)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("vmem: map %d bytes: %w", size, err)
	}
	return data, nil
}

// Release unmaps a region returned by Reserve or Map. The length must be
// the one used to create it.
func Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	err := unix.Munmap(region)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	if err != nil {
		return fmt.Errorf("vmem: release %d bytes: %w", len(region), err)
	}
	return nil
}

// PageSize returns the operating system page size.
func PageSize() int {
	return unix.Getpagesize()
}
