package alloc

import (
	"sync"
	"unsafe"
)

// Synchronized is a mutex-protected wrapper around Allocator for concurrent
// access. Every call takes one coarse lock.
type Synchronized struct {
	mu sync.Mutex
	a  *Allocator
}

// NewSynchronized wraps a. The caller must not use a directly afterwards.
func NewSynchronized(a *Allocator) *Synchronized {
	return &Synchronized{a: a}
}

func (s *Synchronized) Malloc(n int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Malloc(n)
}

func (s *Synchronized) Calloc(count, elemSize int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Calloc(count, elemSize)
}

func (s *Synchronized) Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Realloc(p, n)
}

func (s *Synchronized) Free(p unsafe.Pointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Free(p)
}

func (s *Synchronized) UsableSize(p unsafe.Pointer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.UsableSize(p)
}

func (s *Synchronized) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

func (s *Synchronized) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Verify()
}
