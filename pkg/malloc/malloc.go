package malloc

import (
	"errors"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/poolalloc/mheap/alloc"
)

// ErrInitialized is returned by Init once the process allocator exists.
var ErrInitialized = errors.New("malloc: allocator already initialized")

var (
	mu       sync.Mutex
	instance atomic.Pointer[alloc.Synchronized]
)

// Init builds the process allocator from opts. It must run before the first
// allocation; afterwards it returns ErrInitialized.
func Init(opts *Options) error {
	mu.Lock()
	defer mu.Unlock()

	if instance.Load() != nil {
		return ErrInitialized
	}
	s, err := build(opts)
	if err != nil {
		return err
	}
	instance.Store(s)
	return nil
}

// SetDefault replaces the process allocator and returns the previous one,
// which may be nil. Pointers from the previous allocator must not be passed
// to the new one.
func SetDefault(s *alloc.Synchronized) *alloc.Synchronized {
	mu.Lock()
	defer mu.Unlock()
	return instance.Swap(s)
}

func build(opts *Options) (*alloc.Synchronized, error) {
	if opts == nil {
		opts = &Options{}
	}
	a, err := alloc.New(opts.Segment, opts.Provider, opts.Config)
	if err != nil {
		return nil, err
	}
	return alloc.NewSynchronized(a), nil
}

// get returns the process allocator, building it with defaults on first use.
func get() (*alloc.Synchronized, error) {
	if s := instance.Load(); s != nil {
		return s, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if s := instance.Load(); s != nil {
		return s, nil
	}
	s, err := build(nil)
	if err != nil {
		return nil, err
	}
	instance.Store(s)
	return s, nil
}

// Malloc returns at least n bytes of word-aligned memory. Malloc(0) returns
// nil with no error.
func Malloc(n int) (unsafe.Pointer, error) {
	s, err := get()
	if err != nil {
		return nil, err
	}
	return s.Malloc(n)
}

// Calloc returns zeroed memory for count elements of size bytes each.
func Calloc(count, size int) (unsafe.Pointer, error) {
	s, err := get()
	if err != nil {
		return nil, err
	}
	return s.Calloc(count, size)
}

// Realloc resizes the block at p to n bytes, moving it if its capacity is
// too small. On error p is unchanged and still owned by the caller.
func Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	s, err := get()
	if err != nil {
		return nil, err
	}
	return s.Realloc(p, n)
}

// Free releases the block at p. Free(nil) is a no-op.
func Free(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}
	s, err := get()
	if err != nil {
		return err
	}
	return s.Free(p)
}

// UsableSize returns the capacity of the block at p.
func UsableSize(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	s, err := get()
	if err != nil {
		return 0
	}
	return s.UsableSize(p)
}

// Bytes returns the n bytes at p as a slice.
func Bytes(p unsafe.Pointer, n int) []byte {
	return alloc.Bytes(p, n)
}

// Stats returns the process allocator's counters.
func Stats() alloc.Stats {
	s, err := get()
	if err != nil {
		return alloc.Stats{}
	}
	return s.Stats()
}

// Verify checks the process heap for consistency.
func Verify() error {
	s, err := get()
	if err != nil {
		return err
	}
	return s.Verify()
}
