package alloc

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/joshuapare/poolalloc/internal/format"
)

// Config defines the heap geometry of an Allocator.
type Config struct {
	// Name for this configuration (for reports)
	Name string

	// Increment is the number of bytes the heap grows by. It is also the
	// largest pool class; requests above Increment-HeaderSize go to the
	// bulk provider.
	Increment int

	// MinClass is the smallest block size handed out. It must hold a header
	// and both free-list links.
	MinClass int

	// MaxHeap bounds the default Region the allocator reserves when New is
	// given no Segment.
	MaxHeap int

	// Logger receives debug events (growth, bulk traffic, exhaustion).
	// nil uses the process default, which is silent unless
	// POOLALLOC_LOG_ALLOC is set.
	Logger *zerolog.Logger
}

// Predefined configurations.
var (
	// DefaultConfig grows by one 4 KiB page: pool classes 32 B .. 4 KiB,
	// bulk above 4088 bytes.
	DefaultConfig = Config{
		Name:      "Default",
		Increment: format.DefaultIncrement,
		MinClass:  format.MinBlockSize,
		MaxHeap:   1 << 30,
	}

	// ConfigLarge grows by 64 KiB, keeping requests up to 65528 bytes in
	// the pool.
	ConfigLarge = Config{
		Name:      "Large",
		Increment: 1 << 16,
		MinClass:  format.MinBlockSize,
		MaxHeap:   1 << 30,
	}

	// ConfigSmall grows by 1 KiB. Useful for exercising growth and the bulk
	// path with small requests.
	ConfigSmall = Config{
		Name:      "Small",
		Increment: 1 << 10,
		MinClass:  format.MinBlockSize,
		MaxHeap:   1 << 24,
	}
)

// Validate checks the geometry invariants the placement engine relies on.
func (c Config) Validate() error {
	switch {
	case !format.IsPow2(c.MinClass) || c.MinClass < format.MinBlockSize:
		return fmt.Errorf("%w: min class %d must be a power of two >= %d",
			ErrBadConfig, c.MinClass, format.MinBlockSize)
	case !format.IsPow2(c.Increment) || c.Increment < c.MinClass:
		return fmt.Errorf("%w: increment %d must be a power of two >= min class %d",
			ErrBadConfig, c.Increment, c.MinClass)
	case c.MaxHeap < c.Increment || c.MaxHeap%c.Increment != 0:
		return fmt.Errorf("%w: max heap %d must be a positive multiple of increment %d",
			ErrBadConfig, c.MaxHeap, c.Increment)
	}
	return nil
}

// Threshold returns the largest request served from the pool.
func (c Config) Threshold() int {
	return c.Increment - format.HeaderSize
}
