// Package bulk supplies large regions that live outside the pool heap.
//
// A region obtained with Obtain must be handed back to Release with its
// full, original length: implementations are free to rely on that length
// (munmap does), so a shorter or longer slice is undefined behaviour.
package bulk

import (
	"errors"
	"fmt"

	"github.com/joshuapare/poolalloc/internal/vmem"
)

// ErrObtainFail indicates the provider could not supply a region.
var ErrObtainFail = errors.New("bulk: obtain failed")

// Provider hands out and takes back OS-backed regions by size.
type Provider interface {
	// Obtain returns a zeroed region of exactly size bytes.
	Obtain(size int) ([]byte, error)

	// Release returns a region previously returned by Obtain. The slice must
	// have the exact length used to obtain it.
	Release(region []byte) error
}

// OS is a Provider backed by anonymous memory mappings.
type OS struct{}

// Obtain maps a fresh anonymous region.
func (OS) Obtain(size int) ([]byte, error) {
	region, err := vmem.Map(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObtainFail, err)
	}
	return region, nil
}

// Release unmaps the region.
func (OS) Release(region []byte) error {
	return vmem.Release(region)
}

// Limited caps the number of live bytes a Provider may hand out.
type Limited struct {
	P        Provider
	MaxBytes int

	live int
}

// NewLimited wraps p so that at most maxBytes are live at once.
func NewLimited(p Provider, maxBytes int) *Limited {
	return &Limited{P: p, MaxBytes: maxBytes}
}

// Obtain fails with ErrObtainFail once the limit would be exceeded.
func (l *Limited) Obtain(size int) ([]byte, error) {
	if l.MaxBytes-l.live < size {
		return nil, fmt.Errorf("%w: limit %d bytes (live=%d, size=%d)",
			ErrObtainFail, l.MaxBytes, l.live, size)
	}
	region, err := l.P.Obtain(size)
	if err != nil {
		return nil, err
	}
	l.live += len(region)
	return region, nil
}

// Release hands the region to the wrapped provider.
func (l *Limited) Release(region []byte) error {
	if err := l.P.Release(region); err != nil {
		return err
	}
	l.live -= len(region)
	return nil
}

// Live returns the bytes currently obtained and not released.
func (l *Limited) Live() int { return l.live }
