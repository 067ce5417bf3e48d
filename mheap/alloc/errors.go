package alloc

import "errors"

var (
	// ErrExhausted indicates the heap could not grow or the bulk provider
	// could not supply a region. Allocator state is unchanged.
	ErrExhausted = errors.New("alloc: resource exhausted")

	// ErrOverflow indicates count*elemSize does not fit in an int.
	ErrOverflow = errors.New("alloc: size computation overflows")

	// ErrBadSize indicates a negative size or count.
	ErrBadSize = errors.New("alloc: size must not be negative")

	// ErrBadConfig indicates a Config that fails validation.
	ErrBadConfig = errors.New("alloc: invalid config")
)
