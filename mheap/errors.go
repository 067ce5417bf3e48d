package mheap

import "errors"

var (
	// ErrGrowFail indicates that the segment could not be extended.
	ErrGrowFail = errors.New("mheap: grow failed")

	// ErrBadDelta indicates a non-positive growth request.
	ErrBadDelta = errors.New("mheap: grow delta must be positive")
)
