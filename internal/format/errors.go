package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadHeader indicates a header word whose size is not a legal block size.
	ErrBadHeader = errors.New("format: bad block header")
)
