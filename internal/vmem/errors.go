package vmem

import "errors"

// ErrSize indicates a non-positive region size.
var ErrSize = errors.New("vmem: invalid region size")
