package verify

import (
	"fmt"

	"github.com/joshuapare/poolalloc/internal/format"
)

// ValidationError describes the first invariant violation found.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Layout summarises a heap walk.
type Layout struct {
	Blocks     int
	FreeBlocks int
	FreeBytes  int
	free       map[int]int // free block offset -> size
}

// AllInvariants validates the heap layout and the free list in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte, anchor, increment int) error {
	layout, err := HeapLayout(data, increment)
	if err != nil {
		return err
	}
	return FreeList(data, anchor, layout)
}

// HeapLayout walks every block of the heap and checks that the blocks tile
// the segment exactly.
func HeapLayout(data []byte, increment int) (*Layout, error) {
	if increment <= 0 || len(data)%increment != 0 {
		return nil, &ValidationError{
			Type:    "HeapLayout",
			Message: fmt.Sprintf("heap size %d is not a multiple of increment %d", len(data), increment),
			Offset:  -1,
		}
	}

	layout := &Layout{free: make(map[int]int)}
	for off := 0; off < len(data); {
		h, next, err := format.NextBlock(data, off)
		if err != nil {
			return nil, &ValidationError{Type: "HeapLayout", Message: err.Error(), Offset: off}
		}
		if h.Size > increment {
			return nil, &ValidationError{
				Type:    "HeapLayout",
				Message: fmt.Sprintf("block size %d exceeds increment %d", h.Size, increment),
				Offset:  off,
			}
		}
		if off%h.Size != 0 {
			return nil, &ValidationError{
				Type:    "HeapLayout",
				Message: fmt.Sprintf("block of size %d is not aligned to its size", h.Size),
				Offset:  off,
			}
		}
		if h.Bulk {
			return nil, &ValidationError{
				Type:    "HeapLayout",
				Message: "bulk flag set on a pool block",
				Offset:  off,
			}
		}

		layout.Blocks++
		if !h.Allocated {
			layout.FreeBlocks++
			layout.FreeBytes += h.Size
			layout.free[off] = h.Size
		}
		off = next
	}
	return layout, nil
}

// FreeList walks the free list from anchor and checks it against layout:
// every free block appears exactly once, links are symmetric, and only
// free blocks are listed.
func FreeList(data []byte, anchor int, layout *Layout) error {
	if anchor == format.NoBlock {
		if layout.FreeBlocks != 0 {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("list is empty but heap has %d free blocks", layout.FreeBlocks),
				Offset:  -1,
			}
		}
		return nil
	}

	seen := make(map[int]bool, layout.FreeBlocks)
	off := anchor
	for {
		if _, ok := layout.free[off]; !ok {
			return &ValidationError{
				Type:    "FreeList",
				Message: "listed block is not a free block of the heap",
				Offset:  off,
			}
		}
		if seen[off] {
			return &ValidationError{
				Type:    "FreeList",
				Message: "cycle does not return to the anchor",
				Offset:  off,
				Details: map[string]interface{}{"anchor": anchor, "visited": len(seen)},
			}
		}
		seen[off] = true

		succ := format.ReadSucc(data, off)
		if _, ok := layout.free[succ]; !ok {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("successor 0x%X is not a free block", succ),
				Offset:  off,
			}
		}
		if pred := format.ReadPred(data, succ); pred != off {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("asymmetric link: succ 0x%X has pred 0x%X", succ, pred),
				Offset:  off,
			}
		}

		off = succ
		if off == anchor {
			break
		}
	}

	if len(seen) != layout.FreeBlocks {
		return &ValidationError{
			Type:    "FreeList",
			Message: fmt.Sprintf("list holds %d blocks, heap has %d free", len(seen), layout.FreeBlocks),
			Offset:  -1,
			Details: map[string]interface{}{"listed": len(seen), "free": layout.FreeBlocks},
		}
	}
	return nil
}
