package alloc

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats holds allocator counters plus a snapshot of the heap.
type Stats struct {
	GrowCalls      int   // Successful heap extensions
	GrowBytes      int64 // Total bytes added by extensions
	FailedGrows    int   // Extensions refused by the segment
	AllocCalls     int   // Total Malloc calls (including those from Calloc/Realloc)
	AllocFastPath  int   // Pool allocations served from the free list
	AllocSlowPath  int   // Pool allocations that required an extension
	FreeCalls      int   // Blocks released (pool and bulk)
	SplitCount     int   // Block halvings during placement
	BulkAllocs     int   // Regions obtained from the bulk provider
	BulkFrees      int   // Regions returned to the bulk provider
	BulkBytes      int64 // Bulk bytes currently live
	FailedBulk     int   // Bulk obtains refused by the provider
	BytesAllocated int64 // Pool bytes handed out (block sizes)
	BytesFreed     int64 // Pool bytes released (block sizes)
	ReallocInPlace int   // Reallocs satisfied by the existing block
	ReallocMoved   int   // Reallocs that copied to a new block

	// Snapshot fields, filled by Allocator.Stats
	HeapBytes  int   // Current pool heap size
	FreeBlocks int   // Free list length
	FreeBytes  int64 // Bytes held by free blocks
}

// Stats returns the counters and a fresh heap snapshot.
func (a *Allocator) Stats() Stats {
	s := a.stats
	s.HeapBytes = a.seg.Len()
	for _, b := range a.FreeBlocks() {
		s.FreeBlocks++
		s.FreeBytes += int64(b.Size)
	}
	return s
}

// LiveBytes returns pool bytes currently allocated.
func (s Stats) LiveBytes() int64 {
	return s.BytesAllocated - s.BytesFreed
}

// String renders the stats as an aligned report.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Heap size:          %s (%d extensions)\n", humanize.IBytes(uint64(s.HeapBytes)), s.GrowCalls)
	fmt.Fprintf(&b, "Alloc calls:        %d (fast: %d, slow: %d)\n", s.AllocCalls, s.AllocFastPath, s.AllocSlowPath)
	fmt.Fprintf(&b, "Free calls:         %d\n", s.FreeCalls)
	fmt.Fprintf(&b, "Pool live:          %s\n", humanize.IBytes(uint64(max(s.LiveBytes(), 0))))
	fmt.Fprintf(&b, "Free list:          %d blocks, %s\n", s.FreeBlocks, humanize.IBytes(uint64(max(s.FreeBytes, 0))))
	fmt.Fprintf(&b, "Block splits:       %d\n", s.SplitCount)
	fmt.Fprintf(&b, "Bulk:               %d obtained, %d released, %s live\n",
		s.BulkAllocs, s.BulkFrees, humanize.IBytes(uint64(max(s.BulkBytes, 0))))
	fmt.Fprintf(&b, "Realloc:            %d in place, %d moved\n", s.ReallocInPlace, s.ReallocMoved)
	if s.FailedGrows > 0 || s.FailedBulk > 0 {
		fmt.Fprintf(&b, "Failures:           %d grow, %d bulk\n", s.FailedGrows, s.FailedBulk)
	}
	return b.String()
}
