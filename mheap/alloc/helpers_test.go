package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolalloc/mheap"
	"github.com/joshuapare/poolalloc/mheap/bulk"
)

// ============================================================================
// Allocator Construction
// ============================================================================

// newTestAllocator returns an allocator over a fresh Region (capped at
// maxHeap bytes when maxHeap > 0) and a recording bulk provider. The region
// is released when the test ends.
func newTestAllocator(t testing.TB, cfg *Config, maxHeap int) (*Allocator, *recordingProvider) {
	t.Helper()

	if cfg == nil {
		cfg = &DefaultConfig
	}
	region := mheap.NewRegion(cfg.MaxHeap)
	t.Cleanup(func() { _ = region.Close() })

	var seg mheap.Segment = region
	if maxHeap > 0 {
		seg = mheap.Limit(region, maxHeap)
	}

	prov := &recordingProvider{P: bulk.OS{}}
	a, err := New(seg, prov, cfg)
	require.NoError(t, err)
	return a, prov
}

// setupGrowCounter installs a hook that counts heap extensions and returns
// a pointer to the counter.
func setupGrowCounter(a *Allocator) *int {
	count := 0
	a.onGrow = func(int) { count++ }
	return &count
}

// assertInvariants fails the test if the heap layout or free list is broken.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Verify(), "heap invariants violated")
}

// ============================================================================
// Bulk Provider Double
// ============================================================================

// recordingProvider wraps a Provider and records region sizes.
type recordingProvider struct {
	P        bulk.Provider
	Obtained []int
	Released []int
}

func (r *recordingProvider) Obtain(size int) ([]byte, error) {
	region, err := r.P.Obtain(size)
	if err != nil {
		return nil, err
	}
	r.Obtained = append(r.Obtained, size)
	return region, nil
}

func (r *recordingProvider) Release(region []byte) error {
	r.Released = append(r.Released, len(region))
	return r.P.Release(region)
}

// ============================================================================
// Memory Helpers
// ============================================================================

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func requireAll(t testing.TB, b []byte, v byte) {
	t.Helper()
	for i, got := range b {
		if got != v {
			require.Failf(t, "unexpected byte", "offset %d: got 0x%02X, want 0x%02X", i, got, v)
		}
	}
}
