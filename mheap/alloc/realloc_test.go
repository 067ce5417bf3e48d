package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolalloc/internal/format"
	"github.com/joshuapare/poolalloc/mheap"
)

func TestRealloc_NilActsAsMalloc(t *testing.T) {
	a, _ := newTestAllocator(t, nil, 0)

	p, err := a.Realloc(nil, 64)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 120, a.UsableSize(p))

	p, err = a.Realloc(nil, 0)
	require.NoError(t, err)
	assert.Nil(t, p)
}

// TestRealloc_WithinCapacity pins the in-place rule: any size the current
// block can hold, including a shrink to zero, returns the same pointer.
func TestRealloc_WithinCapacity(t *testing.T) {
	a, _ := newTestAllocator(t, nil, 0)

	p, err := a.Malloc(100)
	require.NoError(t, err)
	fill(Bytes(p, 100), 0x11)

	for _, n := range []int{100, 120, 10, 0} {
		q, err := a.Realloc(p, n)
		require.NoError(t, err)
		assert.Equal(t, p, q, "n=%d", n)
		assert.Equal(t, 120, a.UsableSize(q), "capacity is kept on shrink")
	}
	requireAll(t, Bytes(p, 100), 0x11)
	assert.Equal(t, 4, a.Stats().ReallocInPlace)
}

func TestRealloc_MovesAndCopies(t *testing.T) {
	a, _ := newTestAllocator(t, nil, 0)

	p, err := a.Malloc(50)
	require.NoError(t, err)
	src := Bytes(p, 56)
	for i := range src {
		src[i] = byte(i)
	}

	q, err := a.Realloc(p, 1000)
	require.NoError(t, err)
	require.NotEqual(t, p, q)
	assert.Equal(t, 1016, a.UsableSize(q))

	dst := Bytes(q, 56)
	for i := range dst {
		require.Equal(t, byte(i), dst[i], "byte %d", i)
	}

	// The old block is back on the free list.
	old := a.offsetOf(a.seg.Bytes(), p) - format.HeaderSize
	assert.Contains(t, a.FreeBlocks(), Block{Offset: old, Size: 64})
	assert.Equal(t, 1, a.Stats().ReallocMoved)
	assertInvariants(t, a)
}

func TestRealloc_NegativeSize(t *testing.T) {
	a, _ := newTestAllocator(t, nil, 0)

	p, err := a.Malloc(8)
	require.NoError(t, err)

	q, err := a.Realloc(p, -5)
	require.ErrorIs(t, err, ErrBadSize)
	require.Nil(t, q)
	assert.Equal(t, 24, a.UsableSize(p))
}

// TestRealloc_FailureKeepsOriginal exhausts the heap and checks that the
// original block survives with its contents.
func TestRealloc_FailureKeepsOriginal(t *testing.T) {
	a, _ := newTestAllocator(t, nil, format.DefaultIncrement)

	p, err := a.Malloc(2000)
	require.NoError(t, err)
	fill(Bytes(p, 2000), 0x42)
	_, err = a.Malloc(1000)
	require.NoError(t, err)

	before := a.FreeBlocks()

	q, err := a.Realloc(p, 3000)
	require.ErrorIs(t, err, ErrExhausted)
	require.ErrorIs(t, err, mheap.ErrGrowFail)
	require.Nil(t, q)

	requireAll(t, Bytes(p, 2000), 0x42)
	assert.Equal(t, 2040, a.UsableSize(p))
	assert.Equal(t, before, a.FreeBlocks(), "free list must be untouched")
	assert.Equal(t, format.DefaultIncrement, a.HeapBytes())
	assert.Equal(t, 1, a.Stats().FailedGrows)
	assertInvariants(t, a)
}

func TestRealloc_PoolToBulk(t *testing.T) {
	a, prov := newTestAllocator(t, nil, 0)

	p, err := a.Malloc(100)
	require.NoError(t, err)
	fill(Bytes(p, 100), 0x7E)

	q, err := a.Realloc(p, 6000)
	require.NoError(t, err)
	assert.Equal(t, []int{6000 + format.HeaderSize}, prov.Obtained)
	requireAll(t, Bytes(q, 100), 0x7E)

	require.NoError(t, a.Free(q))
	assert.Equal(t, []int{6000 + format.HeaderSize}, prov.Released)
	assertInvariants(t, a)
}

func TestRealloc_BulkBlocks(t *testing.T) {
	a, prov := newTestAllocator(t, nil, 0)

	p, err := a.Malloc(5000)
	require.NoError(t, err)
	fill(Bytes(p, 5000), 0x33)

	// Shrinking a bulk block keeps it where it is.
	q, err := a.Realloc(p, 4500)
	require.NoError(t, err)
	assert.Equal(t, p, q)
	assert.Empty(t, prov.Released)

	// Growing moves it to a new region and releases the old one.
	r, err := a.Realloc(p, 10000)
	require.NoError(t, err)
	assert.NotEqual(t, p, r)
	requireAll(t, Bytes(r, 5000), 0x33)
	assert.Equal(t, []int{5008, 10008}, prov.Obtained)
	assert.Equal(t, []int{5008}, prov.Released)

	require.NoError(t, a.Free(r))
	assert.Equal(t, int64(0), a.Stats().BulkBytes)
	assert.Equal(t, 0, a.HeapBytes(), "bulk traffic must not grow the pool")
}
