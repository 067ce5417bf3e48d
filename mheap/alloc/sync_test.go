package alloc

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronized_ConcurrentUse(t *testing.T) {
	a, prov := newTestAllocator(t, nil, 0)
	s := NewSynchronized(a)

	const workers = 8
	const rounds = 500

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var held []unsafe.Pointer
			for i := range rounds {
				n := 1 + (w*131+i*17)%5000
				p, err := s.Malloc(n)
				if err != nil {
					errs <- err
					return
				}
				fill(Bytes(p, n), byte(w))
				held = append(held, p)
				if len(held) > 4 {
					if err := s.Free(held[0]); err != nil {
						errs <- err
						return
					}
					held = held[1:]
				}
			}
			for _, p := range held {
				if err := s.Free(p); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, s.Verify())
	st := s.Stats()
	assert.Equal(t, workers*rounds, st.AllocCalls)
	assert.Equal(t, int64(0), st.LiveBytes())
	assert.Equal(t, len(prov.Obtained), len(prov.Released))
}

func TestSynchronized_Delegates(t *testing.T) {
	a, _ := newTestAllocator(t, nil, 0)
	s := NewSynchronized(a)

	p, err := s.Calloc(4, 8)
	require.NoError(t, err)
	assert.Equal(t, 56, s.UsableSize(p))

	p, err = s.Realloc(p, 200)
	require.NoError(t, err)
	assert.Equal(t, 248, s.UsableSize(p))
	require.NoError(t, s.Free(p))
	require.NoError(t, s.Verify())
}
