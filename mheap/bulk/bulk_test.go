package bulk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOS_ObtainRelease(t *testing.T) {
	var p OS
	region, err := p.Obtain(5016)
	require.NoError(t, err)
	require.Len(t, region, 5016)
	for i := range region {
		require.Zero(t, region[i])
	}
	region[0], region[5015] = 1, 2

	require.NoError(t, p.Release(region))
}

func TestOS_ObtainRejectsBadSize(t *testing.T) {
	var p OS
	_, err := p.Obtain(0)
	require.ErrorIs(t, err, ErrObtainFail)
}

func TestLimited(t *testing.T) {
	l := NewLimited(OS{}, 10000)

	a, err := l.Obtain(6000)
	require.NoError(t, err)
	require.Equal(t, 6000, l.Live())

	_, err = l.Obtain(6000)
	require.ErrorIs(t, err, ErrObtainFail)
	require.Equal(t, 6000, l.Live(), "failed obtain must not change accounting")

	require.NoError(t, l.Release(a))
	require.Zero(t, l.Live())

	b, err := l.Obtain(10000)
	require.NoError(t, err)
	require.NoError(t, l.Release(b))
}
