package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"min class below link size", func(c *Config) { c.MinClass = 16 }, false},
		{"min class not power of two", func(c *Config) { c.MinClass = 48 }, false},
		{"increment not power of two", func(c *Config) { c.Increment = 5000 }, false},
		{"increment below min class", func(c *Config) { c.MinClass = 64; c.Increment = 32 }, false},
		{"max heap not multiple", func(c *Config) { c.MaxHeap = 4096*3 + 1 }, false},
		{"max heap below increment", func(c *Config) { c.MaxHeap = 0 }, false},
		{"single class", func(c *Config) { c.Increment = 32; c.MaxHeap = 1 << 12 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrBadConfig)
			}
		})
	}
}

func TestConfig_Presets(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig, ConfigLarge, ConfigSmall} {
		require.NoError(t, cfg.Validate(), cfg.Name)
	}
	assert.Equal(t, 4088, DefaultConfig.Threshold())
	assert.Equal(t, 65528, ConfigLarge.Threshold())
	assert.Equal(t, 1016, ConfigSmall.Threshold())
}

func TestConfig_Classes(t *testing.T) {
	classes := DefaultConfig.Classes()
	require.Len(t, classes, 8)

	assert.Equal(t, SizeClass{Size: 32, MinRequest: 1, MaxRequest: 24}, classes[0])
	assert.Equal(t, SizeClass{Size: 64, MinRequest: 25, MaxRequest: 56}, classes[1])
	assert.Equal(t, SizeClass{Size: 4096, MinRequest: 2041, MaxRequest: 4088}, classes[7])

	// The table must agree with classify for every request.
	a, _ := newTestAllocator(t, nil, 0)
	for _, c := range classes {
		assert.Equal(t, c.Size, a.classify(c.MinRequest), "min of class %d", c.Size)
		assert.Equal(t, c.Size, a.classify(c.MaxRequest), "max of class %d", c.Size)
	}
}

func TestConfig_SmallIncrement(t *testing.T) {
	cfg := ConfigSmall
	a, prov := newTestAllocator(t, &cfg, 0)
	growCount := setupGrowCounter(a)

	p, err := a.Malloc(1016)
	require.NoError(t, err)
	assert.Equal(t, 1, *growCount)
	assert.Empty(t, prov.Obtained)

	q, err := a.Malloc(1017)
	require.NoError(t, err)
	assert.Len(t, prov.Obtained, 1, "requests above the small threshold go bulk")

	require.NoError(t, a.Free(q))
	require.NoError(t, a.Free(p))
	assertInvariants(t, a)
}
