package quant_test

import (
	"math"
	"testing"

	"github.com/optilab/voxelstore/pkg/quant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsForLevels(t *testing.T) {
	cases := []struct {
		levels int
		bits   int
	}{
		{1, 0},
		{2, 1},
		{4, 2},
		{8, 3},
		{16, 4},
		{256, 8},
	}
	for _, c := range cases {
		bits, err := quant.BitsForLevels(c.levels)
		require.NoError(t, err)
		assert.Equal(t, c.bits, bits, "levels=%d", c.levels)
	}

	for _, levels := range []int{0, -1, 3, 5, 6, 7, 12, 100} {
		_, err := quant.BitsForLevels(levels)
		assert.Error(t, err, "levels=%d", levels)
	}
}

func TestLevelToPhysical(t *testing.T) {
	r := quant.Range{Min: 0.0, Max: 1.0}

	assert.Equal(t, 0.5, quant.LevelToPhysical(0, 1, r))
	assert.Equal(t, 0.5, quant.LevelToPhysical(7, 1, r))

	assert.Equal(t, 0.0, quant.LevelToPhysical(0, 4, r))
	assert.InDelta(t, 1.0/3.0, quant.LevelToPhysical(1, 4, r), 1e-12)
	assert.Equal(t, 1.0, quant.LevelToPhysical(3, 4, r))

	// Out-of-range levels clamp to the valid interval.
	assert.Equal(t, 0.0, quant.LevelToPhysical(-4, 4, r))
	assert.Equal(t, 1.0, quant.LevelToPhysical(99, 4, r))
}

func TestPhysicalToLevelClamps(t *testing.T) {
	r := quant.Range{Min: 0.2, Max: 1.0}
	assert.Equal(t, 0, quant.PhysicalToLevel(-5.0, 8, r))
	assert.Equal(t, 7, quant.PhysicalToLevel(42.0, 8, r))
	assert.Equal(t, 0, quant.PhysicalToLevel(3.0, 1, r))
}

func TestQuantizationInverse(t *testing.T) {
	ranges := []quant.Range{
		{Min: 0.0, Max: 1.0},
		{Min: 0.15, Max: 1.0},
		{Min: 0.0, Max: math.Pi},
		{Min: -3.5, Max: 12.25},
	}
	for _, r := range ranges {
		for _, levels := range []int{1, 2, 4, 8, 16, 64, 256} {
			for level := 0; level < levels; level++ {
				physical := quant.LevelToPhysical(level, levels, r)
				got := quant.PhysicalToLevel(physical, levels, r)
				if levels == 1 {
					assert.Equal(t, 0, got)
					continue
				}
				assert.Equal(t, level, got, "levels=%d range=%+v", levels, r)
			}
		}
	}
}

func TestRangeValid(t *testing.T) {
	assert.True(t, quant.Range{Min: 0, Max: 1}.Valid())
	assert.False(t, quant.Range{Min: 1, Max: 1}.Valid())
	assert.False(t, quant.Range{Min: 2, Max: 1}.Valid())
	assert.False(t, quant.Range{Min: math.NaN(), Max: 1}.Valid())
	assert.False(t, quant.Range{Min: 0, Max: math.Inf(1)}.Valid())
}
