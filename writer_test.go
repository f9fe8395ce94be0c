package voxelstore_test

import (
	"math"
	"testing"

	"github.com/optilab/voxelstore"
	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/quant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterRejectsBadConfig(t *testing.T) {
	mutate := func(f func(*voxelstore.Config)) voxelstore.Config {
		cfg := voxelstore.DefaultConfig()
		f(&cfg)
		return cfg
	}

	cases := []struct {
		name string
		cfg  voxelstore.Config
	}{
		{"zero grid dim", mutate(func(c *voxelstore.Config) { c.GridSize[1] = 0 })},
		{"negative grid dim", mutate(func(c *voxelstore.Config) { c.GridSize[0] = -4 })},
		{"grid dim above ceiling", mutate(func(c *voxelstore.Config) { c.GridSize[2] = 10_001 })},
		{"zero pitch", mutate(func(c *voxelstore.Config) { c.VoxelPitch[0] = 0 })},
		{"negative pitch", mutate(func(c *voxelstore.Config) { c.VoxelPitch[2] = -1 })},
		{"zero intensity levels", mutate(func(c *voxelstore.Config) { c.IntensityLevels = 0 })},
		{"non power of two levels", mutate(func(c *voxelstore.Config) { c.IntensityLevels = 6 })},
		{"zero polarization states", mutate(func(c *voxelstore.Config) { c.PolarizationStates = 0 })},
		{"inverted intensity range", mutate(func(c *voxelstore.Config) { c.IntensityRange = quant.Range{Min: 1.0, Max: 0.5} })},
		{"empty polarization range", mutate(func(c *voxelstore.Config) { c.PolarizationRange = quant.Range{Min: 1.0, Max: 1.0} })},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := voxelstore.NewWriter(c.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, voxelstore.ErrConfiguration)
		})
	}
}

func TestNewWriterRejectsZeroInformationConfig(t *testing.T) {
	cfg := voxelstore.DefaultConfig()
	cfg.IntensityLevels = 1
	cfg.PolarizationStates = 1
	_, err := voxelstore.NewWriter(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, voxelstore.ErrConfiguration)
}

func TestWriterBitAccounting(t *testing.T) {
	cfg := voxelstore.DefaultConfig()
	cfg.GridSize = [3]int{4, 4, 1}
	cfg.IntensityLevels = 4
	cfg.PolarizationStates = 4
	cfg.Scheme = ecc.Hamming74{}
	w, err := voxelstore.NewWriter(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, w.BitsPerVoxel())

	// "A" = 8 bits -> 2 Hamming blocks -> 14 encoded bits -> 4 voxels of
	// 4 bits with 2 padding bits.
	p, err := w.Write([]byte("A"))
	require.NoError(t, err)
	assert.Equal(t, 14, p.EncodedBitLength)
	assert.Equal(t, 8, p.DataBitLength)
	assert.Equal(t, 2, p.PaddingBits)
	assert.Equal(t, 4, p.VoxelCount())
	assert.Equal(t, 1, p.DataLengthBytes)
	require.NoError(t, p.Validate())
}

func TestWriterRowMajorCoordinates(t *testing.T) {
	cfg := voxelstore.DefaultConfig()
	cfg.GridSize = [3]int{2, 2, 2}
	cfg.IntensityLevels = 4
	cfg.PolarizationStates = 4
	cfg.Scheme = ecc.None{}
	w, err := voxelstore.NewWriter(cfg)
	require.NoError(t, err)

	// 3 bytes = 24 bits = 6 voxels: the first plane fills x-fastest, then the
	// second plane starts.
	p, err := w.Write([]byte{0x00, 0xFF, 0x0F})
	require.NoError(t, err)
	require.Equal(t, 6, p.VoxelCount())

	expected := [][3]int{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1},
	}
	for i, want := range expected {
		v := p.Voxels[i]
		assert.Equal(t, want, [3]int{v.X, v.Y, v.Z}, "voxel %d", i)
	}
}

func TestWriterCapacityGuard(t *testing.T) {
	cfg := voxelstore.DefaultConfig()
	cfg.GridSize = [3]int{2, 2, 1}
	cfg.IntensityLevels = 2
	cfg.PolarizationStates = 2
	cfg.Scheme = ecc.None{}
	w, err := voxelstore.NewWriter(cfg)
	require.NoError(t, err)

	// Capacity is 4 voxels * 2 bits = 8 bits, exactly one byte.
	p, err := w.Write([]byte{0xC3})
	require.NoError(t, err)
	assert.Equal(t, 4, p.VoxelCount())
	assert.Equal(t, 0, p.PaddingBits)

	_, err = w.Write([]byte{0xC3, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, voxelstore.ErrCapacity)
	assert.Contains(t, err.Error(), "requires 8 voxels, only 4 available")
}

func TestWriterEmptyPayload(t *testing.T) {
	w, err := voxelstore.NewWriter(voxelstore.DefaultConfig())
	require.NoError(t, err)

	p, err := w.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.VoxelCount())
	assert.Equal(t, 0, p.EncodedBitLength)
	assert.Equal(t, 0, p.PaddingBits)

	r, err := voxelstore.NewReader(p)
	require.NoError(t, err)
	result, err := r.Read(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.VoxelsUsed)
}

func TestWriterVoxelValuesAreQuantized(t *testing.T) {
	cfg := voxelstore.DefaultConfig()
	cfg.GridSize = [3]int{8, 8, 1}
	cfg.IntensityLevels = 4
	cfg.PolarizationStates = 4
	cfg.IntensityRange = quant.Range{Min: 0.0, Max: 1.0}
	cfg.PolarizationRange = quant.Range{Min: 0.0, Max: math.Pi}
	cfg.Scheme = ecc.None{}
	w, err := voxelstore.NewWriter(cfg)
	require.NoError(t, err)

	// 1111 1111: both levels are 3 in the first voxel -> range maxima.
	p, err := w.Write([]byte{0xFF})
	require.NoError(t, err)
	require.NotEmpty(t, p.Voxels)
	assert.Equal(t, 1.0, p.Voxels[0].Intensity)
	assert.Equal(t, math.Pi, p.Voxels[0].Polarization)

	// 0000 0000: both levels are 0 in the first voxel -> range minima.
	p, err = w.Write([]byte{0x00})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Voxels[0].Intensity)
	assert.Equal(t, 0.0, p.Voxels[0].Polarization)
}
