package voxelstore

import (
	"fmt"

	"github.com/optilab/voxelstore/pkg/bitcodec"
	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/pattern"
	"github.com/optilab/voxelstore/pkg/quant"
)

// Writer translates byte payloads into voxel patterns. Build one with
// NewWriter; a Writer is immutable and safe to reuse across payloads.
type Writer struct {
	config Config

	bitsPerIntensity    int
	bitsPerPolarization int
	bitsPerVoxel        int
}

// NewWriter validates the configuration and precomputes the bit widths. A nil
// scheme defaults to passthrough.
func NewWriter(config Config) (*Writer, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.Scheme == nil {
		config.Scheme = ecc.None{}
	}

	bitsPerIntensity, err := quant.BitsForLevels(config.IntensityLevels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	bitsPerPolarization, err := quant.BitsForLevels(config.PolarizationStates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	bitsPerVoxel := bitsPerIntensity + bitsPerPolarization
	if bitsPerVoxel == 0 {
		return nil, fmt.Errorf("%w: at least one dimension must encode information", ErrConfiguration)
	}

	return &Writer{
		config:              config,
		bitsPerIntensity:    bitsPerIntensity,
		bitsPerPolarization: bitsPerPolarization,
		bitsPerVoxel:        bitsPerVoxel,
	}, nil
}

// Config returns the validated configuration the writer was built with.
func (w *Writer) Config() Config { return w.config }

// BitsPerVoxel returns how many payload bits a single voxel carries.
func (w *Writer) BitsPerVoxel() int { return w.bitsPerVoxel }

// Write encodes data into a new StoragePattern: bytes to bits, FEC encoding,
// zero padding up to a whole number of voxels, then one voxel per
// bits-per-voxel chunk along the row-major lattice order.
func (w *Writer) Write(data []byte) (*pattern.StoragePattern, error) {
	payloadBits := bitcodec.BytesToBits(data)
	encodedBits := w.config.Scheme.Encode(payloadBits)
	encodedBitLength := len(encodedBits)

	gx, gy, gz := w.config.GridSize[0], w.config.GridSize[1], w.config.GridSize[2]
	maxVoxels := gx * gy * gz
	requiredVoxels := 0
	if encodedBitLength > 0 {
		requiredVoxels = (encodedBitLength + w.bitsPerVoxel - 1) / w.bitsPerVoxel
	}
	if requiredVoxels > maxVoxels {
		return nil, fmt.Errorf("%w: requires %d voxels, only %d available",
			ErrCapacity, requiredVoxels, maxVoxels)
	}

	paddingBits := 0
	if encodedBitLength > 0 {
		paddingBits = requiredVoxels*w.bitsPerVoxel - encodedBitLength
	}
	paddedBits := make([]byte, 0, encodedBitLength+paddingBits)
	paddedBits = append(paddedBits, encodedBits...)
	for i := 0; i < paddingBits; i++ {
		paddedBits = append(paddedBits, 0)
	}

	chunks, err := bitcodec.ChunkBits(paddedBits, w.bitsPerVoxel, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	voxels := make([]pattern.Voxel, 0, requiredVoxels)
	for index, chunk := range chunks {
		x, y, z, err := w.indexToCoordinates(index)
		if err != nil {
			return nil, err
		}
		intensityBits := chunk[:w.bitsPerIntensity]
		polarizationBits := chunk[w.bitsPerIntensity:]

		intensityLevel := bitcodec.BitsToInt(intensityBits)
		polarizationLevel := bitcodec.BitsToInt(polarizationBits)

		intensity := quant.LevelToPhysical(intensityLevel, w.config.IntensityLevels, w.config.IntensityRange)
		polarization := quant.LevelToPhysical(polarizationLevel, w.config.PolarizationStates, w.config.PolarizationRange)

		voxel, err := pattern.NewVoxel(x, y, z, intensity, polarization)
		if err != nil {
			return nil, err
		}
		voxels = append(voxels, voxel)
	}

	return &pattern.StoragePattern{
		Voxels:             voxels,
		GridSize:           w.config.GridSize,
		VoxelPitch:         w.config.VoxelPitch,
		IntensityLevels:    w.config.IntensityLevels,
		IntensityRange:     w.config.IntensityRange,
		PolarizationStates: w.config.PolarizationStates,
		PolarizationRange:  w.config.PolarizationRange,
		BitsPerVoxel:       w.bitsPerVoxel,
		EncodedBitLength:   encodedBitLength,
		DataBitLength:      len(payloadBits),
		PaddingBits:        paddingBits,
		Scheme:             w.config.Scheme,
		SchemeMetadata:     w.config.Scheme.Metadata(),
		DataLengthBytes:    len(data),
	}, nil
}

// indexToCoordinates maps a linear voxel index onto lattice coordinates,
// x fastest, then y, with z as the plane index. The depth check is defensive;
// the capacity guard in Write keeps indexes in range.
func (w *Writer) indexToCoordinates(index int) (x, y, z int, err error) {
	gx, gy, gz := w.config.GridSize[0], w.config.GridSize[1], w.config.GridSize[2]
	planeSize := gx * gy
	z = index / planeSize
	if z >= gz {
		return 0, 0, 0, fmt.Errorf("%w: voxel index %d exceeds lattice depth", ErrCapacity, index)
	}
	remainder := index % planeSize
	y = remainder / gx
	x = remainder % gx
	return x, y, z, nil
}

func validateConfig(c Config) error {
	for _, dim := range c.GridSize {
		if dim <= 0 {
			return fmt.Errorf("%w: grid dimensions must be positive, got %v", ErrConfiguration, c.GridSize)
		}
		if dim > MaxGridDim {
			return fmt.Errorf("%w: grid dimension %d exceeds maximum %d", ErrConfiguration, dim, MaxGridDim)
		}
	}
	for _, p := range c.VoxelPitch {
		if p <= 0 {
			return fmt.Errorf("%w: voxel pitch values must be positive, got %v", ErrConfiguration, c.VoxelPitch)
		}
	}
	if c.IntensityLevels <= 0 || c.PolarizationStates <= 0 {
		return fmt.Errorf("%w: quantization levels must be positive", ErrConfiguration)
	}
	if !c.IntensityRange.Valid() {
		return fmt.Errorf("%w: intensity range lower bound must be below upper bound, got %+v",
			ErrConfiguration, c.IntensityRange)
	}
	if !c.PolarizationRange.Valid() {
		return fmt.Errorf("%w: polarization range lower bound must be below upper bound, got %+v",
			ErrConfiguration, c.PolarizationRange)
	}
	return nil
}
