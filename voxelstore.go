// Package voxelstore simulates writing byte payloads into a five-dimensional
// optical storage medium and reading them back. Data is packed bit by bit,
// protected by a forward-error-correction scheme, quantized onto discrete
// intensity and polarization levels and laid out over a 3D voxel lattice. The
// reader tolerates continuous-valued measurement noise on the way back.
package voxelstore

import (
	"errors"
	"math"

	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/quant"
)

var (
	// ErrConfiguration marks invalid writer parameters: grid, pitch, level
	// counts or ranges. Never recovered; fix the configuration.
	ErrConfiguration = errors.New("voxelstore: invalid configuration")
	// ErrCapacity marks a payload whose encoded form does not fit inside the
	// configured lattice.
	ErrCapacity = errors.New("voxelstore: payload exceeds lattice capacity")
	// ErrData marks a read that cannot reconstruct the required bits from the
	// available voxels.
	ErrData = errors.New("voxelstore: insufficient voxel data")
)

// MaxGridDim is a sanity ceiling on each lattice dimension.
const MaxGridDim = 10_000

// Config holds the physical and coding parameters of a write. The zero value
// is not usable; call DefaultConfig and override what you need.
type Config struct {
	GridSize           [3]int
	VoxelPitch         [3]float64 // physical spacing in micrometres, informational
	IntensityLevels    int
	PolarizationStates int
	IntensityRange     quant.Range
	PolarizationRange  quant.Range
	Scheme             ecc.Scheme
}

// DefaultConfig returns the reference medium parameters: a 64x64x32 lattice,
// 16 intensity levels, 8 polarization states and Hamming(7,4) protection.
func DefaultConfig() Config {
	return Config{
		GridSize:           [3]int{64, 64, 32},
		VoxelPitch:         [3]float64{5.0, 5.0, 20.0},
		IntensityLevels:    16,
		PolarizationStates: 8,
		IntensityRange:     quant.Range{Min: 0.15, Max: 1.0},
		PolarizationRange:  quant.Range{Min: 0.0, Max: math.Pi},
		Scheme:             ecc.Hamming74{},
	}
}
