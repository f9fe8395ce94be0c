// Package pattern defines the voxel data model of the 5D storage simulation:
// the Voxel point record and the StoragePattern that binds a voxel sequence to
// the geometry, quantization and error-correction parameters that produced it.
package pattern

import (
	"fmt"

	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/quant"
)

// StoragePattern is the canonical unit of stored data. The voxel order is the
// row-major linearization of the lattice: x fastest within a plane, then y,
// with z as the plane index. A pattern is created once by the writer and is
// read-only afterwards; noise simulation hands the reader a replacement voxel
// slice instead of mutating the original.
type StoragePattern struct {
	Voxels []Voxel

	GridSize   [3]int
	VoxelPitch [3]float64

	IntensityLevels    int
	IntensityRange     quant.Range
	PolarizationStates int
	PolarizationRange  quant.Range

	BitsPerVoxel     int
	EncodedBitLength int
	DataBitLength    int
	PaddingBits      int

	Scheme          ecc.Scheme
	SchemeMetadata  map[string]int
	DataLengthBytes int
}

// VoxelCount returns the number of voxels actually written.
func (p *StoragePattern) VoxelCount() int {
	return len(p.Voxels)
}

// CapacityBits returns the total raw bit capacity of the configured lattice,
// before error correction.
func (p *StoragePattern) CapacityBits() int {
	return p.GridSize[0] * p.GridSize[1] * p.GridSize[2] * p.BitsPerVoxel
}

// Summary returns the key parameters as a flat map, handy for logging and the
// CLI info command.
func (p *StoragePattern) Summary() map[string]any {
	name := ecc.SchemeNone
	if p.Scheme != nil {
		name = p.Scheme.Name()
	}
	return map[string]any{
		"grid_size":                 p.GridSize,
		"voxel_pitch":               p.VoxelPitch,
		"intensity_levels":          p.IntensityLevels,
		"polarization_states":       p.PolarizationStates,
		"bits_per_voxel":            p.BitsPerVoxel,
		"encoded_bit_length":        p.EncodedBitLength,
		"data_bit_length":           p.DataBitLength,
		"padding_bits":              p.PaddingBits,
		"error_correction":          name,
		"error_correction_metadata": p.SchemeMetadata,
		"data_length_bytes":         p.DataLengthBytes,
		"voxel_count":               p.VoxelCount(),
	}
}

// Validate checks the structural invariants of a pattern, in particular the
// bit accounting: encoded bits plus padding must exactly fill the voxels that
// were written.
func (p *StoragePattern) Validate() error {
	if p.VoxelCount() > 0 && p.EncodedBitLength+p.PaddingBits != p.VoxelCount()*p.BitsPerVoxel {
		return fmt.Errorf("pattern: bit accounting mismatch: encoded %d + padding %d != %d voxels * %d bits",
			p.EncodedBitLength, p.PaddingBits, p.VoxelCount(), p.BitsPerVoxel)
	}
	for i, v := range p.Voxels {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("pattern: voxel %d: %w", i, err)
		}
	}
	return nil
}
