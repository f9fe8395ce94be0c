package pattern

import (
	"encoding/json"

	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/quant"
)

// patternDoc is the plain keyed form of a StoragePattern. Tuples serialize as
// ordered arrays and the scheme as its name string, so documents stay readable
// and language-neutral.
type patternDoc struct {
	Voxels             []Voxel        `json:"voxels"`
	GridSize           [3]int         `json:"grid_size"`
	VoxelPitch         [3]float64     `json:"voxel_pitch"`
	IntensityLevels    int            `json:"intensity_levels"`
	IntensityRange     [2]float64     `json:"intensity_range"`
	PolarizationStates int            `json:"polarization_states"`
	PolarizationRange  [2]float64     `json:"polarization_range"`
	BitsPerVoxel       int            `json:"bits_per_voxel"`
	EncodedBitLength   int            `json:"encoded_bit_length"`
	DataBitLength      int            `json:"data_bit_length"`
	PaddingBits        int            `json:"padding_bits"`
	ErrorCorrection    string         `json:"error_correction"`
	SchemeMetadata     map[string]int `json:"error_correction_metadata"`
	DataLengthBytes    int            `json:"data_length_bytes"`
}

// MarshalJSON serializes the pattern as its keyed document form.
func (p *StoragePattern) MarshalJSON() ([]byte, error) {
	name := ecc.SchemeNone
	if p.Scheme != nil {
		name = p.Scheme.Name()
	}
	doc := patternDoc{
		Voxels:             p.Voxels,
		GridSize:           p.GridSize,
		VoxelPitch:         p.VoxelPitch,
		IntensityLevels:    p.IntensityLevels,
		IntensityRange:     [2]float64{p.IntensityRange.Min, p.IntensityRange.Max},
		PolarizationStates: p.PolarizationStates,
		PolarizationRange:  [2]float64{p.PolarizationRange.Min, p.PolarizationRange.Max},
		BitsPerVoxel:       p.BitsPerVoxel,
		EncodedBitLength:   p.EncodedBitLength,
		DataBitLength:      p.DataBitLength,
		PaddingBits:        p.PaddingBits,
		ErrorCorrection:    name,
		SchemeMetadata:     p.SchemeMetadata,
		DataLengthBytes:    p.DataLengthBytes,
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores a pattern from its document form. Unrecognized
// scheme names resolve to the passthrough scheme. The restored pattern is
// validated against the bit-accounting and voxel invariants.
func (p *StoragePattern) UnmarshalJSON(data []byte) error {
	var doc patternDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	restored := StoragePattern{
		Voxels:             doc.Voxels,
		GridSize:           doc.GridSize,
		VoxelPitch:         doc.VoxelPitch,
		IntensityLevels:    doc.IntensityLevels,
		IntensityRange:     quant.Range{Min: doc.IntensityRange[0], Max: doc.IntensityRange[1]},
		PolarizationStates: doc.PolarizationStates,
		PolarizationRange:  quant.Range{Min: doc.PolarizationRange[0], Max: doc.PolarizationRange[1]},
		BitsPerVoxel:       doc.BitsPerVoxel,
		EncodedBitLength:   doc.EncodedBitLength,
		DataBitLength:      doc.DataBitLength,
		PaddingBits:        doc.PaddingBits,
		Scheme:             ecc.FromName(doc.ErrorCorrection),
		SchemeMetadata:     doc.SchemeMetadata,
		DataLengthBytes:    doc.DataLengthBytes,
	}
	if err := restored.Validate(); err != nil {
		return err
	}
	*p = restored
	return nil
}
