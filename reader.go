package voxelstore

import (
	"fmt"

	"github.com/optilab/voxelstore/pkg/bitcodec"
	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/pattern"
	"github.com/optilab/voxelstore/pkg/quant"
)

// ReadResult is the outcome of reading a pattern back: the recovered bytes,
// FEC diagnostics and the intermediate bit streams for inspection.
type ReadResult struct {
	Data                  []byte
	CorrectedErrors       int
	DetectedUncorrectable int
	VoxelsUsed            int
	RawBitstream          []byte
	DecodedPayloadBits    []byte
}

// Reader recovers the original bytes from a voxel lattice, reusing the
// quantization and coding parameters recorded in the pattern.
type Reader struct {
	pattern *pattern.StoragePattern

	bitsPerIntensity    int
	bitsPerPolarization int
	bitsPerVoxel        int
}

// NewReader validates that the pattern carries decodable information and
// derives the per-voxel bit widths from its level counts.
func NewReader(p *pattern.StoragePattern) (*Reader, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil pattern", ErrData)
	}
	if p.BitsPerVoxel <= 0 && p.EncodedBitLength > 0 {
		return nil, fmt.Errorf("%w: pattern does not contain encodable information", ErrConfiguration)
	}

	bitsPerIntensity, err := quant.BitsForLevels(p.IntensityLevels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	bitsPerPolarization, err := quant.BitsForLevels(p.PolarizationStates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &Reader{
		pattern:             p,
		bitsPerIntensity:    bitsPerIntensity,
		bitsPerPolarization: bitsPerPolarization,
		bitsPerVoxel:        bitsPerIntensity + bitsPerPolarization,
	}, nil
}

// Read reconstructs the payload. When voxels is nil the pattern's own voxel
// sequence is used; a noise simulation passes its perturbed replacement slice
// instead, leaving the pattern untouched.
func (r *Reader) Read(voxels []pattern.Voxel) (*ReadResult, error) {
	if voxels == nil {
		voxels = r.pattern.Voxels
	}
	if len(voxels) == 0 && r.pattern.EncodedBitLength > 0 {
		return nil, fmt.Errorf("%w: no voxels provided for decoding", ErrData)
	}

	requiredBits := r.pattern.EncodedBitLength + r.pattern.PaddingBits
	collected := make([]byte, 0, requiredBits)
	voxelsUsed := 0
	for _, voxel := range voxels {
		if requiredBits > 0 && len(collected) >= requiredBits {
			break
		}
		intensityLevel := quant.PhysicalToLevel(voxel.Intensity, r.pattern.IntensityLevels, r.pattern.IntensityRange)
		polarizationLevel := quant.PhysicalToLevel(voxel.Polarization, r.pattern.PolarizationStates, r.pattern.PolarizationRange)

		if r.bitsPerIntensity > 0 {
			bits, err := bitcodec.IntToBits(intensityLevel, r.bitsPerIntensity)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrData, err)
			}
			collected = append(collected, bits...)
		}
		if r.bitsPerPolarization > 0 {
			bits, err := bitcodec.IntToBits(polarizationLevel, r.bitsPerPolarization)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrData, err)
			}
			collected = append(collected, bits...)
		}
		voxelsUsed++
	}

	if requiredBits > 0 && len(collected) < requiredBits {
		return nil, fmt.Errorf("%w: need %d bits, voxels yielded %d", ErrData, requiredBits, len(collected))
	}

	if requiredBits > 0 {
		collected = collected[:requiredBits]
	}
	encoded := collected
	if r.pattern.PaddingBits > 0 {
		encoded = collected[:len(collected)-r.pattern.PaddingBits]
	}

	scheme := r.pattern.Scheme
	if scheme == nil {
		scheme = ecc.None{}
	}
	decoded := scheme.Decode(encoded)

	payloadBits := decoded.Bits
	if len(payloadBits) > r.pattern.DataBitLength {
		payloadBits = payloadBits[:r.pattern.DataBitLength]
	}
	data := bitcodec.BitsToBytes(payloadBits)
	if len(data) > r.pattern.DataLengthBytes {
		data = data[:r.pattern.DataLengthBytes]
	}

	return &ReadResult{
		Data:                  data,
		CorrectedErrors:       decoded.CorrectedErrors,
		DetectedUncorrectable: decoded.DetectedUncorrectable,
		VoxelsUsed:            voxelsUsed,
		RawBitstream:          collected,
		DecodedPayloadBits:    payloadBits,
	}, nil
}
