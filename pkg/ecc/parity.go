package ecc

import "github.com/optilab/voxelstore/pkg/bitcodec"

// Parity8 appends one even-parity bit per 8 data bits. It detects single-bit
// errors per 9-bit block but never corrects anything.
type Parity8 struct{}

func (Parity8) Name() string { return SchemeParity8 }

func (Parity8) Encode(bits []byte) []byte {
	chunks, _ := bitcodec.ChunkBits(bits, 8, true)
	encoded := make([]byte, 0, len(chunks)*9)
	for _, chunk := range chunks {
		var parity byte
		for _, bit := range chunk {
			parity ^= bit & 0x1
		}
		encoded = append(encoded, chunk...)
		encoded = append(encoded, parity)
	}
	return encoded
}

func (Parity8) Decode(bits []byte) DecodingResult {
	blocks, _ := bitcodec.ChunkBits(bits, 9, true)
	uncorrectable := 0
	decoded := make([]byte, 0, len(blocks)*8)
	for _, block := range blocks {
		var parity byte
		for _, bit := range block[:8] {
			parity ^= bit & 0x1
		}
		if parity != block[8]&0x1 {
			uncorrectable++
		}
		// The data bits are passed through regardless of the parity outcome.
		decoded = append(decoded, block[:8]...)
	}
	return DecodingResult{Bits: decoded, DetectedUncorrectable: uncorrectable}
}

func (Parity8) Metadata() map[string]int {
	return map[string]int{
		"data_bits_per_block":    8,
		"encoded_bits_per_block": 9,
	}
}
