package ecc

import "github.com/optilab/voxelstore/pkg/bitcodec"

// Hamming74 is the classic (7,4) Hamming code able to correct single-bit
// errors. Decode attempts one syndrome-based flip per 7-bit block, then
// recomputes the syndrome and reconstructs the parity bits from the corrected
// data bits; if either check still fails the block is counted as
// detected-uncorrectable. The secondary check is a heuristic: it catches a
// subset of double-bit errors, and some double-bit patterns will still decode
// silently to wrong data. Callers depend on these exact counters, so the
// heuristic must stay as-is.
type Hamming74 struct{}

func (Hamming74) Name() string { return SchemeHamming74 }

// Encode maps each 4-bit data block (zero-padded) to a 7-bit block laid out
// as [p1 p2 d1 p3 d2 d3 d4].
func (Hamming74) Encode(bits []byte) []byte {
	chunks, _ := bitcodec.ChunkBits(bits, 4, true)
	encoded := make([]byte, 0, len(chunks)*7)
	for _, chunk := range chunks {
		d1, d2, d3, d4 := chunk[0], chunk[1], chunk[2], chunk[3]
		p1 := (d1 ^ d2 ^ d4) & 0x1
		p2 := (d1 ^ d3 ^ d4) & 0x1
		p3 := (d2 ^ d3 ^ d4) & 0x1
		encoded = append(encoded, p1, p2, d1, p3, d2, d3, d4)
	}
	return encoded
}

func (Hamming74) Decode(bits []byte) DecodingResult {
	blocks, _ := bitcodec.ChunkBits(bits, 7, true)
	corrected := 0
	uncorrectable := 0
	decoded := make([]byte, 0, len(blocks)*4)
	for _, block := range blocks {
		s1 := (block[0] ^ block[2] ^ block[4] ^ block[6]) & 0x1
		s2 := (block[1] ^ block[2] ^ block[5] ^ block[6]) & 0x1
		s3 := (block[3] ^ block[4] ^ block[5] ^ block[6]) & 0x1
		errorPosition := int(s3)<<2 | int(s2)<<1 | int(s1)
		if errorPosition != 0 {
			block[errorPosition-1] ^= 0x1
			corrected++

			// A clean syndrome after the flip is not proof of success, so
			// re-derive the parity bits from the corrected data bits as well.
			r1 := (block[0] ^ block[2] ^ block[4] ^ block[6]) & 0x1
			r2 := (block[1] ^ block[2] ^ block[5] ^ block[6]) & 0x1
			r3 := (block[3] ^ block[4] ^ block[5] ^ block[6]) & 0x1
			if int(r3)<<2|int(r2)<<1|int(r1) != 0 {
				uncorrectable++
			} else {
				d1, d2, d3, d4 := block[2], block[4], block[5], block[6]
				ep1 := (d1 ^ d2 ^ d4) & 0x1
				ep2 := (d1 ^ d3 ^ d4) & 0x1
				ep3 := (d2 ^ d3 ^ d4) & 0x1
				if ep1 != block[0] || ep2 != block[1] || ep3 != block[3] {
					uncorrectable++
				}
			}
		}
		decoded = append(decoded, block[2], block[4], block[5], block[6])
	}
	return DecodingResult{
		Bits:                  decoded,
		CorrectedErrors:       corrected,
		DetectedUncorrectable: uncorrectable,
	}
}

func (Hamming74) Metadata() map[string]int {
	return map[string]int{
		"data_bits_per_block":    4,
		"encoded_bits_per_block": 7,
	}
}
