// Package bitcodec converts between byte sequences and bit-level
// representations. Bit sequences are []byte slices whose elements are 0 or 1,
// always MSB first.
package bitcodec

import "fmt"

// BytesToBits expands data into individual bits, most significant bit first.
// The result has length 8*len(data).
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&0x1)
		}
	}
	return bits
}

// BitsToBytes packs bits (MSB first) back into bytes. It is the inverse of
// BytesToBits when len(bits) is a multiple of 8; a short final group is
// zero-padded on the right before conversion.
func BitsToBytes(bits []byte) []byte {
	chunks, _ := ChunkBits(bits, 8, true)
	out := make([]byte, 0, len(chunks))
	for _, chunk := range chunks {
		var value byte
		for _, bit := range chunk {
			value = (value << 1) | (bit & 0x1)
		}
		out = append(out, value)
	}
	return out
}

// ChunkBits partitions bits into consecutive groups of size. When pad is true
// the final short group is right-padded with zero bits to size; otherwise it is
// returned as-is, possibly shorter.
func ChunkBits(bits []byte, size int, pad bool) ([][]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("bitcodec: chunk size must be greater than zero, got %d", size)
	}

	chunks := make([][]byte, 0, (len(bits)+size-1)/size)
	accumulator := make([]byte, 0, size)
	for _, bit := range bits {
		accumulator = append(accumulator, bit&0x1)
		if len(accumulator) == size {
			chunks = append(chunks, accumulator)
			accumulator = make([]byte, 0, size)
		}
	}

	if len(accumulator) > 0 {
		if pad {
			for len(accumulator) < size {
				accumulator = append(accumulator, 0)
			}
		}
		chunks = append(chunks, accumulator)
	}

	return chunks, nil
}

// BitsToInt interprets bits (MSB first) as a non-negative integer.
func BitsToInt(bits []byte) int {
	value := 0
	for _, bit := range bits {
		value = (value << 1) | int(bit&0x1)
	}
	return value
}

// IntToBits returns the width-bit big-endian representation of value. A zero
// width yields an empty slice; only a zero value fits in it.
func IntToBits(value, width int) ([]byte, error) {
	if width < 0 {
		return nil, fmt.Errorf("bitcodec: width must be non-negative, got %d", width)
	}
	if value < 0 {
		return nil, fmt.Errorf("bitcodec: value must be non-negative, got %d", value)
	}
	if value >= 1<<uint(width) {
		return nil, fmt.Errorf("bitcodec: value %d does not fit into %d bits", value, width)
	}

	bits := make([]byte, 0, width)
	for shift := width - 1; shift >= 0; shift-- {
		bits = append(bits, byte((value>>uint(shift))&0x1))
	}
	return bits, nil
}
