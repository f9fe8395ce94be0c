// Package ecc implements the forward-error-correction schemes used when
// writing bit streams into a voxel lattice. The scheme set is closed: None,
// Hamming74 and Parity8, each stateless and safe for concurrent use.
package ecc

// DecodingResult carries the decoded payload bits together with FEC
// diagnostics. Decode never fails; corrupted blocks are reported through the
// counters so the caller can decide policy.
type DecodingResult struct {
	Bits                  []byte
	CorrectedErrors       int
	DetectedUncorrectable int
}

// Scheme is the common contract of all error-correction variants. Encode
// accepts a well-formed bit sequence (values 0/1) and never fails; Decode
// reports diagnostics instead of returning errors.
type Scheme interface {
	Name() string
	Encode(bits []byte) []byte
	Decode(bits []byte) DecodingResult
	// Metadata describes the block geometry of the scheme; empty for the
	// passthrough variant.
	Metadata() map[string]int
}

// Scheme name strings, used by pattern serialization.
const (
	SchemeNone      = "none"
	SchemeHamming74 = "hamming74"
	SchemeParity8   = "parity8"
)

// None is the passthrough scheme: encode and decode are identity maps over
// bit values masked to {0,1}.
type None struct{}

func (None) Name() string { return SchemeNone }

func (None) Encode(bits []byte) []byte {
	out := make([]byte, len(bits))
	for i, bit := range bits {
		out[i] = bit & 0x1
	}
	return out
}

func (None) Decode(bits []byte) DecodingResult {
	out := make([]byte, len(bits))
	for i, bit := range bits {
		out[i] = bit & 0x1
	}
	return DecodingResult{Bits: out}
}

func (None) Metadata() map[string]int { return map[string]int{} }

// FromName resolves a scheme by its serialized name. Unrecognized names fall
// back to the passthrough scheme.
func FromName(name string) Scheme {
	switch name {
	case SchemeHamming74:
		return Hamming74{}
	case SchemeParity8:
		return Parity8{}
	default:
		return None{}
	}
}
