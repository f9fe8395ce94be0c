// Package host is the orchestration layer above the core codec. It packages a
// payload for writing, with optional LZMA compression and a reversible
// scrambling pass, drives the core writer, and verifies patterns by reading
// them back and undoing both transforms. The core write/read pipeline stays a
// pure function of its bit-level input; everything here layers outside it.
package host

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/optilab/voxelstore"
	"github.com/optilab/voxelstore/pkg/pattern"
	"github.com/ulikunitz/xz/lzma"
)

// Options configures the host writer. The zero value means no scrambling and
// no compression on top of the default medium configuration.
type Options struct {
	Config voxelstore.Config
	// Scramble XORs the payload with a seeded keystream before writing and
	// after reading. It whitens the bit distribution over the lattice without
	// touching the core codec.
	Scramble     bool
	ScrambleSeed int64
	// Compress runs the payload through LZMA before the scrambling pass.
	Compress bool
}

// Writer wraps the core writer with the host-side payload transforms.
type Writer struct {
	core *voxelstore.Writer
	opts Options
}

// Readback is the result of verifying a pattern: the recovered payload after
// descrambling and decompression, plus the raw core read result.
type Readback struct {
	Data       []byte
	Pattern    *pattern.StoragePattern
	ReadResult *voxelstore.ReadResult
}

func NewWriter(opts Options) (*Writer, error) {
	core, err := voxelstore.NewWriter(opts.Config)
	if err != nil {
		return nil, err
	}
	return &Writer{core: core, opts: opts}, nil
}

// Write packages data (compress, then scramble) and encodes it into a
// StoragePattern.
func (w *Writer) Write(data []byte) (*pattern.StoragePattern, error) {
	payload := data
	if w.opts.Compress {
		compressed, err := compressLZMA(payload)
		if err != nil {
			return nil, fmt.Errorf("host: compress payload: %w", err)
		}
		payload = compressed
	}
	if w.opts.Scramble {
		payload = scramble(payload, w.opts.ScrambleSeed)
	}
	return w.core.Write(payload)
}

// Verify reads a pattern back and undoes the host-side transforms. A non-nil
// voxels slice substitutes the pattern's own measurements, the hook used by
// noise simulations.
func (w *Writer) Verify(p *pattern.StoragePattern, voxels []pattern.Voxel) (*Readback, error) {
	reader, err := voxelstore.NewReader(p)
	if err != nil {
		return nil, err
	}
	result, err := reader.Read(voxels)
	if err != nil {
		return nil, err
	}

	data := result.Data
	if w.opts.Scramble {
		data = scramble(data, w.opts.ScrambleSeed)
	}
	if w.opts.Compress {
		decompressed, err := decompressLZMA(data)
		if err != nil {
			return nil, fmt.Errorf("host: decompress payload: %w", err)
		}
		data = decompressed
	}

	return &Readback{Data: data, Pattern: p, ReadResult: result}, nil
}

// scramble XORs data with a deterministic keystream. Applying it twice with
// the same seed restores the input.
func scramble(data []byte, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ byte(rng.Intn(256))
	}
	return out
}

func compressLZMA(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZMA(data []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
