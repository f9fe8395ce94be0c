// Package quant maps continuous physical values onto discrete levels and back.
// Level counts must be powers of two so that levels map exactly onto bit
// widths.
package quant

import (
	"fmt"
	"math"
	"math/bits"
)

// Range is a closed physical value interval.
type Range struct {
	Min float64
	Max float64
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2.0
}

// Valid reports whether the bounds are finite and ordered.
func (r Range) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsInf(r.Min, 0) &&
		!math.IsNaN(r.Max) && !math.IsInf(r.Max, 0) &&
		r.Min < r.Max
}

// BitsForLevels returns how many bits a single value with the given number of
// quantization levels occupies. A single level carries no information and maps
// to zero bits.
func BitsForLevels(levels int) (int, error) {
	if levels <= 0 {
		return 0, fmt.Errorf("quant: levels must be positive, got %d", levels)
	}
	if levels&(levels-1) != 0 {
		return 0, fmt.Errorf("quant: levels must be a power of two for binary encoding, got %d", levels)
	}
	if levels == 1 {
		return 0, nil
	}
	return bits.Len(uint(levels)) - 1, nil
}

// LevelToPhysical converts a discrete level to its physical value within r.
// The level is clamped into [0, levels-1]; a single-level system always yields
// the midpoint of the range.
func LevelToPhysical(level, levels int, r Range) float64 {
	if levels == 1 {
		return r.Mid()
	}
	if level < 0 {
		level = 0
	}
	if level > levels-1 {
		level = levels - 1
	}
	step := (r.Max - r.Min) / float64(levels-1)
	return r.Min + float64(level)*step
}

// PhysicalToLevel converts a measured value back to the nearest discrete
// level. The value is clamped into r before quantization. Ties round to even,
// which is the exact inverse of LevelToPhysical at quantization boundaries.
func PhysicalToLevel(value float64, levels int, r Range) int {
	if levels == 1 {
		return 0
	}
	if value > r.Max {
		value = r.Max
	}
	if value < r.Min {
		value = r.Min
	}
	step := (r.Max - r.Min) / float64(levels-1)
	if step == 0 {
		return 0
	}
	level := int(math.RoundToEven((value - r.Min) / step))
	if level < 0 {
		level = 0
	}
	if level > levels-1 {
		level = levels - 1
	}
	return level
}
