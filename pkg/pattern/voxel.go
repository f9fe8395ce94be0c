package pattern

import (
	"errors"
	"fmt"
	"math"
)

// ErrVoxel marks a voxel validation failure: a negative coordinate or a
// non-finite or out-of-range physical property.
var ErrVoxel = errors.New("pattern: invalid voxel")

const twoPi = 2 * math.Pi

// Voxel is a single storage point in the lattice: integer position plus the
// two quantized physical properties written into it. Values are validated at
// construction and never mutated afterwards.
type Voxel struct {
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Z            int     `json:"z"`
	Intensity    float64 `json:"intensity"`
	Polarization float64 `json:"polarization"`
}

// NewVoxel validates and builds a Voxel. Coordinates must be non-negative,
// intensity finite and non-negative, polarization finite within [0, 2π].
func NewVoxel(x, y, z int, intensity, polarization float64) (Voxel, error) {
	v := Voxel{X: x, Y: y, Z: z, Intensity: intensity, Polarization: polarization}
	if err := v.Validate(); err != nil {
		return Voxel{}, err
	}
	return v, nil
}

// Validate re-checks the construction invariants, used after deserialization.
func (v Voxel) Validate() error {
	if v.X < 0 || v.Y < 0 || v.Z < 0 {
		return fmt.Errorf("%w: coordinates must be non-negative, got (%d,%d,%d)", ErrVoxel, v.X, v.Y, v.Z)
	}
	if math.IsNaN(v.Intensity) || math.IsInf(v.Intensity, 0) || v.Intensity < 0 {
		return fmt.Errorf("%w: intensity must be finite and non-negative, got %v", ErrVoxel, v.Intensity)
	}
	if math.IsNaN(v.Polarization) || math.IsInf(v.Polarization, 0) ||
		v.Polarization < 0 || v.Polarization > twoPi {
		return fmt.Errorf("%w: polarization angle must be within [0, 2*pi], got %v", ErrVoxel, v.Polarization)
	}
	return nil
}
