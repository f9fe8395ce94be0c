// Package noise produces perturbed voxel measurements for read simulations.
package noise

import (
	"math/rand"

	"github.com/optilab/voxelstore/pkg/pattern"
)

// ApplyGaussian returns a fresh voxel slice with per-voxel Gaussian noise
// added to intensity and polarization, clamped back into the pattern's
// configured ranges. The pattern itself is not modified, so several noise
// realizations of the same pattern can be read concurrently. The seed makes a
// realization reproducible.
func ApplyGaussian(p *pattern.StoragePattern, intensityStd, polarizationStd float64, seed int64) []pattern.Voxel {
	rng := rand.New(rand.NewSource(seed))

	noisy := make([]pattern.Voxel, 0, len(p.Voxels))
	for _, v := range p.Voxels {
		intensity := clamp(v.Intensity+rng.NormFloat64()*intensityStd,
			p.IntensityRange.Min, p.IntensityRange.Max)
		polarization := clamp(v.Polarization+rng.NormFloat64()*polarizationStd,
			p.PolarizationRange.Min, p.PolarizationRange.Max)
		noisy = append(noisy, pattern.Voxel{
			X:            v.X,
			Y:            v.Y,
			Z:            v.Z,
			Intensity:    intensity,
			Polarization: polarization,
		})
	}
	return noisy
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
