// Package config loads simulation profiles for the CLIs from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/optilab/voxelstore"
	"github.com/optilab/voxelstore/pkg/ecc"
	"github.com/optilab/voxelstore/pkg/quant"
)

// Profile describes a full simulation run: medium parameters, coding scheme
// and the noise applied before reading back. Zero values fall back to the
// library defaults.
type Profile struct {
	Grid            [3]int     `yaml:"grid"`
	VoxelPitch      [3]float64 `yaml:"voxelPitch"`
	IntensityLevels int        `yaml:"intensityLevels"`
	Polarization    int        `yaml:"polarizationStates"`
	IntensityMin    float64    `yaml:"intensityMin"`
	IntensityMax    float64    `yaml:"intensityMax"`
	PolarizationMin float64    `yaml:"polarizationMin"`
	PolarizationMax float64    `yaml:"polarizationMax"`
	Scheme          string     `yaml:"scheme"`

	IntensityNoiseStd    float64 `yaml:"intensityNoiseStd"`
	PolarizationNoiseStd float64 `yaml:"polarizationNoiseStd"`
	NoiseSeed            int64   `yaml:"noiseSeed"`
}

// Load reads a YAML profile from path and fills unset fields with defaults.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	profile.applyDefaults()
	return profile, nil
}

// Default returns a profile with all library defaults applied.
func Default() Profile {
	var profile Profile
	profile.applyDefaults()
	return profile
}

func (p *Profile) applyDefaults() {
	defaults := voxelstore.DefaultConfig()
	if p.Grid == [3]int{} {
		p.Grid = defaults.GridSize
	}
	if p.VoxelPitch == [3]float64{} {
		p.VoxelPitch = defaults.VoxelPitch
	}
	if p.IntensityLevels == 0 {
		p.IntensityLevels = defaults.IntensityLevels
	}
	if p.Polarization == 0 {
		p.Polarization = defaults.PolarizationStates
	}
	if p.IntensityMin == 0 && p.IntensityMax == 0 {
		p.IntensityMin = defaults.IntensityRange.Min
		p.IntensityMax = defaults.IntensityRange.Max
	}
	if p.PolarizationMin == 0 && p.PolarizationMax == 0 {
		p.PolarizationMin = defaults.PolarizationRange.Min
		p.PolarizationMax = defaults.PolarizationRange.Max
	}
	if p.Scheme == "" {
		p.Scheme = ecc.SchemeHamming74
	}
}

// WriterConfig converts the profile into a core writer configuration.
func (p Profile) WriterConfig() voxelstore.Config {
	return voxelstore.Config{
		GridSize:           p.Grid,
		VoxelPitch:         p.VoxelPitch,
		IntensityLevels:    p.IntensityLevels,
		PolarizationStates: p.Polarization,
		IntensityRange:     quant.Range{Min: p.IntensityMin, Max: p.IntensityMax},
		PolarizationRange:  quant.Range{Min: p.PolarizationMin, Max: p.PolarizationMax},
		Scheme:             ecc.FromName(p.Scheme),
	}
}
