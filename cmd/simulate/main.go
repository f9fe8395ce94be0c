// Command simulate writes a payload into a simulated 5D voxel lattice,
// injects Gaussian measurement noise and reads it back, printing the pattern
// summary and FEC diagnostics.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/optilab/voxelstore"
	"github.com/optilab/voxelstore/internal/config"
	"github.com/optilab/voxelstore/pkg/logging"
	"github.com/optilab/voxelstore/pkg/noise"
	"github.com/optilab/voxelstore/pkg/pattern"
)

func main() {
	profilePath := flag.String("profile", "", "YAML simulation profile (flags override it)")
	scheme := flag.String("scheme", "", "error correction scheme: none|hamming74|parity8")
	intensityStd := flag.Float64("intensity-noise", -1, "intensity noise standard deviation")
	polarizationStd := flag.Float64("polarization-noise", -1, "polarization noise standard deviation")
	seed := flag.Int64("seed", 0, "noise seed")
	trials := flag.Int("trials", 1, "number of independent noisy reads")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logging.New(*verbose)

	payload := []byte("5D optical storage with femtosecond lasers!")
	if flag.NArg() > 0 {
		payload = []byte(flag.Arg(0))
	}

	profile := config.Default()
	if *profilePath != "" {
		loaded, err := config.Load(*profilePath)
		if err != nil {
			log.Error("loading profile", "err", err)
			os.Exit(1)
		}
		profile = loaded
	}
	if *scheme != "" {
		profile.Scheme = *scheme
	}
	if *intensityStd >= 0 {
		profile.IntensityNoiseStd = *intensityStd
	}
	if *polarizationStd >= 0 {
		profile.PolarizationNoiseStd = *polarizationStd
	}
	if *seed != 0 {
		profile.NoiseSeed = *seed
	}

	writer, err := voxelstore.NewWriter(profile.WriterConfig())
	if err != nil {
		log.Error("configuring writer", "err", err)
		os.Exit(1)
	}

	p, err := writer.Write(payload)
	if err != nil {
		log.Error("writing pattern", "err", err)
		os.Exit(1)
	}

	fmt.Println("--- Write phase ---")
	printSummary(p)

	log.Debug("injecting noise",
		"intensityStd", profile.IntensityNoiseStd,
		"polarizationStd", profile.PolarizationNoiseStd,
		"trials", *trials)

	results := make([]*voxelstore.ReadResult, *trials)
	errs := make([]error, *trials)
	var wg sync.WaitGroup
	for i := 0; i < *trials; i++ {
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			voxels := []pattern.Voxel(nil)
			if profile.IntensityNoiseStd > 0 || profile.PolarizationNoiseStd > 0 {
				voxels = noise.ApplyGaussian(p,
					profile.IntensityNoiseStd, profile.PolarizationNoiseStd,
					profile.NoiseSeed+int64(trial))
			}
			reader, err := voxelstore.NewReader(p)
			if err != nil {
				errs[trial] = err
				return
			}
			results[trial], errs[trial] = reader.Read(voxels)
		}(i)
	}
	wg.Wait()

	fmt.Println("\n--- Read phase ---")
	exitCode := 0
	for i, result := range results {
		if errs[i] != nil {
			log.Error("read failed", "trial", i, "err", errs[i])
			exitCode = 1
			continue
		}
		match := string(result.Data) == string(payload)
		fmt.Printf("trial %d: recovered=%q corrected=%d uncorrectable=%d voxels=%d match=%v\n",
			i, result.Data, result.CorrectedErrors, result.DetectedUncorrectable, result.VoxelsUsed, match)
		if !match {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func printSummary(p *pattern.StoragePattern) {
	summary := p.Summary()
	keys := make([]string, 0, len(summary))
	for key := range summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%-26s: %v\n", key, summary[key])
	}
}
