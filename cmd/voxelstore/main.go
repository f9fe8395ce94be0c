// Command voxelstore encodes files into voxel patterns and persists them in a
// local pattern store.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/optilab/voxelstore/internal/config"
	"github.com/optilab/voxelstore/internal/patternstore"
	"github.com/optilab/voxelstore/pkg/host"
	"github.com/optilab/voxelstore/pkg/pattern"
)

func main() {
	dataDir := flag.String("data", defaultDataDir(), "pattern store directory")
	profilePath := flag.String("profile", "", "YAML simulation profile")
	scramble := flag.Bool("scramble", false, "scramble payload bits before writing")
	compress := flag.Bool("compress", false, "LZMA-compress payload before writing")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	profile := config.Default()
	if *profilePath != "" {
		loaded, err := config.Load(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
			os.Exit(1)
		}
		profile = loaded
	}

	log := logrus.New()
	store, err := patternstore.Open(*dataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	hw, err := host.NewWriter(host.Options{
		Config:       profile.WriterConfig(),
		Scramble:     *scramble,
		ScrambleSeed: profile.NoiseSeed,
		Compress:     *compress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring writer: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	switch args[0] {
	case "write":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := cmdWrite(store, hw, args[1], args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "read":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := cmdRead(store, hw, args[1], args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list":
		names, err := store.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
	case "info":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := cmdInfo(store, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "delete":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := store.Delete(args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func cmdWrite(store *patternstore.Store, hw *host.Writer, file, name string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	p, err := hw.Write(data)
	if err != nil {
		return err
	}

	// Verify the round trip before persisting anything.
	rb, err := hw.Verify(p, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(rb.Data, data) || rb.ReadResult.DetectedUncorrectable > 0 {
		return fmt.Errorf("roundtrip verification failed for %s", name)
	}

	if err := store.Put(name, p); err != nil {
		return err
	}
	fmt.Printf("Stored %q: %d bytes in %d voxels (corrected=%d)\n",
		name, len(data), p.VoxelCount(), rb.ReadResult.CorrectedErrors)
	return nil
}

func cmdRead(store *patternstore.Store, hw *host.Writer, name, outFile string) error {
	p, err := store.Get(name)
	if err != nil {
		return err
	}
	rb, err := hw.Verify(p, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, rb.Data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Recovered %d bytes (corrected=%d uncorrectable=%d)\n",
		len(rb.Data), rb.ReadResult.CorrectedErrors, rb.ReadResult.DetectedUncorrectable)
	return nil
}

func cmdInfo(store *patternstore.Store, name string) error {
	p, err := store.Get(name)
	if err != nil {
		return err
	}
	printSummary(p)
	return nil
}

func printSummary(p *pattern.StoragePattern) {
	fmt.Println("Pattern parameters:")
	fmt.Printf("  Grid size:          %v\n", p.GridSize)
	fmt.Printf("  Voxel pitch:        %v\n", p.VoxelPitch)
	fmt.Printf("  Intensity levels:   %d\n", p.IntensityLevels)
	fmt.Printf("  Polarization:       %d states\n", p.PolarizationStates)
	fmt.Printf("  Bits per voxel:     %d\n", p.BitsPerVoxel)
	fmt.Printf("  Encoded bits:       %d (+%d padding)\n", p.EncodedBitLength, p.PaddingBits)
	fmt.Printf("  Payload:            %d bytes\n", p.DataLengthBytes)
	fmt.Printf("  Error correction:   %s\n", p.Scheme.Name())
	fmt.Printf("  Voxels:             %d of %d capacity\n",
		p.VoxelCount(), p.GridSize[0]*p.GridSize[1]*p.GridSize[2])
}

func usage() {
	fmt.Println("Usage: voxelstore [flags] <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  write <file> <name>")
	fmt.Println("  read <name> <output-file>")
	fmt.Println("  list")
	fmt.Println("  info <name>")
	fmt.Println("  delete <name>")
	flag.PrintDefaults()
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".voxelstore"
	}
	return filepath.Join(home, ".voxelstore")
}
