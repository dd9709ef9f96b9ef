package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"flver-importer/internal/batch"
	"flver-importer/internal/config"
	"flver-importer/internal/coords"
	"flver-importer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	modelDir := flag.String("models", "", "Directory scanned for .flver/.flver.dcx files")
	textureDir := flag.String("textures", "", "Directory of loose texture dumps (tga/png/jpg)")
	outputDir := flag.String("output", "", "Output directory (default: <models>/renders)")
	coordsFlag := flag.String("coords", "", "Target coordinate system: z-up or y-up")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Convert only first N files for testing")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		ModelDir:   *modelDir,
		TextureDir: *textureDir,
		OutputDir:  *outputDir,
		Coords:     *coordsFlag,
		Quality:    *quality,
		Workers:    *workers,
	})

	system, err := coords.ParseSystem(cfg.Coords)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files := findModels(cfg.ModelDir)
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}
	if len(files) == 0 {
		fmt.Println("No model files found.")
		os.Exit(0)
	}

	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)

	fmt.Printf("FLVER → WebP preview converter (%s)\n", system)
	fmt.Printf("Models: %d, Textures: %d indexed, Workers: %d\n", len(files), texIndex.Len(), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		TexResolver: texCache,
		Coords:      system,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}, files)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}
	fmt.Printf("Converted: %d/%d\n", success, len(files))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	os.MkdirAll(cfg.OutputDir, 0755)
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// findModels collects .flver and .flver.dcx files under dir, sorted for
// stable output.
func findModels(dir string) []string {
	var files []string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		lower := strings.ToLower(path)
		if strings.HasSuffix(lower, ".flver") || strings.HasSuffix(lower, ".flver.dcx") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files
}
