package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"flver-importer/internal/coords"
	"flver-importer/internal/flver"
	"flver-importer/internal/postprocess"
	"flver-importer/internal/preview"
	"flver-importer/internal/scene"
	"flver-importer/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	TexResolver texture.Resolver
	Coords      coords.System
	RenderSize  int
	Supersample int
	Workers     int
}

// Result holds the outcome of converting one model file.
type Result struct {
	File           string
	Name           string
	Bones          int
	Meshes         int
	SkippedWeights int
	Success        bool
	Error          string
}

// Run converts all model files using a worker pool. Each file is an
// independent unit of work; the reconstruction itself stays
// single-threaded per asset.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

// UnitName strips the extension chain from a model filename:
// "c1234.flver.dcx" → "c1234".
func UnitName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".dcx")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func processFile(cfg Config, path string) Result {
	name := UnitName(path)

	f, err := flver.ParseFile(path)
	if err != nil {
		return Result{File: path, Name: name, Error: err.Error()}
	}

	unit := scene.Assemble(name, f, f.Inflate(), cfg.Coords)

	skipped := 0
	for _, m := range unit.Meshes {
		skipped += m.SkippedWeights
	}
	res := Result{
		File:           path,
		Name:           name,
		Bones:          len(f.Bones),
		Meshes:         len(unit.Meshes),
		SkippedWeights: skipped,
	}

	img := preview.Render(unit, cfg.TexResolver, cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	outPath := filepath.Join(cfg.OutputDir, name+".webp")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	out, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer out.Close()

	if err := nativewebp.Encode(out, img, nil); err != nil {
		res.Error = fmt.Sprintf("webp encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
