package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, ".", cfg.ModelDir)
	assert.Equal(t, filepath.Join(".", "renders"), cfg.OutputDir)
	assert.Equal(t, "z-up", cfg.Coords)
	assert.Equal(t, 256, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 90, cfg.WebPQuality)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveFlagOverrides(t *testing.T) {
	cfg := Config{ModelDir: "/data/models", WebPQuality: 50}
	cfg.Resolve(Flags{
		ModelDir: "/other",
		Coords:   "y-up",
		Quality:  75,
		Workers:  3,
	})

	assert.Equal(t, "/other", cfg.ModelDir)
	assert.Equal(t, "y-up", cfg.Coords)
	assert.Equal(t, 75, cfg.WebPQuality)
	assert.Equal(t, 3, cfg.Workers)
}

func TestResolveRelativePaths(t *testing.T) {
	cfg := Config{
		ModelDir:   "/data/models",
		TextureDir: "tex",
		OutputDir:  "out",
	}
	cfg.Resolve(Flags{})

	assert.Equal(t, filepath.Join("/data/models", "tex"), cfg.TextureDir)
	assert.Equal(t, filepath.Join("/data/models", "out"), cfg.OutputDir)
}

func TestResolveAbsolutePathsKept(t *testing.T) {
	cfg := Config{
		ModelDir:   "/data/models",
		TextureDir: "/tex",
		OutputDir:  "/out",
	}
	cfg.Resolve(Flags{})

	assert.Equal(t, "/tex", cfg.TextureDir)
	assert.Equal(t, "/out", cfg.OutputDir)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"model_dir": "/m", "coords": "y-up", "webp_quality": 80}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/m", cfg.ModelDir)
	assert.Equal(t, "y-up", cfg.Coords)
	assert.Equal(t, 80, cfg.WebPQuality)
	assert.Zero(t, cfg.Workers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
