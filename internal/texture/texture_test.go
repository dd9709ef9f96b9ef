package texture

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
}

func TestBuildIndexAndResolvePath(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "C1000_Body.png"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writePNG(t, filepath.Join(dir, "sub", "c1000_arm.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	// Game paths match by lowercase stem, backslashes and all.
	path, ok := idx.ResolvePath(`N:\FRPG\data\model\chr\c1000\tex\c1000_body.tga`)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "C1000_Body.png"), path)

	path, ok = idx.ResolvePath("c1000_arm.tga")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "sub", "c1000_arm.png"), path)

	_, ok = idx.ResolvePath("c9999_missing.tga")
	assert.False(t, ok)
}

func TestBuildIndexExtensionPriority(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "skin.png"))
	// Content is irrelevant for indexing; only the extension ranks.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skin.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skin.tga"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	path, ok := idx.ResolvePath("skin.tga")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "skin.tga"), path)
}

func TestBuildIndexEmptyDir(t *testing.T) {
	idx := BuildIndex("")
	assert.Equal(t, 0, idx.Len())
	_, ok := idx.ResolvePath("anything.tga")
	assert.False(t, ok)
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "body.png"))

	cache := NewCache(BuildIndex(dir))

	img := cache.Resolve(`N:\tex\body.tga`)
	require.NotNil(t, img)
	assert.Equal(t, 2, img.Bounds().Dx())

	// Second hit comes from the cache and must be the same image.
	assert.Same(t, img, cache.Resolve("body.tga"))

	assert.Nil(t, cache.Resolve("missing.tga"))
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path)

	img, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	_, err = LoadTexture(filepath.Join(dir, "nope.png"))
	assert.Error(t, err)
}
