package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitName(t *testing.T) {
	assert.Equal(t, "c1234", UnitName("/data/chr/c1234.flver"))
	assert.Equal(t, "c1234", UnitName("c1234.flver.dcx"))
	assert.Equal(t, "m10_00", UnitName(`m10_00.flver`))
}

func TestRunReportsParseFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.flver")
	require.NoError(t, os.WriteFile(bad, []byte("not a model"), 0644))

	results := Run(Config{
		OutputDir:   filepath.Join(dir, "out"),
		RenderSize:  16,
		Supersample: 1,
		Workers:     2,
	}, []string{bad})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "broken", results[0].Name)
	assert.NotEmpty(t, results[0].Error)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{Name: "c1000", File: "c1000.flver", Bones: 12, Meshes: 3, Success: true},
		{Name: "c2000", File: "c2000.flver", Error: "truncated header"},
	}
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "c1000.webp", entries[0].Image)
	assert.Equal(t, 12, entries[0].Bones)
	assert.Empty(t, entries[0].Error)

	assert.Empty(t, entries[1].Image)
	assert.Equal(t, "truncated header", entries[1].Error)
}
