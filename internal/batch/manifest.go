package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry describes one converted model in the output manifest.
type ManifestEntry struct {
	Name           string `json:"name"`
	File           string `json:"file"`
	Bones          int    `json:"bones"`
	Meshes         int    `json:"meshes"`
	SkippedWeights int    `json:"skipped_weights,omitempty"`
	Image          string `json:"image,omitempty"`
	Error          string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json next to the rendered previews.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:           r.Name,
			File:           r.File,
			Bones:          r.Bones,
			Meshes:         r.Meshes,
			SkippedWeights: r.SkippedWeights,
			Error:          r.Error,
		}
		if r.Success {
			entries[i].Image = r.Name + ".webp"
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
