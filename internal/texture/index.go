package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths. FLVER materials
// reference textures by game-internal Windows paths; only the stem is
// meaningful against a directory of loose dumps. TGA wins over PNG wins
// over JPEG for the same stem (alpha fidelity).
type Index struct {
	entries map[string]string
}

var extRank = map[string]int{".tga": 3, ".png": 2, ".jpg": 1, ".jpeg": 1}

// BuildIndex scans dir recursively for loose texture files.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extRank[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		if existing, exists := idx.entries[stem]; exists {
			if extRank[strings.ToLower(filepath.Ext(existing))] >= rank {
				return nil
			}
		}
		idx.entries[stem] = path
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a material texture
// reference, or ("", false). The reference may be a full game path like
// `N:\FRPG\data\model\chr\c1234\tex\c1234_body.tga`.
func (idx *Index) ResolvePath(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	base := filepath.Base(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
