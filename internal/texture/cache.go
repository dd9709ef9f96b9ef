package texture

import (
	"image"
	"sync"
)

// Resolver resolves a material texture reference to a decoded image.
type Resolver interface {
	Resolve(ref string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache over an Index. Failed loads
// are cached too so a missing file is only stat'd once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

// NewCache creates a texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Resolve loads and caches a texture by material reference. Returns nil
// when the stem is not indexed or the file fails to decode.
func (c *Cache) Resolve(ref string) *image.NRGBA {
	path, ok := c.index.ResolvePath(ref)
	if !ok {
		return nil
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	loaded, _ := LoadTexture(path)

	c.mu.Lock()
	if img, exists := c.items[path]; exists {
		c.mu.Unlock()
		return img
	}
	c.items[path] = loaded
	c.mu.Unlock()

	return loaded
}
