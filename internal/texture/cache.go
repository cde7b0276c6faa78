package texture

import (
	"fmt"
	"sync"
)

// Cache is a concurrency-safe loader of textures and normal maps by name.
// Each file is decoded at most once, failures included.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*cacheEntry
	index  *Index
	filter Filter
}

type cacheEntry struct {
	tex     *Texture
	normals *NormalMap
	err     error
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index, filter Filter) *Cache {
	return &Cache{
		items:  make(map[string]*cacheEntry),
		index:  index,
		filter: filter,
	}
}

// Texture loads and caches a color texture by name.
func (c *Cache) Texture(name string) (*Texture, error) {
	e, err := c.load("tex:", name, func(path string) *cacheEntry {
		t, err := LoadTexture(path, c.filter)
		return &cacheEntry{tex: t, err: err}
	})
	if err != nil {
		return nil, err
	}
	return e.tex, e.err
}

// NormalMap loads and caches a normal map by name.
func (c *Cache) NormalMap(name string) (*NormalMap, error) {
	e, err := c.load("nrm:", name, func(path string) *cacheEntry {
		nm, err := LoadNormalMap(path)
		return &cacheEntry{normals: nm, err: err}
	})
	if err != nil {
		return nil, err
	}
	return e.normals, e.err
}

func (c *Cache) load(kind, name string, decode func(path string) *cacheEntry) (*cacheEntry, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	key := kind + path

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	entry := decode(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[key]; exists {
		return existing, nil
	}
	c.items[key] = entry
	return entry, nil
}
