package raster

import "sync"

// Cache keeps decoded images keyed by path so repeated requests for the same
// file skip disk I/O.
//
// Cache is safe for concurrent use. Cached images are shared: callers must
// treat them as read-only and Clone before mutating.
//
// Cached images remain in memory until removed with Evict or Clear.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*Image),
	}
}

// Load returns the image for path, decoding it on first use.
//
// The path string is the key as given: a relative and an absolute path to the
// same file are cached separately.
func (c *Cache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if m, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	m, err := Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = m
	c.mu.Unlock()

	return m, nil
}

// Evict removes path from the cache. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}
