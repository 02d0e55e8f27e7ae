package texture

import (
	lru "github.com/hashicorp/golang-lru"
)

// Cache memoizes a Resolver, including misses, so that batch renders decode
// each asset once. Textures are read-only after load, so sharing them is safe.
type Cache struct {
	next  Resolver
	cache *lru.Cache // name -> *Texture (nil for a miss)
}

// NewCache wraps next with an LRU of the given number of entries.
func NewCache(next Resolver, size int) (*Cache, error) {
	c, err := lru.New(max(size, 1))
	if err != nil {
		return nil, err
	}
	return &Cache{next: next, cache: c}, nil
}

// Resolve returns the cached result for name, resolving it on first use.
func (c *Cache) Resolve(name string) *Texture {
	if v, ok := c.cache.Get(name); ok {
		return v.(*Texture)
	}
	tex := c.next.Resolve(name)
	c.cache.Add(name, tex)
	return tex
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached names.
func (c *Cache) Len() int {
	return c.cache.Len()
}
