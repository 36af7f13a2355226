package engine

import (
	"context"
	"sync"
	"sync/atomic"
)

// LoadFunc produces a fresh Dataset.
type LoadFunc func(ctx context.Context) (*Dataset, error)

// Cache owns the current Dataset snapshot. Readers always see either the
// previous snapshot or a fully built new one; reloads are serialized.
type Cache struct {
	load LoadFunc

	mu      sync.Mutex
	current atomic.Pointer[Dataset]
}

func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Get returns the current snapshot, or ErrNotLoaded before the first
// successful load and after Invalidate.
func (c *Cache) Get() (*Dataset, error) {
	d := c.current.Load()
	if d == nil {
		return nil, ErrNotLoaded
	}
	return d, nil
}

// Reload builds a new snapshot and swaps it in. On failure the previous
// snapshot stays in place.
func (c *Cache) Reload(ctx context.Context) (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.current.Store(d)
	return d, nil
}

// Invalidate drops the current snapshot. The next Get fails until Reload.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Store(nil)
}
