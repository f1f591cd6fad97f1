package catalog

import (
	"context"
	"sync"
	"time"

	"schemadiff/core/value"

	"golang.org/x/sync/singleflight"
)

// Loader captures a schema by name.
type Loader func(ctx context.Context, name string) (*value.Object, error)

// entry is one cached capture.
type entry struct {
	schema *value.Object
	built  time.Time
}

// Cache holds captured schemas for a TTL. Callers must treat the returned
// graphs as read-only since they are shared.
type Cache struct {
	load Loader
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]*entry
	sf      singleflight.Group
}

// NewCache returns a Cache that fills itself with load. A zero ttl disables
// caching, but concurrent loads of one schema are still collapsed.
func NewCache(load Loader, ttl time.Duration) *Cache {
	return &Cache{
		load:    load,
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

func (c *Cache) fresh(e *entry) bool {
	return e != nil && c.ttl > 0 && time.Since(e.built) <= c.ttl
}

func (c *Cache) lookup(name string) *entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[name]
}

// Get returns the cached capture of name or loads a new one.
func (c *Cache) Get(ctx context.Context, name string) (*value.Object, error) {
	if e := c.lookup(name); c.fresh(e) {
		return e.schema, nil
	}

	result, err, _ := c.sf.Do(name, func() (interface{}, error) {
		// another caller may have finished the load meanwhile
		if e := c.lookup(name); c.fresh(e) {
			return e.schema, nil
		}

		schema, err := c.load(ctx, name)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[name] = &entry{schema: schema, built: time.Now()}
		c.mu.Unlock()

		return schema, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*value.Object), nil
}

// Invalidate drops the capture of name, forcing the next Get to reload.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}
