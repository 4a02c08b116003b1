package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

const DefaultViewTTL = 5 * time.Minute

// ViewCache holds rendered views grouped by route path. Revalidate drops
// every view under a path so the next read recomputes it.
//
// Get reports the path generation it looked up. Set files the value under
// that generation, so a view computed before a Revalidate never becomes
// the current one.
type ViewCache interface {
	Get(ctx context.Context, path, key string) (value []byte, gen uint64, ok bool)
	Set(ctx context.Context, path, key string, gen uint64, value []byte)
	Revalidate(ctx context.Context, path string) error
}

// memoryViewCache tags entries with a per-path generation; bumping the
// generation orphans old entries, which then age out through the TTL.
type memoryViewCache struct {
	entries *ttlCache[string, []byte]
	ttl     time.Duration

	mu          sync.Mutex
	generations map[string]uint64
}

func NewMemoryViewCache(ttl time.Duration) ViewCache {
	return newMemoryViewCache(ttl, time.Now)
}

func newMemoryViewCache(ttl time.Duration, now func() time.Time) *memoryViewCache {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &memoryViewCache{
		entries:     newTTLCache[string, []byte](now),
		ttl:         ttl,
		generations: make(map[string]uint64),
	}
}

func (c *memoryViewCache) Get(_ context.Context, path, key string) ([]byte, uint64, bool) {
	gen := c.generation(path)
	value, ok := c.entries.get(viewKey(path, gen, key))
	return value, gen, ok
}

func (c *memoryViewCache) Set(_ context.Context, path, key string, gen uint64, value []byte) {
	// already revalidated, nothing could ever read it
	if gen != c.generation(path) {
		return
	}
	c.entries.set(viewKey(path, gen, key), value, c.ttl)
}

func (c *memoryViewCache) Revalidate(_ context.Context, path string) error {
	path = normalizePath(path)
	c.mu.Lock()
	c.generations[path]++
	c.mu.Unlock()
	c.entries.purge()
	return nil
}

func (c *memoryViewCache) generation(path string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[normalizePath(path)]
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
