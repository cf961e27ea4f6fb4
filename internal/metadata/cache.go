package metadata

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// CachedSource memoizes lookups against another source, keyed by
// (kind, scope, subject). Concurrent misses on one key compute once.
//
// It caches metadata only, never configuration or filesystem results, so
// resolution through it stays a pure function of the underlying snapshot.
// Call Reset if that snapshot changes.
type CachedSource struct {
	inner pgfix.MetadataSource
	group singleflight.Group

	mu    sync.RWMutex
	items map[string][]pgfix.MetadataItem

	// generation advances on Reset; a load started in an older generation
	// does not store its result.
	generation uint64
}

// NewCachedSource wraps inner.
// Panics if inner is nil.
func NewCachedSource(inner pgfix.MetadataSource) *CachedSource {
	if inner == nil {
		panic("metadata source cannot be nil")
	}
	return &CachedSource{
		inner: inner,
		items: make(map[string][]pgfix.MetadataItem),
	}
}

// GroupItems implements pgfix.MetadataSource.
func (c *CachedSource) GroupItems(kind pgfix.Kind, group pgfix.GroupID) []pgfix.MetadataItem {
	return c.load("g\x00"+string(kind)+"\x00"+string(group), func() []pgfix.MetadataItem {
		return c.inner.GroupItems(kind, group)
	})
}

// CaseItems implements pgfix.MetadataSource.
func (c *CachedSource) CaseItems(kind pgfix.Kind, id pgfix.CaseID) []pgfix.MetadataItem {
	return c.load("c\x00"+string(kind)+"\x00"+id.String(), func() []pgfix.MetadataItem {
		return c.inner.CaseItems(kind, id)
	})
}

// Cases implements pgfix.MetadataSource. Not cached.
func (c *CachedSource) Cases(group pgfix.GroupID) []pgfix.CaseID {
	return c.inner.Cases(group)
}

// Groups implements pgfix.MetadataSource. Not cached.
func (c *CachedSource) Groups() []pgfix.GroupID {
	return c.inner.Groups()
}

// Reset drops every cached entry. Lookups already in flight still return
// what they read, but their results are not cached.
func (c *CachedSource) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]pgfix.MetadataItem)
	c.generation++
}

// Len returns the number of cached entries.
func (c *CachedSource) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *CachedSource) load(key string, fetch func() []pgfix.MetadataItem) []pgfix.MetadataItem {
	c.mu.RLock()
	items, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return cloneItems(items)
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.items[key]
		generation := c.generation
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fetched := cloneItems(fetch())
		c.mu.Lock()
		if c.generation == generation {
			c.items[key] = fetched
		}
		c.mu.Unlock()
		return fetched, nil
	})
	return cloneItems(v.([]pgfix.MetadataItem))
}

var _ pgfix.MetadataSource = (*CachedSource)(nil)
