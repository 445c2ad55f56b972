package raster

import (
	"container/list"
	"sync"
	"sync/atomic"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultOutlineCapacity is the number of glyph outlines kept per registry.
const DefaultOutlineCapacity = 1024

type outlineKey struct {
	face *face
	id   sfnt.GlyphIndex
	ppem fixed.Int26_6
}

type outlineEntry struct {
	key  outlineKey
	segs []sfnt.Segment
}

// outlineCache is an LRU cache of scaled glyph outlines. It is safe for
// concurrent use.
type outlineCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[outlineKey]*list.Element
	lru      *list.List
	buf      sfnt.Buffer

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// CacheStats reports glyph outline cache activity.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

func newOutlineCache(capacity int) *outlineCache {
	if capacity <= 0 {
		capacity = DefaultOutlineCapacity
	}
	return &outlineCache{
		capacity: capacity,
		entries:  make(map[outlineKey]*list.Element),
		lru:      list.New(),
	}
}

// get returns the outline of glyph id at ppem, loading it on a miss. The
// returned segments are shared and must not be modified.
func (c *outlineCache) get(fc *face, id sfnt.GlyphIndex, ppem fixed.Int26_6) ([]sfnt.Segment, error) {
	key := outlineKey{face: fc, id: id, ppem: ppem}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*outlineEntry).segs, nil
	}
	c.misses.Add(1)

	segs, err := fc.sf.LoadGlyph(&c.buf, id, ppem, nil)
	if err != nil {
		return nil, err
	}
	// LoadGlyph returns a slice of c.buf.
	segs = append([]sfnt.Segment(nil), segs...)

	for c.lru.Len() >= c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*outlineEntry).key)
		c.evictions.Add(1)
	}
	c.entries[key] = c.lru.PushFront(&outlineEntry{key: key, segs: segs})
	return segs, nil
}

func (c *outlineCache) stats() CacheStats {
	c.mu.Lock()
	n := c.lru.Len()
	c.mu.Unlock()
	return CacheStats{
		Len:       n,
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
