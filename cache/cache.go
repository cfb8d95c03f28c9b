// Package cache provides memoization for compilation results. Repeated
// generation from the same specification text and options is byte-identical
// by construction, so callers driving many generations (editor tooling,
// batch builds) can skip the parse and generation work entirely.
package cache

import (
	"crypto/sha256"
	"sync"

	"github.com/fsmgen-xyz/go-fsmgen/codegen"
)

// Cache memoizes generated source keyed by a hash of the specification
// text and generation options. Safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	cache     map[[sha256.Size]byte]string
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// New creates a cache with the specified maximum size.
// When the cache is full, an arbitrary entry is evicted.
// Set maxSize to 0 for an unbounded cache.
func New(maxSize int) *Cache {
	return &Cache{
		cache:   make(map[[sha256.Size]byte]string),
		maxSize: maxSize,
	}
}

// hashKey creates a deterministic hash of the input and options.
func hashKey(input string, opts codegen.Options) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(opts.PackageName))
	h.Write([]byte{0, byte(opts.Mode), byte(opts.OnUncovered), 0})
	h.Write([]byte(input))

	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))
	return key
}

// Get retrieves cached generated source for the given specification.
// The second return value reports whether an entry was found.
func (c *Cache) Get(input string, opts codegen.Options) (string, bool) {
	key := hashKey(input, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if src, ok := c.cache[key]; ok {
		c.hits++
		return src, true
	}
	c.misses++
	return "", false
}

// Put stores generated source in the cache.
func (c *Cache) Put(input string, opts codegen.Options, src string) {
	key := hashKey(input, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			c.evictions++
			break
		}
	}

	c.cache[key] = src
}

// Compile returns the memoized generated source for the specification,
// compiling and caching it on a miss. Errors are not cached.
func (c *Cache) Compile(input string, opts codegen.Options) (string, error) {
	if src, ok := c.Get(input, opts); ok {
		return src, nil
	}

	src, err := codegen.Compile(input, opts)
	if err != nil {
		return "", err
	}
	c.Put(input, opts, src)
	return src, nil
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[[sha256.Size]byte]string)
}

// Size returns the current number of cached entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Stats holds cache hit and eviction counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions}
}
