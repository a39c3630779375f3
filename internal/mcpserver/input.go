package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mocksmith/mocksmith/domain"
	"github.com/mocksmith/mocksmith/importer"
	"github.com/mocksmith/mocksmith/resolver"
)

// specInput represents the three ways a spec can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// importedSpec is one fully imported document: the importer, the compiled
// service, and every exchange keyed by operation name. Exchanges are
// extracted eagerly because extraction completes the operations' resource
// paths and because the importer's resolver is not safe for concurrent use;
// the cached value is immutable afterwards.
type importedSpec struct {
	service   *domain.Service
	exchanges map[string][]domain.Exchange
	resources []domain.Resource
}

// cacheEntry holds a cached import with LRU ordering and TTL expiry.
type cacheEntry struct {
	spec      *importedSpec
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore provides a session-scoped cache for imported specs.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached import or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *importedSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.spec
	}
	return nil
}

// putWithTTL stores an import with a specific TTL, evicting the oldest entry
// if at capacity.
func (c *specCacheStore) putWithTTL(key string, spec *importedSpec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{spec: spec, insertAt: now, expiresAt: now.Add(ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	// Evict oldest if at capacity.
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. It is safe to call multiple times; only the first call
// spawns a sweeper. It stops when ctx is cancelled.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	var sweeping atomic.Bool
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !sweeping.CompareAndSwap(false, true) {
					continue
				}
				c.sweep()
				sweeping.Store(false)
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given spec input.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	case s.URL != "":
		return fmt.Sprintf("url:%s", s.URL)
	default:
		return ""
	}
}

// resolve imports the spec from whichever input was provided, extracts the
// service, every exchange, and the resources, and caches the result.
func (s specInput) resolve() (*importedSpec, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.URL != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	// Enforce inline content size limit.
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set MOCKSMITH_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	// Determine cache key and TTL (skip when caching is disabled).
	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	imp, err := s.newImporter()
	if err != nil {
		return nil, err
	}

	svc, err := imp.ServiceDefinition()
	if err != nil {
		return nil, err
	}

	spec := &importedSpec{
		service:   svc,
		exchanges: make(map[string][]domain.Exchange, len(svc.Operations)),
	}
	for _, op := range svc.Operations {
		exchanges, err := imp.Exchanges(op)
		if err != nil {
			return nil, err
		}
		spec.exchanges[op.Name] = exchanges
	}
	// Resources last: exchange extraction may fetch further external refs.
	spec.resources = imp.ResourceDefinitions(svc)

	if key != "" {
		specCache.putWithTTL(key, spec, ttl)
	}
	return spec, nil
}

func (s specInput) newImporter() (*importer.Importer, error) {
	client := newHTTPClient()

	switch {
	case s.File != "":
		res := resolver.NewWithHTTP(filepath.Dir(s.File), "", urlFetcher(client))
		return importer.New(
			importer.WithFilePath(s.File),
			importer.WithResolver(res),
		)
	case s.URL != "":
		body, _, err := fetchURL(client, s.URL)
		if err != nil {
			return nil, err
		}
		res := resolver.NewWithHTTP(".", s.URL, urlFetcher(client))
		return importer.New(
			importer.WithBytes(body),
			importer.WithSourceName(s.URL),
			importer.WithResolver(res),
		)
	default:
		return importer.New(
			importer.WithBytes([]byte(s.Content)),
			importer.WithSourceName("inline"),
		)
	}
}
