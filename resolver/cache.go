package resolver

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// DefaultCacheSize bounds each cache when no size is configured.
const DefaultCacheSize = 1024

// Caching memoizes another resolver for the lifetime of the process.
// Canonicalization results and fetched files sit in two LRU caches keyed by
// search directory plus reference and by canonical locator. Nothing is
// persisted across processes.
type Caching struct {
	next  Resolver
	canon *lru.Cache[string, string]
	files *lru.Cache[string, SourceFile]
	log   zerolog.Logger
}

// NewCachingResolver wraps next with LRU memoization. A size of zero or
// less selects DefaultCacheSize.
func NewCachingResolver(next Resolver, size int, opts ...Option) (*Caching, error) {
	if next == nil {
		return nil, fmt.Errorf("caching resolver needs a next resolver")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	o := newOptions(opts)

	canon, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating canonicalization cache: %w", err)
	}
	files, err := lru.New[string, SourceFile](size)
	if err != nil {
		return nil, fmt.Errorf("creating file cache: %w", err)
	}

	return &Caching{next: next, canon: canon, files: files, log: o.logger}, nil
}

func cacheKey(reference, searchDir string) string {
	return searchDir + "\x00" + reference
}

// Canonicalize memoizes the wrapped resolver's canonicalization.
func (c *Caching) Canonicalize(reference, searchDir string) (string, error) {
	key := cacheKey(reference, searchDir)
	if url, ok := c.canon.Get(key); ok {
		return url, nil
	}

	url, err := c.next.Canonicalize(reference, searchDir)
	if err != nil {
		return "", err
	}
	c.canon.Add(key, url)
	return url, nil
}

// Fetch serves repeated fetches of the same canonical locator from memory.
func (c *Caching) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	url, err := c.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}

	if file, ok := c.files.Get(url); ok {
		c.log.Debug().Str("locator", url).Msg("cache hit")
		return &file, nil
	}

	file, err := c.next.Fetch(ctx, reference, searchDir)
	if err != nil {
		return nil, err
	}

	c.files.Add(file.Locator, *file)
	if file.Locator != url {
		c.files.Add(url, *file)
	}
	return file, nil
}
