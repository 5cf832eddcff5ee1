// Package lookupcache memoizes resolver outcomes so a CNAME target shared by
// many zones is looked up once per run.
package lookupcache

import (
	"context"
	"errors"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver mirrors the scanner's resolver port.
type Resolver interface {
	Resolve(ctx context.Context, host string) error
}

// Cache is an LRU-backed caching decorator around a Resolver. Both success
// (nil) and classified-failure outcomes are cached; a cached outcome is
// returned without consulting the inner resolver.
type Cache struct {
	inner  Resolver
	lru    *lru.Cache[string, error]
	hits   uint64
	misses uint64
}

// New wraps inner with an LRU of the given capacity.
func New(inner Resolver, size int) (*Cache, error) {
	cache, err := lru.New[string, error](size)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner, lru: cache}, nil
}

// Resolve returns the cached outcome for host, resolving and caching on miss.
func (c *Cache) Resolve(ctx context.Context, host string) error {
	if outcome, ok := c.lru.Get(host); ok {
		atomic.AddUint64(&c.hits, 1)
		return outcome
	}
	atomic.AddUint64(&c.misses, 1)

	outcome := c.inner.Resolve(ctx, host)
	// Cancellation reflects the caller's deadline, not the host's state.
	if errors.Is(outcome, context.Canceled) || errors.Is(outcome, context.DeadlineExceeded) {
		return outcome
	}
	c.lru.Add(host, outcome)
	return outcome
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}
