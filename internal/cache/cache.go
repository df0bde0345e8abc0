// Package cache implements the short-lived per-city context cache: a keyed
// store of provider results with TTL expiry, refresh-on-miss, and per-key
// single-flight deduplication of concurrent fetches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/smartcity/context-hub/internal/city"
)

// DefaultTTL is the validity window for a cached provider result.
const DefaultTTL = 5 * time.Minute

// ErrProviderUnavailable is returned when a provider fetch fails and the
// provider supplies no mock fallback.
var ErrProviderUnavailable = errors.New("context provider unavailable")

type entry struct {
	value     city.ProviderResult
	expiresAt time.Time
}

// call tracks a single in-flight fetch shared by all concurrent callers of
// the same key.
type call struct {
	done  chan struct{}
	value city.ProviderResult
	err   error
}

// Cache is a concurrency-safe TTL cache of provider results keyed by
// (city, country, topic). It performs no retries itself; resilience is the
// providers' concern.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*call

	providers map[city.Topic]city.Provider
	ttl       time.Duration

	now func() time.Time
}

// New builds a Cache over the given providers. A ttl <= 0 selects DefaultTTL.
func New(providers []city.Provider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	byTopic := make(map[city.Topic]city.Provider, len(providers))
	for _, p := range providers {
		byTopic[p.Topic()] = p
	}

	return &Cache{
		entries:   make(map[string]entry),
		inflight:  make(map[string]*call),
		providers: byTopic,
		ttl:       ttl,
		now:       time.Now,
	}
}

func key(loc city.Location, topic city.Topic) string {
	return loc.Key() + ":" + string(topic)
}

// Get returns the cached result for (loc, topic) if it is still valid,
// otherwise fetches a fresh one through the topic's provider and stores it.
// Concurrent misses for the same key share one fetch. The fetch itself runs
// detached from the caller's context so an abandoned request still populates
// the cache; the waiting caller is released as soon as its own context ends.
func (c *Cache) Get(ctx context.Context, loc city.Location, topic city.Topic) (city.ProviderResult, error) {
	k := key(loc, topic)

	c.mu.Lock()
	if e, ok := c.entries[k]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.value, nil
	}

	if cl, ok := c.inflight[k]; ok {
		c.mu.Unlock()
		return c.wait(ctx, cl)
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[k] = cl
	c.mu.Unlock()

	go c.fetch(context.WithoutCancel(ctx), cl, k, loc, topic)

	return c.wait(ctx, cl)
}

func (c *Cache) wait(ctx context.Context, cl *call) (city.ProviderResult, error) {
	select {
	case <-cl.done:
		return cl.value, cl.err
	case <-ctx.Done():
		return city.ProviderResult{}, ctx.Err()
	}
}

// fetch resolves one in-flight call: provider fetch, mock fallback on error,
// store on success.
func (c *Cache) fetch(ctx context.Context, cl *call, k string, loc city.Location, topic city.Topic) {
	defer func() {
		c.mu.Lock()
		delete(c.inflight, k)
		if cl.err == nil {
			c.entries[k] = entry{value: cl.value, expiresAt: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		close(cl.done)
	}()

	p, ok := c.providers[topic]
	if !ok {
		cl.err = fmt.Errorf("%w: no provider for topic %s", ErrProviderUnavailable, topic)
		return
	}

	result, err := p.Fetch(ctx, loc)
	if err == nil {
		result.Topic = topic
		cl.value = result
		return
	}

	if mf, ok := p.(city.MockFallback); ok {
		log.Printf("cache: provider fetch failed for %s/%s, using mock fallback: %v", loc.Key(), topic, err)
		mock := mf.Mock(loc)
		mock.Topic = topic
		mock.Source = city.SourceMock
		cl.value = mock
		return
	}

	cl.err = fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, topic, err)
}

// Peek returns the valid cached result and its expiry for (loc, topic)
// without triggering a refresh.
func (c *Cache) Peek(loc city.Location, topic city.Topic) (city.ProviderResult, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key(loc, topic)]
	if !ok || !c.now().Before(e.expiresAt) {
		return city.ProviderResult{}, time.Time{}, false
	}
	return e.value, e.expiresAt, true
}

// Invalidate drops every cached topic for the given location. Entries for
// other locations are untouched.
func (c *Cache) Invalidate(loc city.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, topic := range city.AllTopics {
		delete(c.entries, key(loc, topic))
	}
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}
