package city

import (
	"context"
	"time"
)

// Provider abstracts a context data source for a single topic (e.g. the
// OpenWeatherMap adapter for weather, the mock traffic feed).
type Provider interface {
	Topic() Topic
	Fetch(ctx context.Context, loc Location) (ProviderResult, error)
}

// MockFallback is an optional capability a Provider may implement. When a
// fetch fails, the cache falls back to Mock rather than surfacing the error.
// The returned result must carry SourceMock.
type MockFallback interface {
	Mock(loc Location) ProviderResult
}

// Cache is the contract the context cache must satisfy. Get returns a valid
// cached result or refreshes it through the topic's provider; Peek inspects
// without side effects.
type Cache interface {
	Get(ctx context.Context, loc Location, topic Topic) (ProviderResult, error)
	Peek(loc Location, topic Topic) (ProviderResult, time.Time, bool)
	Invalidate(loc Location)
	InvalidateAll()
}
