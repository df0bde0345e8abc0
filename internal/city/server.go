package city

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrInvalidCity is returned when city/country input fails normalization.
var ErrInvalidCity = errors.New("city and country must be non-empty")

// Server is the facade the UI talks to. It owns the configured location and
// the shared context cache; both live exactly as long as the Server.
type Server struct {
	mu     sync.RWMutex
	loc    Location
	cache  Cache
	router *Router
}

// NewServer creates the facade for a default location. The default must pass
// the same validation as ConfigureCity input.
func NewServer(cache Cache, defaultCity, defaultCountry string) (*Server, error) {
	loc := NewLocation(defaultCity, defaultCountry)
	if !loc.Valid() {
		return nil, fmt.Errorf("default location %q/%q: %w", defaultCity, defaultCountry, ErrInvalidCity)
	}

	return &Server{
		loc:    loc,
		cache:  cache,
		router: NewRouter(cache),
	}, nil
}

// Location returns the currently configured location.
func (s *Server) Location() Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc
}

// Ask answers a free-text question about the configured city.
func (s *Server) Ask(ctx context.Context, question string) Answer {
	return s.router.Answer(ctx, question, s.Location())
}

// ConfigureCity switches the served city. Entries cached for the previous
// city are invalidated so stale data is never answered for the new one;
// entries for unrelated cities are untouched.
func (s *Server) ConfigureCity(cityName, country string) error {
	loc := NewLocation(cityName, country)
	if !loc.Valid() {
		return fmt.Errorf("configure city %q/%q: %w", cityName, country, ErrInvalidCity)
	}

	s.mu.Lock()
	prev := s.loc
	s.loc = loc
	s.mu.Unlock()

	if prev.Valid() && prev.Key() != loc.Key() {
		s.cache.Invalidate(prev)
	}
	return nil
}

// Refresh force-invalidates the configured city and warms the cache for all
// topics. It returns the topics warmed and those whose provider was
// unavailable; a partially failed refresh is not an error.
func (s *Server) Refresh(ctx context.Context) (warmed, unavailable []Topic) {
	loc := s.Location()
	s.cache.Invalidate(loc)

	errs := make([]error, len(AllTopics))

	var wg sync.WaitGroup
	for i, topic := range AllTopics {
		wg.Add(1)
		go func(i int, topic Topic) {
			defer wg.Done()
			_, errs[i] = s.cache.Get(ctx, loc, topic)
		}(i, topic)
	}
	wg.Wait()

	for i, topic := range AllTopics {
		if errs[i] != nil {
			log.Printf("refresh: topic %s unavailable for %s: %v", topic, loc.Key(), errs[i])
			unavailable = append(unavailable, topic)
			continue
		}
		warmed = append(warmed, topic)
	}
	return warmed, unavailable
}

// Summary reports the cache state per topic for the configured city.
func (s *Server) Summary() ContextSummary {
	loc := s.Location()

	summary := ContextSummary{
		Location: loc,
		Topics:   make(map[Topic]TopicStatus, len(AllTopics)),
	}

	for _, topic := range AllTopics {
		result, expiresAt, ok := s.cache.Peek(loc, topic)
		if !ok {
			summary.Topics[topic] = TopicStatus{}
			continue
		}
		summary.Topics[topic] = TopicStatus{
			Cached:    true,
			Source:    result.Source,
			FetchedAt: result.FetchedAt,
			ExpiresAt: expiresAt,
		}
	}
	return summary
}
