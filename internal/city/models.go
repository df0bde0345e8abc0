package city

import (
	"strings"
	"time"
)

// Topic is one of the fixed information categories the hub can answer about.
type Topic string

const (
	TopicWeather     Topic = "weather"
	TopicTemperature Topic = "temperature"
	TopicTraffic     Topic = "traffic"
	TopicShopOffers  Topic = "shop_offers"
)

// AllTopics lists every topic in answer priority order. Classification and
// answer composition both iterate this slice, so the order must not change.
var AllTopics = []Topic{TopicWeather, TopicTemperature, TopicTraffic, TopicShopOffers}

// Source records whether a result came from a live upstream call or a
// provider's mock fallback.
type Source string

const (
	SourceLive Source = "live"
	SourceMock Source = "mock"
)

// Location identifies the city a question is about. City/Country are stored
// normalized (trimmed, country upper-cased).
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// NewLocation normalizes raw city/country input.
func NewLocation(city, country string) Location {
	return Location{
		City:    strings.TrimSpace(city),
		Country: strings.ToUpper(strings.TrimSpace(country)),
	}
}

// Valid reports whether both fields survived normalization.
func (l Location) Valid() bool {
	return l.City != "" && l.Country != ""
}

// Key returns a canonical case-insensitive string key for indexing this
// location in the context cache.
func (l Location) Key() string {
	return strings.ToLower(l.City) + ":" + strings.ToLower(l.Country)
}

// ProviderResult is the normalized output of any context provider. Payload
// holds topic-specific keys and is opaque to the cache; its schema is fixed
// per topic and never mixes topics.
type ProviderResult struct {
	Topic     Topic          `json:"topic"`
	Location  Location       `json:"location"`
	Payload   map[string]any `json:"payload"`
	Source    Source         `json:"source"`
	FetchedAt time.Time      `json:"fetchedAt"` // always UTC
}

// Answer is the composed response to a free-text question. Topics holds the
// topics actually answered, in priority order; Unavailable lists topics whose
// provider could not be reached and that had no fallback.
type Answer struct {
	ID          string                   `json:"id"`
	Question    string                   `json:"question"`
	Location    Location                 `json:"location"`
	Topics      []Topic                  `json:"topics"`
	Entries     map[Topic]ProviderResult `json:"entries"`
	Unavailable []Topic                  `json:"unavailable,omitempty"`
	Text        string                   `json:"text"`
	Timestamp   time.Time                `json:"timestamp"`
}

// TopicStatus describes the cache state of a single topic for the summary
// endpoint.
type TopicStatus struct {
	Cached    bool      `json:"cached"`
	Source    Source    `json:"source,omitempty"`
	FetchedAt time.Time `json:"fetchedAt,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// ContextSummary reports what data the hub currently holds for the configured
// city.
type ContextSummary struct {
	Location Location              `json:"location"`
	Topics   map[Topic]TopicStatus `json:"topics"`
}
