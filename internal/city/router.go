package city

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Router classifies questions into topics and assembles answers from the
// context cache.
type Router struct {
	cache Cache
}

// NewRouter creates a Router backed by the given cache.
func NewRouter(cache Cache) *Router {
	return &Router{cache: cache}
}

// Answer resolves a free-text question for a location. Topic data is fetched
// concurrently but the composed text always follows classification priority
// order. A topic whose provider is unavailable is skipped from the text and
// recorded in Unavailable; the answer itself never fails.
func (r *Router) Answer(ctx context.Context, question string, loc Location) Answer {
	topics := Classify(question)

	results := make([]ProviderResult, len(topics))
	errs := make([]error, len(topics))

	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		go func(i int, topic Topic) {
			defer wg.Done()
			results[i], errs[i] = r.cache.Get(ctx, loc, topic)
		}(i, topic)
	}
	wg.Wait()

	answer := Answer{
		ID:        uuid.NewString(),
		Question:  question,
		Location:  loc,
		Entries:   make(map[Topic]ProviderResult),
		Timestamp: time.Now().UTC(),
	}

	var sentences []string
	for i, topic := range topics {
		if errs[i] != nil {
			log.Printf("router: topic %s unavailable for %s: %v", topic, loc.Key(), errs[i])
			answer.Unavailable = append(answer.Unavailable, topic)
			continue
		}
		answer.Topics = append(answer.Topics, topic)
		answer.Entries[topic] = results[i]
		sentences = append(sentences, composeSentence(topic, loc, results[i]))
	}

	answer.Text = strings.Join(sentences, " ")
	return answer
}

// composeSentence renders one human-readable sentence for a topic from its
// payload. Keys follow the fixed per-topic payload schema.
func composeSentence(topic Topic, loc Location, result ProviderResult) string {
	p := result.Payload

	switch topic {
	case TopicWeather:
		return fmt.Sprintf("The weather in %s is %s with %.1f°C and %.0f%% humidity.",
			loc.City, payloadString(p, "description"), payloadFloat(p, "temperature"), payloadFloat(p, "humidity"))
	case TopicTemperature:
		s := fmt.Sprintf("The temperature in %s is %.1f°C, feels like %.1f°C.",
			loc.City, payloadFloat(p, "current_temperature"), payloadFloat(p, "feels_like_temperature"))
		if rec := payloadString(p, "recommendation"); rec != "" {
			s += " " + rec
		}
		return s
	case TopicTraffic:
		s := fmt.Sprintf("Traffic in %s is %s with an average delay of %.0f minutes.",
			loc.City, payloadString(p, "overall_traffic_level"), payloadFloat(p, "average_delay_minutes"))
		if rec := payloadString(p, "recommendation"); rec != "" {
			s += " " + rec
		}
		return s
	case TopicShopOffers:
		deals := payloadStrings(p, "best_deals")
		if len(deals) == 0 {
			return fmt.Sprintf("There are %.0f offers available in %s.", payloadFloat(p, "total_offers"), loc.City)
		}
		return fmt.Sprintf("Best deals in %s: %s.", loc.City, strings.Join(deals, ", "))
	default:
		return ""
	}
}

// Payload values arrive either as in-memory Go values or, after a JSON round
// trip, as float64/[]any; the accessors tolerate both.

func payloadString(p map[string]any, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func payloadFloat(p map[string]any, key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func payloadStrings(p map[string]any, key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
