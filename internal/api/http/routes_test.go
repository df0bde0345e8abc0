package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/context-hub/internal/cache"
	"github.com/smartcity/context-hub/internal/city"
)

// staticProvider returns a fixed payload for its topic.
type staticProvider struct {
	topic   city.Topic
	payload map[string]any
}

func (p *staticProvider) Topic() city.Topic {
	return p.topic
}

func (p *staticProvider) Fetch(ctx context.Context, loc city.Location) (city.ProviderResult, error) {
	return city.ProviderResult{
		Topic:     p.topic,
		Location:  loc,
		Payload:   p.payload,
		Source:    city.SourceLive,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	provs := []city.Provider{
		&staticProvider{topic: city.TopicWeather, payload: map[string]any{"description": "clear sky", "temperature": 18.0, "humidity": 55.0}},
		&staticProvider{topic: city.TopicTemperature, payload: map[string]any{"current_temperature": 18.0, "feels_like_temperature": 17.5}},
		&staticProvider{topic: city.TopicTraffic, payload: map[string]any{"overall_traffic_level": "low", "average_delay_minutes": 4}},
		&staticProvider{topic: city.TopicShopOffers, payload: map[string]any{"total_offers": 2, "best_deals": []string{"SuperMart - 20% OFF"}}},
	}

	srv, err := city.NewServer(cache.New(provs, cache.DefaultTTL), "London", "GB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, srv)
	return app
}

func TestAskRequiresQuestion(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestAskReturnsAnswer(t *testing.T) {
	app := newTestApp(t)

	body := `{"question": "What's the weather like?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var answer city.Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		t.Fatalf("failed to decode answer: %v", err)
	}
	if len(answer.Topics) != 1 || answer.Topics[0] != city.TopicWeather {
		t.Fatalf("expected topics [weather], got %v", answer.Topics)
	}
	if !strings.Contains(answer.Text, "clear sky") {
		t.Fatalf("expected weather description in text, got %q", answer.Text)
	}
}

func TestConfigureCityValidation(t *testing.T) {
	app := newTestApp(t)

	// Country must be a two-letter code.
	req := httptest.NewRequest(http.MethodPut, "/api/v1/city", strings.NewReader(`{"city": "Paris", "country": "FRA"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/city", strings.NewReader(`{"city": "Paris", "country": "FR"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestRefreshAndContextSummary(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/context", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var summary city.ContextSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	for _, topic := range city.AllTopics {
		if !summary.Topics[topic].Cached {
			t.Fatalf("expected %s cached after refresh", topic)
		}
	}
}
