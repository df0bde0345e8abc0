package providers

import (
	"context"
	"net/http"
	"testing"

	"github.com/smartcity/context-hub/internal/city"
)

func TestWeatherFetchFailsWithoutAPIKey(t *testing.T) {
	p := NewWeatherProvider(&http.Client{}, "")

	if _, err := p.Fetch(context.Background(), city.NewLocation("London", "GB")); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestWeatherMockPayload(t *testing.T) {
	p := NewWeatherProvider(&http.Client{}, "")
	result := p.Mock(city.NewLocation("London", "GB"))

	if result.Source != city.SourceMock {
		t.Fatalf("expected mock source, got %s", result.Source)
	}
	if result.Topic != city.TopicWeather {
		t.Fatalf("expected weather topic, got %s", result.Topic)
	}
	for _, key := range []string{"temperature", "feels_like", "humidity", "description"} {
		if _, ok := result.Payload[key]; !ok {
			t.Fatalf("expected payload key %q", key)
		}
	}
}

func TestTemperatureDerivesFromWeatherMock(t *testing.T) {
	weather := NewWeatherProvider(&http.Client{}, "")
	p := NewTemperatureProvider(weather)

	result := p.Mock(city.NewLocation("London", "GB"))

	if result.Topic != city.TopicTemperature {
		t.Fatalf("expected temperature topic, got %s", result.Topic)
	}
	if got := result.Payload["current_temperature"]; got != 15.5 {
		t.Fatalf("expected mock temperature 15.5, got %v", got)
	}
	if rec, _ := result.Payload["recommendation"].(string); rec == "" {
		t.Fatal("expected a clothing recommendation")
	}
}

func TestTemperatureRecommendationBands(t *testing.T) {
	cases := []struct {
		temp float64
		want string
	}{
		{-5, "Very cold! Dress warmly with multiple layers."},
		{5, "Cold weather. Wear a warm jacket."},
		{15, "Cool weather. A light jacket would be comfortable."},
		{20, "Pleasant temperature. Light clothing is recommended."},
		{27, "Warm weather. Light and breathable clothing."},
		{35, "Hot weather! Stay hydrated and wear light, loose clothing."},
	}

	for _, tc := range cases {
		if got := temperatureRecommendation(tc.temp); got != tc.want {
			t.Fatalf("temp %.0f: expected %q, got %q", tc.temp, tc.want, got)
		}
	}
}

func TestTrafficIsDeterministicPerCity(t *testing.T) {
	p := NewTrafficProvider()
	loc := city.NewLocation("London", "GB")

	first, err := p.Fetch(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Fetch(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Payload["overall_traffic_level"] != second.Payload["overall_traffic_level"] {
		t.Fatal("expected stable traffic level for the same city")
	}
	if first.Payload["average_delay_minutes"] != second.Payload["average_delay_minutes"] {
		t.Fatal("expected stable average delay for the same city")
	}
	if first.Source != city.SourceMock {
		t.Fatalf("expected mock source, got %s", first.Source)
	}
}

func TestShopOffersBestDeals(t *testing.T) {
	p := NewShopOffersProvider()

	result, err := p.Fetch(context.Background(), city.NewLocation("London", "GB"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deals, ok := result.Payload["best_deals"].([]string)
	if !ok || len(deals) != 3 {
		t.Fatalf("expected 3 best deals, got %v", result.Payload["best_deals"])
	}
	if got := result.Payload["total_offers"].(int); got != len(offerCategories) {
		t.Fatalf("expected %d offers, got %d", len(offerCategories), got)
	}
}
