package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/smartcity/context-hub/internal/city"
)

// WeatherProvider fetches current conditions from OpenWeatherMap. When the
// API key is missing or the call fails, the cache falls back to Mock.
type WeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherProvider(client *http.Client, apiKey string) *WeatherProvider {
	return &WeatherProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		circuit: newBreaker("openweather"),
	}
}

func (p *WeatherProvider) Topic() city.Topic {
	return city.TopicWeather
}

func (p *WeatherProvider) Fetch(ctx context.Context, loc city.Location) (city.ProviderResult, error) {
	if p.apiKey == "" {
		return city.ProviderResult{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", fmt.Sprintf("%s,%s", loc.City, loc.Country))
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, defaultBackoff, buildRequest)
	if err != nil {
		return city.ProviderResult{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return city.ProviderResult{}, err
	}

	description := ""
	condition := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
		condition = payload.Weather[0].Main
	}

	return city.ProviderResult{
		Topic:    city.TopicWeather,
		Location: loc,
		Payload: map[string]any{
			"temperature": payload.Main.Temp,
			"feels_like":  payload.Main.FeelsLike,
			"humidity":    payload.Main.Humidity,
			"pressure":    payload.Main.Pressure,
			"description": description,
			"condition":   condition,
			"wind_speed":  payload.Wind.Speed,
			"cloudiness":  payload.Clouds.All,
		},
		Source:    city.SourceLive,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// Mock returns fixed fallback conditions when the upstream is unreachable.
func (p *WeatherProvider) Mock(loc city.Location) city.ProviderResult {
	return city.ProviderResult{
		Topic:    city.TopicWeather,
		Location: loc,
		Payload: map[string]any{
			"temperature": 15.5,
			"feels_like":  14.2,
			"humidity":    65.0,
			"pressure":    1013.0,
			"description": "partly cloudy",
			"condition":   "Clouds",
			"wind_speed":  3.5,
			"cloudiness":  40.0,
		},
		Source:    city.SourceMock,
		FetchedAt: time.Now().UTC(),
	}
}
