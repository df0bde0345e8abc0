package providers

import (
	"context"
	"math"
	"time"

	"github.com/smartcity/context-hub/internal/city"
)

// TemperatureProvider derives a temperature-focused view from the weather
// provider's reading: comfort bands, a clothing recommendation, and a
// simplified wind-chill figure.
type TemperatureProvider struct {
	weather *WeatherProvider
}

func NewTemperatureProvider(weather *WeatherProvider) *TemperatureProvider {
	return &TemperatureProvider{weather: weather}
}

func (p *TemperatureProvider) Topic() city.Topic {
	return city.TopicTemperature
}

func (p *TemperatureProvider) Fetch(ctx context.Context, loc city.Location) (city.ProviderResult, error) {
	reading, err := p.weather.Fetch(ctx, loc)
	if err != nil {
		return city.ProviderResult{}, err
	}
	return p.derive(loc, reading), nil
}

// Mock derives the same view from the weather provider's mock reading.
func (p *TemperatureProvider) Mock(loc city.Location) city.ProviderResult {
	return p.derive(loc, p.weather.Mock(loc))
}

func (p *TemperatureProvider) derive(loc city.Location, reading city.ProviderResult) city.ProviderResult {
	temp, _ := reading.Payload["temperature"].(float64)
	feelsLike, ok := reading.Payload["feels_like"].(float64)
	if !ok {
		feelsLike = temp
	}
	humidity, _ := reading.Payload["humidity"].(float64)
	windSpeed, _ := reading.Payload["wind_speed"].(float64)

	return city.ProviderResult{
		Topic:    city.TopicTemperature,
		Location: loc,
		Payload: map[string]any{
			"current_temperature":    temp,
			"feels_like_temperature": feelsLike,
			"temperature_unit":       "celsius",
			"comfortable":            temp >= 18 && temp <= 25,
			"too_cold":               temp < 10,
			"too_hot":                temp > 30,
			"recommendation":         temperatureRecommendation(temp),
			"humidity":               humidity,
			"wind_chill":             windChill(temp, windSpeed),
		},
		Source:    reading.Source,
		FetchedAt: time.Now().UTC(),
	}
}

func temperatureRecommendation(temp float64) string {
	switch {
	case temp < 0:
		return "Very cold! Dress warmly with multiple layers."
	case temp < 10:
		return "Cold weather. Wear a warm jacket."
	case temp < 18:
		return "Cool weather. A light jacket would be comfortable."
	case temp < 25:
		return "Pleasant temperature. Light clothing is recommended."
	case temp < 30:
		return "Warm weather. Light and breathable clothing."
	default:
		return "Hot weather! Stay hydrated and wear light, loose clothing."
	}
}

// windChill approximates the perceived cooling from wind. Below 5 m/s the
// effect is ignored.
func windChill(temp, windSpeed float64) float64 {
	if windSpeed < 5 {
		return temp
	}
	return math.Round((temp-windSpeed*0.5)*10) / 10
}
