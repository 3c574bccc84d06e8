// Package providers implements the upstream weather clients. OpenWeatherMap
// is the only data source; all calls go through a shared resilience wrapper
// (retry with backoff plus circuit breaker). Timeouts are the injected HTTP
// client's responsibility.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/halcyonos/weather-provider/internal/weather"
)

const (
	// DefaultBaseURL is the production OpenWeatherMap endpoint root.
	DefaultBaseURL = "https://api.openweathermap.org"

	currentWeatherPath = "/data/2.5/weather"
	forecastPath       = "/data/2.5/forecast"
	findCityPath       = "/data/2.5/find"

	// searchCityType is the match mode of the /find endpoint.
	searchCityType = "like"
)

// OpenWeatherProvider implements weather.Provider against the OpenWeatherMap
// HTTP API.
type OpenWeatherProvider struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates the client. baseURL may be empty, in which
// case the production endpoint is used.
func NewOpenWeatherProvider(client *http.Client, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// CurrentByCoords fetches current weather for a coordinate.
func (p *OpenWeatherProvider) CurrentByCoords(ctx context.Context, lat, lon float64, opts weather.QueryOptions) (*weather.CurrentConditions, error) {
	values := p.baseValues(opts)
	setCoords(values, lat, lon)

	var payload weather.CurrentConditions
	if err := p.getJSON(ctx, currentWeatherPath, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CurrentByCity fetches current weather for a provider city id.
func (p *OpenWeatherProvider) CurrentByCity(ctx context.Context, cityID string, opts weather.QueryOptions) (*weather.CurrentConditions, error) {
	values := p.baseValues(opts)
	values.Set("id", cityID)

	var payload weather.CurrentConditions
	if err := p.getJSON(ctx, currentWeatherPath, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ForecastByCoords fetches the 3-hour forecast feed for a coordinate.
func (p *OpenWeatherProvider) ForecastByCoords(ctx context.Context, lat, lon float64, opts weather.QueryOptions) (*weather.ForecastResponse, error) {
	values := p.baseValues(opts)
	setCoords(values, lat, lon)

	var payload weather.ForecastResponse
	if err := p.getJSON(ctx, forecastPath, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ForecastByCity fetches the 3-hour forecast feed for a provider city id.
func (p *OpenWeatherProvider) ForecastByCity(ctx context.Context, cityID string, opts weather.QueryOptions) (*weather.ForecastResponse, error) {
	values := p.baseValues(opts)
	values.Set("id", cityID)

	var payload weather.ForecastResponse
	if err := p.getJSON(ctx, forecastPath, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FindCity searches cities by free-text name.
func (p *OpenWeatherProvider) FindCity(ctx context.Context, name string, opts weather.QueryOptions) (*weather.CitySearchResponse, error) {
	values := url.Values{}
	values.Set("appid", opts.APIKey)
	values.Set("lang", opts.Lang)
	values.Set("q", name)
	values.Set("type", searchCityType)

	var payload weather.CitySearchResponse
	if err := p.getJSON(ctx, findCityPath, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (p *OpenWeatherProvider) baseValues(opts weather.QueryOptions) url.Values {
	values := url.Values{}
	values.Set("appid", opts.APIKey)
	values.Set("units", opts.Units)
	values.Set("lang", opts.Lang)
	return values
}

func setCoords(values url.Values, lat, lon float64) {
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
}

func (p *OpenWeatherProvider) getJSON(ctx context.Context, path string, values url.Values, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
