package weather

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidAPIKey is returned by providers when the upstream service
	// rejects the configured credential.
	ErrInvalidAPIKey = errors.New("api key rejected by weather provider")
)

// QueryOptions carries the per-request upstream parameters.
type QueryOptions struct {
	APIKey string
	Units  string // "metric" or "imperial"
	Lang   string
}

// Provider abstracts the upstream weather source (OpenWeatherMap).
type Provider interface {
	CurrentByCoords(ctx context.Context, lat, lon float64, opts QueryOptions) (*CurrentConditions, error)
	CurrentByCity(ctx context.Context, cityID string, opts QueryOptions) (*CurrentConditions, error)
	ForecastByCoords(ctx context.Context, lat, lon float64, opts QueryOptions) (*ForecastResponse, error)
	ForecastByCity(ctx context.Context, cityID string, opts QueryOptions) (*ForecastResponse, error)
	FindCity(ctx context.Context, name string, opts QueryOptions) (*CitySearchResponse, error)
}

// StatusCode tolerates the provider's habit of encoding the "cod" field as a
// number on success and a quoted string on error payloads.
type StatusCode int

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("cod: unexpected value %s", data)
	}
	*s = StatusCode(n)
	return nil
}

// MainBlock is the shared "main" object of current and forecast payloads.
type MainBlock struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity float64 `json:"humidity"`
}

// WindBlock is the "wind" object of the current-weather payload.
type WindBlock struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// ConditionEntry is one element of the "weather" array.
type ConditionEntry struct {
	ID          int    `json:"id"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// CurrentConditions is the raw /data/2.5/weather payload, limited to the
// fields this service consumes.
type CurrentConditions struct {
	Name    string           `json:"name"`
	Cod     StatusCode       `json:"cod"`
	Message string           `json:"message,omitempty"`
	Main    MainBlock        `json:"main"`
	Wind    WindBlock        `json:"wind"`
	Weather []ConditionEntry `json:"weather"`
}

// ForecastEntry is one 3-hour sample of the raw forecast feed.
type ForecastEntry struct {
	Dt      int64            `json:"dt"`
	Main    MainBlock        `json:"main"`
	Weather []ConditionEntry `json:"weather"`
}

// ForecastResponse is the raw /data/2.5/forecast payload.
type ForecastResponse struct {
	Cod  StatusCode      `json:"cod"`
	Cnt  int             `json:"cnt"`
	List []ForecastEntry `json:"list"`
}

// CitySys carries the optional country of a city match.
type CitySys struct {
	Country *string `json:"country"`
}

// CityMatch is one result of the /data/2.5/find city search.
type CityMatch struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Sys  CitySys `json:"sys"`
}

// CitySearchResponse is the raw /data/2.5/find payload.
type CitySearchResponse struct {
	Cod   StatusCode  `json:"cod"`
	Count int         `json:"count"`
	List  []CityMatch `json:"list"`
}
