// Package httpapi exposes the host-subsystem contract over HTTP: the three
// query kinds plus the credential-entry surface.
package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/halcyonos/weather-provider/internal/weather"
)

var validate = validator.New()

// WeatherService is the slice of the query engine the handlers need. Defined
// locally to keep the HTTP layer decoupled from the concrete service.
type WeatherService interface {
	QueryByCoords(ctx context.Context, q weather.GeoQuery) (*weather.WeatherSnapshot, error)
	QueryByLocation(ctx context.Context, q weather.LocationQuery) (*weather.WeatherSnapshot, error)
	LookupCity(ctx context.Context, q weather.NameQuery) ([]weather.LocationQuery, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service WeatherService, settings weather.Settings) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		if c.Query("lat") != "" || c.Query("lon") != "" {
			q, err := parseGeoQuery(c)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			snapshot, err := service.QueryByCoords(c.UserContext(), q)
			if err != nil {
				return mapQueryError(err)
			}
			return c.JSON(snapshot)
		}

		q, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snapshot, err := service.QueryByLocation(c.UserContext(), q)
		if err != nil {
			return mapQueryError(err)
		}
		return c.JSON(snapshot)
	})

	v1.Get("/cities/search", func(c *fiber.Ctx) error {
		var req citySearchQuery
		req.Name = c.Query("q")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		locations, err := service.LookupCity(c.UserContext(), weather.NameQuery{Name: req.Name})
		if err != nil {
			return mapQueryError(err)
		}
		return c.JSON(fiber.Map{
			"query": req.Name,
			"list":  locations,
		})
	})

	v1.Get("/settings/api-key", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"configured":        settings.APIKey() != "",
			"verificationState": settings.VerificationState().String(),
		})
	})

	v1.Put("/settings/api-key", func(c *fiber.Ctx) error {
		var req apiKeyBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		settings.SetAPIKey(req.APIKey)
		return c.JSON(fiber.Map{
			"verificationState": settings.VerificationState().String(),
		})
	})
}

// mapQueryError translates engine outcomes onto HTTP statuses. Only the
// credential failures carry a semantic reason outward; everything else is an
// opaque upstream failure.
func mapQueryError(err error) error {
	switch {
	case errors.Is(err, weather.ErrSubmittedTooSoon):
		return fiber.NewError(fiber.StatusTooManyRequests, "query submitted too soon")
	case errors.Is(err, weather.ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusUnauthorized, "no api key configured")
	case errors.Is(err, weather.ErrInvalidAPIKey):
		return fiber.NewError(fiber.StatusUnauthorized, "api key rejected by weather provider")
	case errors.Is(err, context.Canceled):
		return fiber.NewError(fiber.StatusRequestTimeout, "request cancelled")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "weather query failed")
	}
}

// geoParams holds the coordinate query parameters.
type geoParams struct {
	Latitude  float64 `validate:"min=-90,max=90"`
	Longitude float64 `validate:"min=-180,max=180"`
}

func parseGeoQuery(c *fiber.Ctx) (weather.GeoQuery, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return weather.GeoQuery{}, errors.New("invalid lat query parameter")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return weather.GeoQuery{}, errors.New("invalid lon query parameter")
	}

	params := geoParams{Latitude: lat, Longitude: lon}
	if err := validate.Struct(params); err != nil {
		return weather.GeoQuery{}, err
	}
	return weather.GeoQuery{Latitude: lat, Longitude: lon}, nil
}

// locationParams holds the named-location query parameters.
type locationParams struct {
	CityID string `validate:"required"`
}

func parseLocationQuery(c *fiber.Ctx) (weather.LocationQuery, error) {
	params := locationParams{CityID: c.Query("city_id")}
	if err := validate.Struct(params); err != nil {
		return weather.LocationQuery{}, err
	}

	return weather.LocationQuery{
		CityID:     params.CityID,
		City:       c.Query("city"),
		PostalCode: c.Query("postal_code"),
		Country:    c.Query("country"),
		CountryID:  c.Query("country_id"),
	}, nil
}

// citySearchQuery holds the city-search parameters.
type citySearchQuery struct {
	Name string `validate:"required"`
}

// apiKeyBody is the credential-entry payload.
type apiKeyBody struct {
	APIKey string `json:"apiKey" validate:"required"`
}
