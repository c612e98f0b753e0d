package api

import (
	"context"

	"go-weather/internal/domain/model/external"
)

// WeatherGateway defines the OpenWeatherMap calls. Every method issues a
// single GET and returns a nil response with an error on any non-2xx status
// or transport failure.
type WeatherGateway interface {
	// FetchCurrent returns the current weather of city, temperatures in Celsius
	FetchCurrent(ctx context.Context, city string) (*external.CurrentWeatherResponse, error)

	// FetchForecast returns the 5 day / 3 hour forecast of city
	FetchForecast(ctx context.Context, city string) (*external.ForecastResponse, error)

	// FetchAirPollution returns the current air pollution at the coordinates
	FetchAirPollution(ctx context.Context, lat, lon float64) (*external.AirPollutionResponse, error)
}
