package weather

import (
	"context"
	"errors"

	"go-weather/internal/domain/model"
)

var (
	// ErrCityRequired is returned when the city name is blank
	ErrCityRequired = errors.New("city is required")
	// ErrNoWeatherData is returned when the current weather lookup fails
	ErrNoWeatherData = errors.New("no weather data available")
)

// RefreshSummary counts the outcome of a saved-city refresh run
type RefreshSummary struct {
	RunID  string `json:"runId"`
	Total  int    `json:"total"`
	Queued int    `json:"queued"`
	OK     int    `json:"ok"`
	Failed int    `json:"failed"`
}

type UseCase interface {
	// GetWeather assembles current weather, air quality and the forecast
	// chart of city, and records the city as queried
	GetWeather(ctx context.Context, city string) (*model.WeatherResponse, error)

	// RefreshCity refetches the upstream data of a stored city and overwrites
	// the cached responses, even unexpired ones. It never writes to the city store.
	RefreshCity(ctx context.Context, name string) error

	// RefreshSavedCities refreshes every stored city, through the queue when
	// one is configured and inline otherwise
	RefreshSavedCities(ctx context.Context, runID string) RefreshSummary
}
