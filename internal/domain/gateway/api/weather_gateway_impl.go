package api

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"go-weather/internal/domain/model/external"
	"go-weather/pkg/http"
	"go-weather/pkg/log"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
}

// NewWeatherGateway creates a WeatherGateway for baseUrl. The API key is sent
// as the appid query param of every request.
func NewWeatherGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions) WeatherGateway {
	defaults := map[string]string{"appid": apiKey}
	for k, v := range clientOptions.DefaultQueryParams {
		defaults[k] = v
	}
	clientOptions.DefaultQueryParams = defaults
	// an unknown city is a 404 and must surface as a failure
	clientOptions.Dismiss404 = false

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

// FetchCurrent gets the current weather of a city in metric units
func (w *weatherGatewayImpl) FetchCurrent(ctx context.Context, city string) (*external.CurrentWeatherResponse, error) {
	response := &external.CurrentWeatherResponse{}
	if err := w.get(ctx, "/weather", map[string]string{"q": city, "units": "metric"}, response); err != nil {
		log.Error("failed to fetch current weather", zap.String("city", city), zap.Error(err))
		return nil, err
	}
	return response, nil
}

// FetchForecast gets the 3-hour forecast of a city in metric units
func (w *weatherGatewayImpl) FetchForecast(ctx context.Context, city string) (*external.ForecastResponse, error) {
	response := &external.ForecastResponse{}
	if err := w.get(ctx, "/forecast", map[string]string{"q": city, "units": "metric"}, response); err != nil {
		log.Error("failed to fetch forecast", zap.String("city", city), zap.Error(err))
		return nil, err
	}
	return response, nil
}

// FetchAirPollution gets the air pollution at the given coordinates
func (w *weatherGatewayImpl) FetchAirPollution(ctx context.Context, lat, lon float64) (*external.AirPollutionResponse, error) {
	query := map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	}

	response := &external.AirPollutionResponse{}
	if err := w.get(ctx, "/air_pollution", query, response); err != nil {
		log.Error("failed to fetch air pollution", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return nil, err
	}
	return response, nil
}

func (w *weatherGatewayImpl) get(ctx context.Context, path string, query map[string]string, target any) error {
	_, errResp, _, err := w.httpClient.Request().
		WithMethod(http.GET).
		WithPath(path).
		WithQueryParams(query).
		WithSuccessResp(target).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute(ctx)

	if err == nil {
		return nil
	}

	if errResp != nil {
		return fmt.Errorf("%s: %w", path, errResp.(*external.APIErrorResponse))
	}
	return fmt.Errorf("%s: %w", path, err)
}
