package forecast

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg/draw"

	"go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/model"
	"go-weather/internal/domain/model/external"
	"go-weather/pkg/chart"
	"go-weather/pkg/log"
)

var (
	temperatureColor = color.RGBA{R: 255, A: 255}
	humidityColor    = color.RGBA{B: 255, A: 255}
	rainColor        = color.RGBA{G: 191, B: 191, A: 255}
	snowColor        = color.RGBA{R: 128, B: 128, A: 255}
)

type forecastUseCase struct {
	apiGateway api.WeatherGateway
}

func NewForecastUseCase(apiGateway api.WeatherGateway) UseCase {
	return &forecastUseCase{apiGateway: apiGateway}
}

func (uc *forecastUseCase) Render(ctx context.Context, city string) *string {
	forecast, err := uc.apiGateway.FetchForecast(ctx, city)
	if err != nil {
		// already logged by the gateway
		return nil
	}
	return uc.RenderResponse(city, forecast)
}

func (uc *forecastUseCase) RenderResponse(city string, forecast *external.ForecastResponse) *string {
	if forecast == nil || len(forecast.List) == 0 {
		return nil
	}

	series := ExtractSeries(city, forecast)
	encoded, err := buildChart(series).RenderBase64()
	if err != nil {
		log.Error("failed to render forecast chart", zap.String("city", city), zap.Error(err))
		return nil
	}
	return &encoded
}

func buildChart(series model.ForecastSeries) chart.StackedChart {
	n := len(series.Samples)
	ticks := make([]string, n)
	temps := make([]float64, n)
	humidity := make([]float64, n)
	humidityLabels := make([]string, n)
	rain := make([]float64, n)
	snow := make([]float64, n)

	for i, sample := range series.Samples {
		ticks[i] = sample.Timestamp
		temps[i] = sample.TempF
		humidity[i] = float64(sample.Humidity)
		humidityLabels[i] = fmt.Sprintf("%d%%", sample.Humidity)
		rain[i] = sample.RainMM
		snow[i] = sample.SnowMM
	}

	return chart.StackedChart{
		Title:        fmt.Sprintf("5-Day Forecast for %s (3-hour increments)", series.City),
		XLabel:       "Date & Time",
		XTicks:       ticks,
		TickRotation: math.Pi / 4,
		Panels: []chart.Panel{
			{YLabel: "Temperature (°F)", Values: temps, Color: temperatureColor, Marker: draw.CircleGlyph{}},
			{YLabel: "Humidity (%)", Values: humidity, Annotations: humidityLabels, Color: humidityColor, Marker: draw.CrossGlyph{}},
			{YLabel: "Rain (mm)", Values: rain, Color: rainColor, Marker: draw.SquareGlyph{}},
			{YLabel: "Snow (mm)", Values: snow, Color: snowColor, Marker: draw.TriangleGlyph{}},
		},
	}
}
