package forecast

import (
	"context"

	"go-weather/internal/domain/model"
	"go-weather/internal/domain/model/external"
)

type UseCase interface {
	// Render fetches the forecast of city and returns the chart as base64
	// PNG, or nil when no forecast is available or rendering fails
	Render(ctx context.Context, city string) *string

	// RenderResponse renders an already fetched forecast
	RenderResponse(city string, forecast *external.ForecastResponse) *string
}

// ExtractSeries maps the upstream samples, in upstream order, to a
// ForecastSeries. Missing rain or snow volumes count as 0 mm.
func ExtractSeries(city string, forecast *external.ForecastResponse) model.ForecastSeries {
	series := model.ForecastSeries{City: city, Samples: []model.ForecastSample{}}
	if forecast == nil {
		return series
	}

	for _, item := range forecast.List {
		sample := model.ForecastSample{
			Timestamp: item.DtTxt,
			TempC:     item.Main.Temp,
			TempF:     model.CelsiusToFahrenheit(item.Main.Temp),
			Humidity:  item.Main.Humidity,
		}
		if item.Rain != nil {
			sample.RainMM = item.Rain.ThreeHour
		}
		if item.Snow != nil {
			sample.SnowMM = item.Snow.ThreeHour
		}
		series.Samples = append(series.Samples, sample)
	}
	return series
}
