package weather

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/model"
	"go-weather/internal/domain/model/external"
	"go-weather/internal/domain/usecase/city"
	"go-weather/internal/domain/usecase/forecast"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

type weatherUseCase struct {
	apiGateway      api.WeatherGateway
	cityUseCase     city.UseCase
	forecastUseCase forecast.UseCase
	queueSender     queue.Sender
	queueName       string
	poolSize        int
}

// Options configures the saved-city refresh. A nil QueueSender refreshes inline.
type Options struct {
	QueueSender queue.Sender
	QueueName   string
	PoolSize    int
}

func NewWeatherUseCase(apiGateway api.WeatherGateway, cityUseCase city.UseCase, forecastUseCase forecast.UseCase, opts Options) UseCase {
	if opts.PoolSize < 1 {
		opts.PoolSize = 1
	}
	return &weatherUseCase{
		apiGateway:      apiGateway,
		cityUseCase:     cityUseCase,
		forecastUseCase: forecastUseCase,
		queueSender:     opts.QueueSender,
		queueName:       opts.QueueName,
		poolSize:        opts.PoolSize,
	}
}

func (uc *weatherUseCase) GetWeather(ctx context.Context, cityName string) (*model.WeatherResponse, error) {
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return nil, ErrCityRequired
	}

	current, err := uc.apiGateway.FetchCurrent(ctx, cityName)
	if err != nil || current == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWeatherData, err)
	}

	snapshot := toSnapshot(current)
	airQuality, graph := uc.fetchAirQualityAndForecastInParallel(ctx, cityName, snapshot.Lat, snapshot.Lon)

	uc.cityUseCase.AddCity(ctx, cityName)

	return &model.WeatherResponse{
		Weather:       snapshot,
		AQI:           airQuality,
		ForecastGraph: graph,
	}, nil
}

// fetchAirQualityAndForecastInParallel runs both lookups at once; each
// failure degrades to its default independently
func (uc *weatherUseCase) fetchAirQualityAndForecastInParallel(ctx context.Context, cityName string, lat, lon float64) (model.AirQuality, *string) {
	var wg sync.WaitGroup
	airQuality := model.UnknownAirQuality()
	var graph *string

	wg.Add(1)
	go func() {
		defer wg.Done()
		airQuality = uc.fetchAirQuality(ctx, lat, lon)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		graph = uc.forecastUseCase.Render(ctx, cityName)
	}()

	wg.Wait()
	return airQuality, graph
}

func (uc *weatherUseCase) fetchAirQuality(ctx context.Context, lat, lon float64) model.AirQuality {
	pollution, err := uc.apiGateway.FetchAirPollution(ctx, lat, lon)
	if err != nil || pollution == nil || len(pollution.List) == 0 {
		return model.UnknownAirQuality()
	}

	aqi := pollution.List[0].Main.AQI
	return model.AirQuality{AQI: aqi, Level: model.AQILevel(aqi)}
}

func (uc *weatherUseCase) RefreshCity(ctx context.Context, name string) error {
	ctx = api.WithCacheRefresh(ctx)

	current, err := uc.apiGateway.FetchCurrent(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to refresh current weather of %s: %w", name, err)
	}

	if _, err := uc.apiGateway.FetchForecast(ctx, name); err != nil {
		log.Warn(msg.GetMessage("weather.fetch-fail", "forecast", name), zap.Error(err))
	}
	if _, err := uc.apiGateway.FetchAirPollution(ctx, current.Coord.Lat, current.Coord.Lon); err != nil {
		log.Warn(msg.GetMessage("weather.fetch-fail", "air pollution", name), zap.Error(err))
	}
	return nil
}

func (uc *weatherUseCase) RefreshSavedCities(ctx context.Context, runID string) RefreshSummary {
	cities := uc.cityUseCase.ListCities(ctx)
	summary := RefreshSummary{RunID: runID, Total: len(cities)}
	log.Info(msg.GetMessage("weather.refresh-start", len(cities), runID), zap.String("request_id", runID))

	if len(cities) == 0 {
		return summary
	}

	if uc.queueSender != nil {
		uc.enqueueCities(ctx, runID, cities, &summary)
	} else {
		uc.refreshInline(ctx, cities, &summary)
	}

	log.Info(msg.GetMessage("weather.refresh-end", summary.OK+summary.Queued, summary.Failed, runID),
		zap.String("request_id", runID),
		zap.Int("total", summary.Total),
		zap.Int("queued", summary.Queued),
		zap.Int("ok", summary.OK),
		zap.Int("failed", summary.Failed))
	return summary
}

func (uc *weatherUseCase) enqueueCities(ctx context.Context, runID string, cities []string, summary *RefreshSummary) {
	messages := make([]queue.BatchMessage, len(cities))
	for i, name := range cities {
		messages[i] = queue.BatchMessage{
			MessageID: fmt.Sprintf("refresh-%d", i),
			Body:      queue.RefreshMessage{City: name, RunID: runID},
		}
	}

	result, err := uc.queueSender.SendMessageBatch(ctx, uc.queueName, messages)
	if err != nil {
		log.Warn("Failed to enqueue saved cities", zap.String("request_id", runID), zap.Error(err))
		summary.Failed = len(cities)
		return
	}

	for _, failedID := range result.Failed {
		log.Warn("Failed to enqueue city", zap.String("request_id", runID), zap.String("message_id", failedID))
	}
	summary.Queued = len(result.Successful)
	summary.Failed = len(result.Failed)
}

// refreshInline refreshes the cities with at most poolSize concurrent lookups
func (uc *weatherUseCase) refreshInline(ctx context.Context, cities []string, summary *RefreshSummary) {
	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < min(uc.poolSize, len(cities)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				err := uc.RefreshCity(ctx, name)
				mu.Lock()
				if err != nil {
					summary.Failed++
					log.Warn("Failed to refresh city", zap.String("city", name), zap.Error(err))
				} else {
					summary.OK++
				}
				mu.Unlock()
			}
		}()
	}

	for _, name := range cities {
		jobs <- name
	}
	close(jobs)
	wg.Wait()
}

func toSnapshot(current *external.CurrentWeatherResponse) model.WeatherSnapshot {
	description := ""
	if len(current.Weather) > 0 {
		description = capitalize(current.Weather[0].Description)
	}

	return model.WeatherSnapshot{
		Name:        current.Name,
		TempC:       current.Main.Temp,
		TempF:       model.CelsiusToFahrenheit(current.Main.Temp),
		FeelsC:      current.Main.FeelsLike,
		FeelsF:      model.CelsiusToFahrenheit(current.Main.FeelsLike),
		Description: description,
		Humidity:    current.Main.Humidity,
		WindSpeed:   current.Wind.Speed,
		Lat:         current.Coord.Lat,
		Lon:         current.Coord.Lon,
	}
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
