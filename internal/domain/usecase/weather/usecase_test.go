package weather

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/model"
	"go-weather/internal/domain/model/external"
	"go-weather/pkg/redis"
)

type fakeGateway struct {
	mu           sync.Mutex
	currentErr   error
	pollutionErr error
	aqi          int
	currentCalls []string
}

func (g *fakeGateway) FetchCurrent(_ context.Context, city string) (*external.CurrentWeatherResponse, error) {
	g.mu.Lock()
	g.currentCalls = append(g.currentCalls, city)
	g.mu.Unlock()
	if g.currentErr != nil {
		return nil, g.currentErr
	}

	response := &external.CurrentWeatherResponse{
		Name:    "London",
		Coord:   external.Coord{Lat: 51.51, Lon: -0.13},
		Weather: []external.WeatherCondition{{Description: "broken CLOUDS"}},
		Wind:    external.Wind{Speed: 4.6},
	}
	response.Main.Temp = 10
	response.Main.FeelsLike = 0
	response.Main.Humidity = 81
	return response, nil
}

func (g *fakeGateway) FetchForecast(context.Context, string) (*external.ForecastResponse, error) {
	return &external.ForecastResponse{}, nil
}

func (g *fakeGateway) FetchAirPollution(_ context.Context, lat, lon float64) (*external.AirPollutionResponse, error) {
	if g.pollutionErr != nil {
		return nil, g.pollutionErr
	}
	if lat != 51.51 || lon != -0.13 {
		return nil, errors.New("unexpected coordinates")
	}
	item := external.AirPollutionItem{}
	item.Main.AQI = g.aqi
	return &external.AirPollutionResponse{List: []external.AirPollutionItem{item}}, nil
}

type fakeCities struct {
	mu    sync.Mutex
	added []string
	names []string
}

func (c *fakeCities) Initialize(context.Context) error { return nil }

func (c *fakeCities) AddCity(_ context.Context, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, name)
	return true
}

func (c *fakeCities) ListCities(context.Context) []string { return c.names }

func (c *fakeCities) RemoveCity(context.Context, string) bool { return false }

type fakeForecast struct {
	graph *string
}

func (f fakeForecast) Render(context.Context, string) *string { return f.graph }

func (f fakeForecast) RenderResponse(string, *external.ForecastResponse) *string { return f.graph }

type fakeSender struct {
	messages []queue.BatchMessage
	err      error
}

func (s *fakeSender) SendMessage(context.Context, string, any) error { return nil }

func (s *fakeSender) SendMessageBatch(_ context.Context, _ string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.messages = messages
	result := &queue.BatchResult{}
	for _, m := range messages {
		result.Successful = append(result.Successful, m.MessageID)
	}
	return result, nil
}

func TestGetWeather_Success(t *testing.T) {
	graph := "aW1hZ2U="
	gateway := &fakeGateway{aqi: 4}
	cities := &fakeCities{}
	useCase := NewWeatherUseCase(gateway, cities, fakeForecast{graph: &graph}, Options{})

	response, err := useCase.GetWeather(context.Background(), " London ")
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}

	want := model.WeatherSnapshot{
		Name: "London", TempC: 10, TempF: 50, FeelsC: 0, FeelsF: 32,
		Description: "Broken clouds", Humidity: 81, WindSpeed: 4.6, Lat: 51.51, Lon: -0.13,
	}
	if response.Weather != want {
		t.Errorf("Weather = %+v, want %+v", response.Weather, want)
	}
	if response.AQI != (model.AirQuality{AQI: 4, Level: "Poor"}) {
		t.Errorf("AQI = %+v", response.AQI)
	}
	if response.ForecastGraph == nil || *response.ForecastGraph != graph {
		t.Errorf("ForecastGraph = %v", response.ForecastGraph)
	}
	if len(cities.added) != 1 || cities.added[0] != "London" {
		t.Errorf("added = %v, want [London]", cities.added)
	}
}

func TestGetWeather_CityRequired(t *testing.T) {
	gateway := &fakeGateway{}
	useCase := NewWeatherUseCase(gateway, &fakeCities{}, fakeForecast{}, Options{})

	for _, city := range []string{"", "   "} {
		if _, err := useCase.GetWeather(context.Background(), city); !errors.Is(err, ErrCityRequired) {
			t.Errorf("GetWeather(%q) error = %v, want ErrCityRequired", city, err)
		}
	}
	if len(gateway.currentCalls) != 0 {
		t.Errorf("upstream called %d times, want 0", len(gateway.currentCalls))
	}
}

func TestGetWeather_NoDataPersistsNothing(t *testing.T) {
	cities := &fakeCities{}
	useCase := NewWeatherUseCase(&fakeGateway{currentErr: errors.New("city not found")}, cities, fakeForecast{}, Options{})

	_, err := useCase.GetWeather(context.Background(), "Atlantis")
	if !errors.Is(err, ErrNoWeatherData) {
		t.Fatalf("GetWeather() error = %v, want ErrNoWeatherData", err)
	}
	if len(cities.added) != 0 {
		t.Errorf("added = %v, want nothing", cities.added)
	}
}

func TestGetWeather_PartialDegradation(t *testing.T) {
	useCase := NewWeatherUseCase(&fakeGateway{pollutionErr: errors.New("timeout")}, &fakeCities{}, fakeForecast{}, Options{})

	response, err := useCase.GetWeather(context.Background(), "London")
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}
	if response.AQI.AQI != 0 || response.AQI.Level != "Unknown" {
		t.Errorf("AQI = %+v, want {0 Unknown}", response.AQI)
	}
	if response.ForecastGraph != nil {
		t.Errorf("ForecastGraph = %v, want nil", *response.ForecastGraph)
	}
}

func TestRefreshCity(t *testing.T) {
	useCase := NewWeatherUseCase(&fakeGateway{}, &fakeCities{}, fakeForecast{}, Options{})
	if err := useCase.RefreshCity(context.Background(), "london"); err != nil {
		t.Errorf("RefreshCity() error = %v", err)
	}

	failing := NewWeatherUseCase(&fakeGateway{currentErr: errors.New("down")}, &fakeCities{}, fakeForecast{}, Options{})
	if err := failing.RefreshCity(context.Background(), "london"); err == nil {
		t.Error("RefreshCity() expected error")
	}
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func TestRefreshCity_RefetchesCachedCity(t *testing.T) {
	upstream := &fakeGateway{aqi: 1}
	gateway := api.NewCachedWeatherGateway(upstream, &mapCache{entries: map[string][]byte{}})
	useCase := NewWeatherUseCase(gateway, &fakeCities{}, fakeForecast{}, Options{})
	ctx := context.Background()

	if _, err := useCase.GetWeather(ctx, "London"); err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}
	if _, err := useCase.GetWeather(ctx, "london"); err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}
	if len(upstream.currentCalls) != 1 {
		t.Fatalf("current calls = %d, want 1 with a warm cache", len(upstream.currentCalls))
	}

	if err := useCase.RefreshCity(ctx, "london"); err != nil {
		t.Fatalf("RefreshCity() error = %v", err)
	}
	if len(upstream.currentCalls) != 2 {
		t.Errorf("current calls = %d, want the refresh to bypass the cache", len(upstream.currentCalls))
	}
}

func TestRefreshSavedCities_Inline(t *testing.T) {
	gateway := &fakeGateway{}
	cities := &fakeCities{names: []string{"london", "paris", "oslo"}}
	useCase := NewWeatherUseCase(gateway, cities, fakeForecast{}, Options{PoolSize: 2})

	summary := useCase.RefreshSavedCities(context.Background(), "run-1")
	if summary.Total != 3 || summary.OK != 3 || summary.Failed != 0 || summary.Queued != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if len(gateway.currentCalls) != 3 {
		t.Errorf("current calls = %d, want 3", len(gateway.currentCalls))
	}
	if len(cities.added) != 0 {
		t.Errorf("refresh must not write to the store, added %v", cities.added)
	}
}

func TestRefreshSavedCities_Queue(t *testing.T) {
	gateway := &fakeGateway{}
	sender := &fakeSender{}
	cities := &fakeCities{names: []string{"london", "paris"}}
	useCase := NewWeatherUseCase(gateway, cities, fakeForecast{}, Options{QueueSender: sender, QueueName: "weather-refresh"})

	summary := useCase.RefreshSavedCities(context.Background(), "run-2")
	if summary.Queued != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if len(gateway.currentCalls) != 0 {
		t.Error("queued refresh must not call upstream inline")
	}

	body, ok := sender.messages[1].Body.(queue.RefreshMessage)
	if !ok || body.City != "paris" || body.RunID != "run-2" {
		t.Errorf("message body = %+v", sender.messages[1].Body)
	}

	failing := NewWeatherUseCase(gateway, cities, fakeForecast{}, Options{QueueSender: &fakeSender{err: errors.New("throttled")}, QueueName: "q"})
	if got := failing.RefreshSavedCities(context.Background(), "run-3"); got.Failed != 2 {
		t.Errorf("summary = %+v, want 2 failed", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"light rain":    "Light rain",
		"OVERCAST":      "Overcast",
		"":              "",
		"éclaircies":    "Éclaircies",
		"few clouds 2x": "Few clouds 2x",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
