package controller

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/gateway/db"
	"go-weather/internal/domain/usecase/city"
	"go-weather/internal/domain/usecase/forecast"
	"go-weather/internal/domain/usecase/weather"
	httpclient "go-weather/pkg/http"
	"go-weather/pkg/validation"
)

// upstream simulates OpenWeatherMap. Any of the three endpoints can be made to fail.
type upstream struct {
	failCurrent   bool
	failPollution bool
	emptyForecast bool
}

func (u upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/weather":
		if u.failCurrent {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"London","coord":{"lat":51.51,"lon":-0.13},"main":{"temp":15,"feels_like":14,"humidity":72},"weather":[{"description":"scattered clouds"}],"wind":{"speed":5.1}}`))
	case "/air_pollution":
		if u.failPollution {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"list":[{"main":{"aqi":2}}]}`))
	case "/forecast":
		if u.emptyForecast {
			_, _ = w.Write([]byte(`{"cod":"200"}`))
			return
		}
		_, _ = w.Write([]byte(`{"list":[
			{"dt_txt":"2024-05-01 12:00:00","main":{"temp":15,"humidity":70}},
			{"dt_txt":"2024-05-01 15:00:00","main":{"temp":17,"humidity":65},"rain":{"3h":0.4}},
			{"dt_txt":"2024-05-01 18:00:00","main":{"temp":13,"humidity":80}}
		]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestServer(t *testing.T, u upstream) *echo.Echo {
	t.Helper()

	server := httptest.NewServer(u)
	t.Cleanup(server.Close)

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "weather.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	cityGateway, err := db.NewSQLCCityGateway(conn, "sqlite")
	if err != nil {
		t.Fatalf("NewSQLCCityGateway() error = %v", err)
	}
	cityUseCase := city.NewCityUseCase(cityGateway)
	if err := cityUseCase.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	apiGateway := api.NewWeatherGateway(server.URL, "test-key", httpclient.ClientOptions{})
	weatherUseCase := weather.NewWeatherUseCase(apiGateway, cityUseCase, forecast.NewForecastUseCase(apiGateway), weather.Options{})

	e := echo.New()
	e.Validator = validation.NewEchoValidator()
	NewWeatherController(e.Group("/api"), weatherUseCase, cityUseCase).InitWeatherRoutes()
	return e
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func listCities(t *testing.T, e *echo.Echo) []string {
	t.Helper()
	rec := do(e, http.MethodGet, "/api/cities")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/cities status = %d", rec.Code)
	}
	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return names
}

func TestGetWeather_SuccessPersistsCity(t *testing.T) {
	e := newTestServer(t, upstream{})

	if names := listCities(t, e); len(names) != 0 {
		t.Fatalf("cities before = %v, want []", names)
	}

	rec := do(e, http.MethodGet, "/api/weather?city=London")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeMap(t, rec)
	current := body["weather"].(map[string]any)
	if current["name"] != "London" || current["temp_c"] != 15.0 || current["temp_f"] != 59.0 {
		t.Errorf("weather = %v", current)
	}
	if current["description"] != "Scattered clouds" {
		t.Errorf("description = %v", current["description"])
	}
	aqi := body["aqi"].(map[string]any)
	if aqi["aqi"] != 2.0 || aqi["level"] != "Fair" {
		t.Errorf("aqi = %v", aqi)
	}
	if graph, ok := body["forecast_graph"].(string); !ok || graph == "" {
		t.Errorf("forecast_graph = %v, want base64 text", body["forecast_graph"])
	}

	if names := listCities(t, e); len(names) != 1 || names[0] != "london" {
		t.Errorf("cities after = %v, want [london]", names)
	}
}

func TestGetWeather_MissingCity(t *testing.T) {
	e := newTestServer(t, upstream{})

	for _, target := range []string{"/api/weather", "/api/weather?city=", "/api/weather?city=%20%20"} {
		rec := do(e, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"City is required"}` {
			t.Errorf("%s body = %s", target, got)
		}
	}
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	e := newTestServer(t, upstream{failCurrent: true})

	rec := do(e, http.MethodGet, "/api/weather?city=Atlantis")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"No weather data available"}` {
		t.Errorf("body = %s", got)
	}
	if names := listCities(t, e); len(names) != 0 {
		t.Errorf("cities = %v, want nothing persisted", names)
	}
}

func TestGetWeather_DegradedParts(t *testing.T) {
	e := newTestServer(t, upstream{failPollution: true, emptyForecast: true})

	rec := do(e, http.MethodGet, "/api/weather?city=London")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeMap(t, rec)
	aqi := body["aqi"].(map[string]any)
	if aqi["aqi"] != 0.0 || aqi["level"] != "Unknown" {
		t.Errorf("aqi = %v, want {0 Unknown}", aqi)
	}
	if graph, present := body["forecast_graph"]; !present || graph != nil {
		t.Errorf("forecast_graph = %v (present=%v), want null", graph, present)
	}
}

func TestGetWeather_RepeatedLookupKeepsOneEntry(t *testing.T) {
	e := newTestServer(t, upstream{})

	for _, name := range []string{"London", "LONDON", "%20london"} {
		if rec := do(e, http.MethodGet, "/api/weather?city="+name); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if names := listCities(t, e); len(names) != 1 {
		t.Errorf("cities = %v, want one entry", names)
	}
}

func TestRemoveCity(t *testing.T) {
	e := newTestServer(t, upstream{})
	do(e, http.MethodGet, "/api/weather?city=London")

	rec := do(e, http.MethodDelete, "/api/cities/London")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}

	rec = do(e, http.MethodDelete, "/api/cities/London")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"City not found"}` {
		t.Errorf("body = %s", got)
	}
}
