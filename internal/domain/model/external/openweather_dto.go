package external

import "fmt"

// Coord is a latitude/longitude pair as returned by OpenWeatherMap
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MainReadings holds the "main" block of the weather and forecast endpoints
type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// WeatherCondition is one entry of the "weather" array
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// Precipitation holds the rain or snow volume of the last 1h/3h in mm
type Precipitation struct {
	OneHour   float64 `json:"1h"`
	ThreeHour float64 `json:"3h"`
}

// CurrentWeatherResponse represents the response of GET /weather
type CurrentWeatherResponse struct {
	Coord   Coord              `json:"coord"`
	Weather []WeatherCondition `json:"weather"`
	Main    MainReadings       `json:"main"`
	Wind    Wind               `json:"wind"`
	Dt      int64              `json:"dt"`
	Name    string             `json:"name"`
	Cod     any                `json:"cod"`
}

// ForecastItem is one 3-hour sample of the forecast list
type ForecastItem struct {
	Dt      int64              `json:"dt"`
	DtTxt   string             `json:"dt_txt"`
	Main    MainReadings       `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    Wind               `json:"wind"`
	Rain    *Precipitation     `json:"rain,omitempty"`
	Snow    *Precipitation     `json:"snow,omitempty"`
}

type ForecastCity struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Coord   Coord  `json:"coord"`
	Country string `json:"country"`
}

// ForecastResponse represents the response of GET /forecast
type ForecastResponse struct {
	Cod  any            `json:"cod"`
	Cnt  int            `json:"cnt"`
	List []ForecastItem `json:"list"`
	City ForecastCity   `json:"city"`
}

// AirPollutionItem is one sample of the air pollution list
type AirPollutionItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components map[string]float64 `json:"components"`
}

// AirPollutionResponse represents the response of GET /air_pollution
type AirPollutionResponse struct {
	Coord Coord              `json:"coord"`
	List  []AirPollutionItem `json:"list"`
}

// APIErrorResponse is the error body OpenWeatherMap returns on non-2xx
// statuses. cod is a number on some endpoints and a string on others.
type APIErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

func (e *APIErrorResponse) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openweather error %v", e.Cod)
	}
	return fmt.Sprintf("openweather error %v: %s", e.Cod, e.Message)
}
