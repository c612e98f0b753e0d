package model

// WeatherQuery binds the query string of GET /weather
type WeatherQuery struct {
	City string `query:"city" validate:"required"`
}

// WeatherSnapshot is the current weather of a city in both temperature scales
type WeatherSnapshot struct {
	Name        string  `json:"name"`
	TempC       float64 `json:"temp_c"`
	TempF       float64 `json:"temp_f"`
	FeelsC      float64 `json:"feels_c"`
	FeelsF      float64 `json:"feels_f"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// AirQuality is the air quality index (1..5, 0 when unavailable) and its label
type AirQuality struct {
	AQI   int    `json:"aqi"`
	Level string `json:"level"`
}

// WeatherResponse is the payload of GET /weather. ForecastGraph is a base64
// PNG, or null when no forecast could be rendered.
type WeatherResponse struct {
	Weather       WeatherSnapshot `json:"weather"`
	AQI           AirQuality      `json:"aqi"`
	ForecastGraph *string         `json:"forecast_graph"`
}

// ForecastSample is one 3-hour forecast point
type ForecastSample struct {
	Timestamp string  `json:"timestamp"`
	TempC     float64 `json:"temp_c"`
	TempF     float64 `json:"temp_f"`
	Humidity  int     `json:"humidity"`
	RainMM    float64 `json:"rain_mm"`
	SnowMM    float64 `json:"snow_mm"`
}

// ForecastSeries is the ordered list of forecast samples of a city
type ForecastSeries struct {
	City    string           `json:"city"`
	Samples []ForecastSample `json:"samples"`
}

const AQIUnknown = "Unknown"

var aqiLevels = map[int]string{
	1: "Good",
	2: "Fair",
	3: "Moderate",
	4: "Poor",
	5: "Very Poor",
}

// AQILevel returns the label of an air quality index
func AQILevel(aqi int) string {
	if level, ok := aqiLevels[aqi]; ok {
		return level
	}
	return AQIUnknown
}

// UnknownAirQuality is used when the pollution lookup fails
func UnknownAirQuality() AirQuality {
	return AirQuality{AQI: 0, Level: AQIUnknown}
}

// CelsiusToFahrenheit converts c degrees Celsius to Fahrenheit
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
