package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"go-weather/internal/domain/model"
	"go-weather/internal/domain/usecase/city"
	"go-weather/internal/domain/usecase/weather"
)

type WeatherController struct {
	api            *echo.Group
	weatherUseCase weather.UseCase
	cityUseCase    city.UseCase
}

func NewWeatherController(api *echo.Group, weatherUseCase weather.UseCase, cityUseCase city.UseCase) *WeatherController {
	return &WeatherController{api: api, weatherUseCase: weatherUseCase, cityUseCase: cityUseCase}
}

// InitWeatherRoutes initializes weather and city routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.GetWeather)
	controller.api.GET("/cities", controller.ListCities)
	controller.api.DELETE("/cities/:name", controller.RemoveCity)
}

// GetWeather godoc
// @Summary Get weather for a city
// @Description Current weather, air quality and a base64 PNG of the 5 day forecast. The city is saved on success.
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} model.WeatherResponse
// @Failure 400 {object} map[string]string "City is required"
// @Failure 404 {object} map[string]string "No weather data available"
// @Router /weather [get]
func (controller *WeatherController) GetWeather(c echo.Context) error {
	var query model.WeatherQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "City is required"})
	}
	if err := c.Validate(&query); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "City is required"})
	}

	response, err := controller.weatherUseCase.GetWeather(c.Request().Context(), query.City)
	switch {
	case errors.Is(err, weather.ErrCityRequired):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "City is required"})
	case errors.Is(err, weather.ErrNoWeatherData):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No weather data available"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, response)
}

// ListCities godoc
// @Summary List saved cities
// @Description Names of every successfully queried city, in insertion order
// @Tags cities
// @Produce json
// @Success 200 {array} string
// @Router /cities [get]
func (controller *WeatherController) ListCities(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.cityUseCase.ListCities(c.Request().Context()))
}

// RemoveCity godoc
// @Summary Remove a saved city
// @Tags cities
// @Param name path string true "City name"
// @Success 204 "City removed"
// @Failure 404 {object} map[string]string "City not found"
// @Router /cities/{name} [delete]
func (controller *WeatherController) RemoveCity(c echo.Context) error {
	if !controller.cityUseCase.RemoveCity(c.Request().Context(), c.Param("name")) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "City not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
