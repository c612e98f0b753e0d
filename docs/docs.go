// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/go-weather/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/cities": {
            "get": {
                "description": "Names of every successfully queried city, in insertion order",
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "List saved cities",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "/cities/{name}": {
            "delete": {
                "tags": ["cities"],
                "summary": "Remove a saved city",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "City removed"},
                    "404": {
                        "description": "City not found",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Status of the database, the cache and the queue workers",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        },
        "/weather": {
            "get": {
                "description": "Current weather, air quality and a base64 PNG of the 5 day forecast. The city is saved on success.",
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Get weather for a city",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "city", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WeatherResponse"}},
                    "400": {
                        "description": "City is required",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "404": {
                        "description": "No weather data available",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "model.AirQuality": {
            "type": "object",
            "properties": {
                "aqi": {"type": "integer"},
                "level": {"type": "string"}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "cache": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "queue": {"$ref": "#/definitions/model.ComponentHealthStatus"}
            }
        },
        "model.WeatherResponse": {
            "type": "object",
            "properties": {
                "weather": {"$ref": "#/definitions/model.WeatherSnapshot"},
                "aqi": {"$ref": "#/definitions/model.AirQuality"},
                "forecast_graph": {"type": "string"}
            }
        },
        "model.WeatherSnapshot": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "temp_c": {"type": "number"},
                "temp_f": {"type": "number"},
                "feels_c": {"type": "number"},
                "feels_f": {"type": "number"},
                "description": {"type": "string"},
                "humidity": {"type": "integer"},
                "wind_speed": {"type": "number"},
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "go-weather",
	Description:      "Current weather, air quality and forecast charts from OpenWeatherMap",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
